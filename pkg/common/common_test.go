package common

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mutex    sync.Mutex
	messages []string
}

func (r *recordingLogger) Log(message string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingLogger) snapshot() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.messages...)
}

func TestCleanInputPath(t *testing.T) {
	assert.Equal(t, "/tmp/my car.jpg", CleanInputPath("  '/tmp/my car.jpg' "))
	assert.Equal(t, "C:\\cars\\a.png", CleanInputPath(`"C:\cars\a.png"`))
	assert.Equal(t, "exit", CleanInputPath("exit\n"))
	assert.Equal(t, "'", CleanInputPath("'"))
	assert.Equal(t, "", CleanInputPath("''"))
}

func TestIsImageFormat(t *testing.T) {
	assert.True(t, IsImageFormat("https://example.com/cars/a.JPG"))
	assert.True(t, IsImageFormat("https://example.com/a.webp?size=large#top"))
	assert.True(t, IsImageFormat("car.png"))
	assert.False(t, IsImageFormat("https://example.com/index.html"))
	assert.False(t, IsImageFormat("https://example.com/"))
}

func TestJobQueueRunsJobsInOrder(t *testing.T) {
	logger := &recordingLogger{}
	queue := NewJobQueue(logger)
	var mutex sync.Mutex
	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		assert.True(t, queue.Enqueue(func() error {
			mutex.Lock()
			order = append(order, i)
			mutex.Unlock()
			if i == 2 {
				return errors.New("bad image")
			}
			if i == 4 {
				close(done)
			}
			return nil
		}))
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not run")
	}
	queue.Stop()
	queue.Stop()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, []string{"failed to process a job: bad image"}, logger.snapshot())
}

func TestJobQueueRefusesJobsAfterStop(t *testing.T) {
	queue := NewJobQueue(&recordingLogger{})
	queue.Stop()
	refused := make(chan int)
	go func() {
		count := 0
		for i := 0; i < 200; i++ {
			if !queue.Enqueue(func() error { return nil }) {
				count++
			}
		}
		refused <- count
	}()
	select {
	case count := <-refused:
		assert.Equal(t, 200, count)
	case <-time.After(5 * time.Second):
		t.Fatal("Enqueue blocked after Stop")
	}
}

func TestFileLoggerAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger := NewFileLogger(path)
	logger.Log("first")
	logger.Log("second\n")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " first"))
	assert.True(t, strings.HasSuffix(lines[1], " second"))
}

func TestLoggerWriterSplitsLines(t *testing.T) {
	logger := &recordingLogger{}
	writer := NewLoggerWriter(logger, "ocr: ")
	_, err := writer.Write([]byte("loading\nwarn"))
	require.NoError(t, err)
	_, err = writer.Write([]byte("ing\n\npartial"))
	require.NoError(t, err)
	writer.Flush()
	assert.Equal(t, []string{"ocr: loading", "ocr: warning", "ocr: partial"}, logger.snapshot())
}
