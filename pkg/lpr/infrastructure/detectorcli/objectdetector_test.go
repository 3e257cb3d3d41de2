package detectorcli

import (
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/filesystem"
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

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(dir, "detect.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func newTestDetector(t *testing.T, script string) (*ObjectDetector, *recordingLogger, string) {
	t.Helper()
	dir := t.TempDir()
	config := common.NewEmptyConfig()
	config.Set(domain.ConfigKeyDetectorCommand, writeScript(t, dir, script))
	config.Set(domain.ConfigKeyTempFilePathProvider, dir)
	logger := &recordingLogger{}
	return NewObjectDetector(config, "cpu", filesystem.NewTempFilePathProvider(config), logger), logger, dir
}

func TestDetectRunsCommandAndParsesOutput(t *testing.T) {
	detector, logger, dir := newTestDetector(t, `
echo "$@" > "$(dirname "$0")/args.txt"
echo "loading weights..." >&2
echo '[{"score": 0.2, "label": "license plate", "box": {"xmin": 1, "ymin": 1, "xmax": 2, "ymax": 2}},'
echo ' {"score": 0.7, "label": "license plate", "box": {"xmin": 5, "ymin": 6, "xmax": 7, "ymax": 8}}]'
`)
	require.NoError(t, detector.CheckAvailable())

	detections, err := detector.Detect(image.NewRGBA(image.Rect(0, 0, 4, 4)), []string{"license plate", "car"})
	require.NoError(t, err)
	require.Len(t, detections, 2)
	assert.Equal(t, 0.7, detections[0].Score)
	assert.Equal(t, domain.BoundingBox{XMin: 5, YMin: 6, XMax: 7, YMax: 8}, detections[0].Box)

	args, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(args), "--model "+domain.DefaultDetectorCheckpoint)
	assert.Contains(t, string(args), "--device cpu")
	assert.Contains(t, string(args), "--threshold 0.1")
	assert.Contains(t, string(args), "--label license plate --label car")

	assert.Contains(t, logger.messages, "detector: loading weights...")

	leftovers, err := filepath.Glob(filepath.Join(dir, "detect_*.png"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary image must be removed")
}

func TestDetectFailsWhenCommandFails(t *testing.T) {
	detector, _, _ := newTestDetector(t, "echo 'CUDA out of memory' >&2\nexit 3\n")
	_, err := detector.Detect(image.NewRGBA(image.Rect(0, 0, 1, 1)), []string{"license plate"})
	assert.ErrorContains(t, err, "detector command failed")
}

func TestDetectFailsOnGarbageOutput(t *testing.T) {
	detector, _, _ := newTestDetector(t, "echo 'hello'\n")
	_, err := detector.Detect(image.NewRGBA(image.Rect(0, 0, 1, 1)), []string{"license plate"})
	assert.ErrorContains(t, err, "malformed detector output")
}

func TestCheckAvailableFailsForMissingCommand(t *testing.T) {
	config := common.NewEmptyConfig()
	config.Set(domain.ConfigKeyDetectorCommand, filepath.Join(t.TempDir(), "missing"))
	detector := NewObjectDetector(config, "cpu", filesystem.NewTempFilePathProvider(config), &recordingLogger{})
	err := detector.CheckAvailable()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "detector command unavailable"))
}
