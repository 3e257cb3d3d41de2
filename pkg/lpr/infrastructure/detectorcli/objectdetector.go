package detectorcli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/imaging"
)

const defaultCommand = "./owlv2-detect"

type TempFilePathProvider interface {
	GetTempFilePath(fileName string) string
}

// ObjectDetector runs an external zero-shot detection command and parses the JSON list of detections it prints to
// stdout. Whatever the command writes to stderr (model loading progress, framework warnings) goes to the log.
type ObjectDetector struct {
	mutex                sync.Mutex
	command              string
	checkpoint           string
	device               string
	threshold            float64
	tempFilePathProvider TempFilePathProvider
	logger               common.Logger
}

func NewObjectDetector(
	config *common.Config,
	device string,
	tempFilePathProvider TempFilePathProvider,
	logger common.Logger,
) *ObjectDetector {
	return &ObjectDetector{
		command:              config.GetStringOrDefault(domain.ConfigKeyDetectorCommand, defaultCommand),
		checkpoint:           config.GetStringOrDefault(domain.ConfigKeyDetectorCheckpoint, domain.DefaultDetectorCheckpoint),
		device:               device,
		threshold:            config.GetFloatOrDefault(domain.ConfigKeyDetectorThreshold, domain.DefaultDetectorThreshold),
		tempFilePathProvider: tempFilePathProvider,
		logger:               logger,
	}
}

// CheckAvailable makes sure the command can be found, so that misconfiguration is reported at startup rather than on
// the first request.
func (d *ObjectDetector) CheckAvailable() error {
	_, err := exec.LookPath(d.command)
	if err != nil {
		return fmt.Errorf("detector command unavailable: %w", err)
	}
	return nil
}

func (d *ObjectDetector) Detect(img image.Image, candidateLabels []string) ([]domain.Detection, error) {
	// Only 1 request at a time: the model is loaded per process and we don't want two of them fighting for VRAM.
	d.mutex.Lock()
	defer d.mutex.Unlock()
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	filePath := d.tempFilePathProvider.GetTempFilePath("detect_" + uuid.NewString() + ".png")
	err = os.WriteFile(filePath, data, 0600)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.Remove(filePath)
	}()
	cmd := exec.Command(d.command, d.buildArgs(filePath, candidateLabels)...)
	var out bytes.Buffer
	stderr := common.NewLoggerWriter(d.logger, "detector: ")
	cmd.Stdout = &out
	cmd.Stderr = stderr
	err = cmd.Run()
	stderr.Flush()
	if err != nil {
		return nil, fmt.Errorf("detector command failed: %w", err)
	}
	var detections []domain.Detection
	err = json.Unmarshal(bytes.TrimSpace(out.Bytes()), &detections)
	if err != nil {
		return nil, fmt.Errorf("malformed detector output: %w", err)
	}
	detections = domain.FilterDetectionsByScore(detections, d.threshold)
	domain.SortDetectionsByScore(detections)
	return detections, nil
}

func (d *ObjectDetector) buildArgs(filePath string, candidateLabels []string) []string {
	args := []string{
		"--model", d.checkpoint,
		"--image", filePath,
		"--device", d.device,
		"--threshold", strconv.FormatFloat(d.threshold, 'f', -1, 64),
	}
	for _, label := range candidateLabels {
		args = append(args, "--label", label)
	}
	return args
}
