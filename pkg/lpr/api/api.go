package api

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/detectorcli"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/device"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/filesystem"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/imaging"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/logging"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/owlv2"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/tesseract"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/web"
)

// See domain/config.go
const (
	ConfigKeyLogPath         = domain.ConfigKeyLogPath
	ConfigKeyDetectorBackend = domain.ConfigKeyDetectorBackend
)

const (
	DetectorBackendHTTP = "http"
	DetectorBackendCLI  = "cli"
)

// API is the entrypoint to the plate reader. It shouldn't contain any logic of its own; it glues all the components
// together and provides a public interface for domain.RecognitionService.
// This API can be used in various contexts: console input/output, an IRC chat etc.
type API interface {
	// RecognizePlate returns the text of the license plate found in the image at `location` (a file path or an image
	// URL). If the plate is found but can't be read, returns domain.UnknownPlate.
	RecognizePlate(location string) (string, error)
	// Close releases the loaded models.
	Close() error
}

type api struct {
	recognitionService *domain.RecognitionService
	logger             common.Logger
	closers            []io.Closer
}

// NewLogger creates the logger to pass to NewAPI; frontends which log on their own should share it.
func NewLogger(config *common.Config) common.Logger {
	return common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
}

// NewAPI loads both models. Diagnostic output of the underlying libraries goes to `logger`, not to the console.
func NewAPI(config *common.Config, logger common.Logger) (API, error) {
	channelOrder, err := domain.ParseChannelOrder(config.GetString(domain.ConfigKeyOCRChannelOrder))
	if err != nil {
		return nil, err
	}
	tempFilePathProvider := filesystem.NewTempFilePathProvider(config)
	objectDetector, err := newObjectDetector(config, tempFilePathProvider, logger)
	if err != nil {
		return nil, err
	}
	textRecognizer, err := tesseract.NewTextRecognizer(config)
	if err != nil {
		return nil, fmt.Errorf("load text recognizer: %w", err)
	}
	imageLoader := web.NewRemoteImageLoader(
		web.NewURLFinder(),
		filesystem.NewImageLoader(),
		tempFilePathProvider,
		logger,
	)
	recognitionService := domain.NewRecognitionService(
		imageLoader,
		imaging.NewProcessor(),
		objectDetector,
		logging.NewTextRecognizerDecorator(textRecognizer, "tesseract", logger),
		config.GetStringSliceOrDefault(domain.ConfigKeyCandidateLabels, []string{domain.DefaultCandidateLabel}),
		channelOrder,
	)
	return newAPI(recognitionService, logger, textRecognizer), nil
}

func newAPI(recognitionService *domain.RecognitionService, logger common.Logger, closers ...io.Closer) API {
	return &api{
		recognitionService: recognitionService,
		logger:             logger,
		closers:            closers,
	}
}

func newObjectDetector(
	config *common.Config,
	tempFilePathProvider *filesystem.TempFilePathProvider,
	logger common.Logger,
) (domain.ObjectDetector, error) {
	backend := config.GetStringOrDefault(ConfigKeyDetectorBackend, DetectorBackendHTTP)
	switch backend {
	case DetectorBackendHTTP:
		return logging.NewObjectDetectorDecorator(owlv2.NewObjectDetector(config), "owlv2-http", logger), nil
	case DetectorBackendCLI:
		selectedDevice := device.Resolve(config.GetStringOrDefault(domain.ConfigKeyDevice, device.Auto), nil)
		logger.Log("detector device: " + selectedDevice)
		detector := detectorcli.NewObjectDetector(config, selectedDevice, tempFilePathProvider, logger)
		err := detector.CheckAvailable()
		if err != nil {
			return nil, err
		}
		return logging.NewObjectDetectorDecorator(detector, "owlv2-cli", logger), nil
	default:
		return nil, fmt.Errorf("unknown detector backend %q", backend)
	}
}

func (a *api) RecognizePlate(location string) (string, error) {
	requestID := uuid.NewString()
	a.logger.Log(fmt.Sprintf("[%s] recognizing %s", requestID, location))
	t := time.Now()
	plate, err := a.recognitionService.RecognizePlate(location)
	if err != nil {
		a.logger.Log(fmt.Sprintf("[%s] failed (took %d ms): %s", requestID, time.Since(t).Milliseconds(), err))
		return "", err
	}
	a.logger.Log(fmt.Sprintf("[%s] recognized %q (took %d ms)", requestID, plate, time.Since(t).Milliseconds()))
	return plate, nil
}

func (a *api) Close() error {
	var firstErr error
	for _, closer := range a.closers {
		err := closer.Close()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
