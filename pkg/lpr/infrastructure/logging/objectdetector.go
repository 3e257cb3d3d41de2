package logging

import (
	"fmt"
	"image"
	"time"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
)

type objectDetectorDecorator struct {
	wrapped domain.ObjectDetector
	name    string
	logger  common.Logger
}

func NewObjectDetectorDecorator(wrapped domain.ObjectDetector, name string, logger common.Logger) domain.ObjectDetector {
	return &objectDetectorDecorator{
		wrapped: wrapped,
		name:    name,
		logger:  logger,
	}
}

func (o *objectDetectorDecorator) Detect(img image.Image, candidateLabels []string) ([]domain.Detection, error) {
	bounds := img.Bounds()
	o.logger.Log(fmt.Sprintf("detect (using '%s'): %dx%d image, labels %q", o.name, bounds.Dx(), bounds.Dy(), candidateLabels))
	t := time.Now()
	detections, err := o.wrapped.Detect(img, candidateLabels)
	if err != nil {
		o.logger.Log(fmt.Sprintf("detect failed (took %d ms): %s", time.Since(t).Milliseconds(), err))
		return nil, err
	}
	o.logger.Log(fmt.Sprintf("detect found %d box(es) (took %d ms)", len(detections), time.Since(t).Milliseconds()))
	for _, detection := range detections {
		o.logger.Log(fmt.Sprintf("  %s %.3f %+v", detection.Label, detection.Score, detection.Box))
	}
	return detections, nil
}
