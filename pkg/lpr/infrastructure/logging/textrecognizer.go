package logging

import (
	"fmt"
	"image"
	"time"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
)

type textRecognizerDecorator struct {
	wrapped domain.TextRecognizer
	name    string
	logger  common.Logger
}

func NewTextRecognizerDecorator(wrapped domain.TextRecognizer, name string, logger common.Logger) domain.TextRecognizer {
	return &textRecognizerDecorator{
		wrapped: wrapped,
		name:    name,
		logger:  logger,
	}
}

func (t *textRecognizerDecorator) Recognize(img image.Image) ([]domain.TextRegion, error) {
	bounds := img.Bounds()
	t.logger.Log(fmt.Sprintf("recognize (using '%s'): %dx%d crop", t.name, bounds.Dx(), bounds.Dy()))
	start := time.Now()
	regions, err := t.wrapped.Recognize(img)
	if err != nil {
		t.logger.Log(fmt.Sprintf("recognize failed (took %d ms): %s", time.Since(start).Milliseconds(), err))
		return nil, err
	}
	t.logger.Log(fmt.Sprintf("recognize found %d region(s) (took %d ms)", len(regions), time.Since(start).Milliseconds()))
	for _, region := range regions {
		t.logger.Log(fmt.Sprintf("  %q %.2f %v", region.Text, region.Confidence, region.Quad))
	}
	return regions, nil
}

func (t *textRecognizerDecorator) ChannelOrder() domain.ChannelOrder {
	return t.wrapped.ChannelOrder()
}
