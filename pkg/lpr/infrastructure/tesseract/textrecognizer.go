package tesseract

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/imaging"
)

// client is the subset of *gosseract.Client the recognizer relies on.
type client interface {
	SetImageFromBytes(data []byte) error
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// TextRecognizer reads text lines with Tesseract. A single client is created at startup and reused for every request;
// Tesseract clients aren't safe for concurrent use, hence the mutex.
type TextRecognizer struct {
	mutex  sync.Mutex
	client client
}

// NewTextRecognizer configures a Tesseract client. With angle classification enabled, Tesseract first detects the
// orientation of the text (which requires the "osd" trained data).
func NewTextRecognizer(config *common.Config) (*TextRecognizer, error) {
	c := gosseract.NewClient()
	err := configureClient(c, config)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &TextRecognizer{client: c}, nil
}

func configureClient(c *gosseract.Client, config *common.Config) error {
	language := config.GetStringOrDefault(domain.ConfigKeyOCRLanguage, domain.DefaultOCRLanguage)
	err := c.SetLanguage(language)
	if err != nil {
		return fmt.Errorf("set language %q: %w", language, err)
	}
	err = c.SetPageSegMode(pageSegMode(config))
	if err != nil {
		return fmt.Errorf("set page segmentation mode: %w", err)
	}
	// Tesseract prints warnings ("Estimating resolution as ...") straight to stderr otherwise.
	err = c.SetVariable(gosseract.SettableVariable("debug_file"), os.DevNull)
	if err != nil {
		return fmt.Errorf("silence tesseract: %w", err)
	}
	return nil
}

// pageSegMode detects orientation first unless angle classification is switched off.
func pageSegMode(config *common.Config) gosseract.PageSegMode {
	if config.GetBoolOrDefault(domain.ConfigKeyOCRAngleClassification, true) {
		return gosseract.PSM_AUTO_OSD
	}
	return gosseract.PSM_AUTO
}

func (t *TextRecognizer) Recognize(img image.Image) ([]domain.TextRegion, error) {
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	err = t.client.SetImageFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}
	return toTextRegions(boxes), nil
}

func (t *TextRecognizer) ChannelOrder() domain.ChannelOrder {
	return domain.ChannelOrderRGB
}

func (t *TextRecognizer) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.client.Close()
}

func toTextRegions(boxes []gosseract.BoundingBox) []domain.TextRegion {
	regions := make([]domain.TextRegion, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		regions = append(regions, domain.TextRegion{
			Quad:       domain.QuadrilateralFromRectangle(box.Box),
			Text:       text,
			Confidence: box.Confidence / 100.0,
		})
	}
	return regions
}
