package domain

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageLoader struct {
	img image.Image
	err error
}

func (f *fakeImageLoader) Load(location string) (image.Image, error) {
	return f.img, f.err
}

type fakeImageProcessor struct {
	croppedBox   BoundingBox
	cropErr      error
	channelOrder ChannelOrder
}

func (f *fakeImageProcessor) Crop(img image.Image, box BoundingBox) (image.Image, error) {
	f.croppedBox = box
	if f.cropErr != nil {
		return nil, f.cropErr
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 2)), nil
}

func (f *fakeImageProcessor) ConvertChannelOrder(img image.Image, order ChannelOrder) image.Image {
	f.channelOrder = order
	return img
}

type fakeObjectDetector struct {
	detections []Detection
	err        error
	labels     []string
}

func (f *fakeObjectDetector) Detect(img image.Image, candidateLabels []string) ([]Detection, error) {
	f.labels = candidateLabels
	return f.detections, f.err
}

type fakeTextRecognizer struct {
	regions []TextRegion
	err     error
	calls   int
}

func (f *fakeTextRecognizer) Recognize(img image.Image) ([]TextRegion, error) {
	f.calls++
	return f.regions, f.err
}

func (f *fakeTextRecognizer) ChannelOrder() ChannelOrder {
	return ChannelOrderBGR
}

func regionAt(text string, bottomY float64) TextRegion {
	return TextRegion{
		Quad:       QuadrilateralFromRectangle(image.Rect(0, int(bottomY)-10, 50, int(bottomY))),
		Text:       text,
		Confidence: 0.9,
	}
}

type fixture struct {
	loader     *fakeImageLoader
	processor  *fakeImageProcessor
	detector   *fakeObjectDetector
	recognizer *fakeTextRecognizer
}

func newFixture() *fixture {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	img.Set(1, 1, color.White)
	return &fixture{
		loader:    &fakeImageLoader{img: img},
		processor: &fakeImageProcessor{},
		detector: &fakeObjectDetector{
			detections: []Detection{
				{Box: BoundingBox{XMin: 1, YMin: 1, XMax: 10, YMax: 5}, Label: DefaultCandidateLabel, Score: 0.3},
				{Box: BoundingBox{XMin: 20, YMin: 30, XMax: 60, YMax: 45}, Label: DefaultCandidateLabel, Score: 0.8},
			},
		},
		recognizer: &fakeTextRecognizer{},
	}
}

func (f *fixture) service(channelOrder ChannelOrder) *RecognitionService {
	return NewRecognitionService(f.loader, f.processor, f.detector, f.recognizer, nil, channelOrder)
}

func TestRecognizePlateJoinsTextTopToBottom(t *testing.T) {
	f := newFixture()
	f.recognizer.regions = []TextRegion{
		regionAt("12345", 40),
		regionAt("AB", 15),
		regionAt("  ", 20),
	}
	plate, err := f.service("").RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, "AB 12345", plate)
}

func TestRecognizePlateCropsTopScoringBox(t *testing.T) {
	f := newFixture()
	f.recognizer.regions = []TextRegion{regionAt("XYZ", 10)}
	_, err := f.service("").RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, BoundingBox{XMin: 20, YMin: 30, XMax: 60, YMax: 45}, f.processor.croppedBox)
	assert.Equal(t, []string{DefaultCandidateLabel}, f.detector.labels)
}

func TestRecognizePlateReturnsUnknownWithoutText(t *testing.T) {
	f := newFixture()
	plate, err := f.service("").RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, UnknownPlate, plate)

	f.recognizer.regions = []TextRegion{regionAt(" ", 10)}
	plate, err = f.service("").RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, UnknownPlate, plate)
}

func TestRecognizePlateFailsWithoutDetections(t *testing.T) {
	f := newFixture()
	f.detector.detections = nil
	_, err := f.service("").RecognizePlate("car.jpg")
	assert.ErrorIs(t, err, ErrNoPlateDetected)
	assert.Equal(t, 0, f.recognizer.calls)
}

func TestRecognizePlatePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	f := newFixture()
	f.loader.err = boom
	_, err := f.service("").RecognizePlate("missing.jpg")
	assert.ErrorIs(t, err, boom)

	f = newFixture()
	f.detector.err = boom
	_, err = f.service("").RecognizePlate("car.jpg")
	assert.ErrorIs(t, err, boom)

	f = newFixture()
	f.processor.cropErr = boom
	_, err = f.service("").RecognizePlate("car.jpg")
	assert.ErrorIs(t, err, boom)

	f = newFixture()
	f.recognizer.err = boom
	_, err = f.service("").RecognizePlate("car.jpg")
	assert.ErrorIs(t, err, boom)
}

func TestRecognizePlateUsesRecognizerChannelOrderByDefault(t *testing.T) {
	f := newFixture()
	_, err := f.service("").RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, ChannelOrderBGR, f.processor.channelOrder)

	_, err = f.service(ChannelOrderRGB).RecognizePlate("car.jpg")
	require.NoError(t, err)
	assert.Equal(t, ChannelOrderRGB, f.processor.channelOrder)
}
