package domain

import (
	"errors"
	"fmt"
)

// UnknownPlate is returned when a plate was located but no text could be read from it.
const UnknownPlate = "UNKNOWN"

// ErrNoPlateDetected is returned when the detector finds no box for any of the candidate labels.
var ErrNoPlateDetected = errors.New("no license plate detected")

// RecognitionService is the whole license plate recognition pipeline: load the image, locate the plate with a
// zero-shot object detector, crop it and read it with OCR.
type RecognitionService struct {
	imageLoader     ImageLoader
	imageProcessor  ImageProcessor
	objectDetector  ObjectDetector
	textRecognizer  TextRecognizer
	candidateLabels []string
	channelOrder    ChannelOrder
}

func NewRecognitionService(
	imageLoader ImageLoader,
	imageProcessor ImageProcessor,
	objectDetector ObjectDetector,
	textRecognizer TextRecognizer,
	candidateLabels []string,
	channelOrder ChannelOrder,
) *RecognitionService {
	if len(candidateLabels) == 0 {
		candidateLabels = []string{DefaultCandidateLabel}
	}
	if channelOrder == "" {
		channelOrder = textRecognizer.ChannelOrder()
	}
	return &RecognitionService{
		imageLoader:     imageLoader,
		imageProcessor:  imageProcessor,
		objectDetector:  objectDetector,
		textRecognizer:  textRecognizer,
		candidateLabels: candidateLabels,
		channelOrder:    channelOrder,
	}
}

// RecognizePlate returns the text of the top-scoring license plate found in the image at `location`, or UnknownPlate
// if the plate has no readable text. Only one plate is ever read, even if the image contains several.
func (r *RecognitionService) RecognizePlate(location string) (string, error) {
	img, err := r.imageLoader.Load(location)
	if err != nil {
		return "", err
	}
	detections, err := r.objectDetector.Detect(img, r.candidateLabels)
	if err != nil {
		return "", fmt.Errorf("detect plate: %w", err)
	}
	top, ok := TopDetection(detections)
	if !ok {
		return "", ErrNoPlateDetected
	}
	cropped, err := r.imageProcessor.Crop(img, top.Box)
	if err != nil {
		return "", fmt.Errorf("crop plate: %w", err)
	}
	cropped = r.imageProcessor.ConvertChannelOrder(cropped, r.channelOrder)
	regions, err := r.textRecognizer.Recognize(cropped)
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	text := JoinInReadingOrder(regions)
	if text == "" {
		return UnknownPlate, nil
	}
	return text, nil
}
