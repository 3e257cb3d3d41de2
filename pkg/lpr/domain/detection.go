package domain

import (
	"image"
	"math"
	"sort"
)

// BoundingBox is an axis-aligned box in pixel coordinates with the origin in the upper-left corner of the image.
type BoundingBox struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Rectangle rounds the box to integer pixel coordinates.
func (b BoundingBox) Rectangle() image.Rectangle {
	return image.Rect(
		int(math.Round(b.XMin)),
		int(math.Round(b.YMin)),
		int(math.Round(b.XMax)),
		int(math.Round(b.YMax)),
	)
}

// Detection is a single box found by an object detector for one of the candidate labels.
type Detection struct {
	Box   BoundingBox `json:"box"`
	Label string      `json:"label"`
	Score float64     `json:"score"`
}

// ObjectDetector locates regions matching free-text labels without task-specific training (zero-shot detection).
type ObjectDetector interface {
	// Detect returns all detections for `candidateLabels` found in `img`. The order of the result is unspecified.
	Detect(img image.Image, candidateLabels []string) ([]Detection, error)
}

// SortDetectionsByScore sorts detections from the highest score to the lowest one. Equal scores keep their order.
func SortDetectionsByScore(detections []Detection) {
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Score > detections[j].Score
	})
}

// FilterDetectionsByScore drops detections whose score is below `threshold`.
func FilterDetectionsByScore(detections []Detection, threshold float64) []Detection {
	result := make([]Detection, 0, len(detections))
	for _, detection := range detections {
		if detection.Score >= threshold {
			result = append(result, detection)
		}
	}
	return result
}

// TopDetection returns the highest-scoring detection; false if there are none.
func TopDetection(detections []Detection) (Detection, bool) {
	if len(detections) == 0 {
		return Detection{}, false
	}
	top := detections[0]
	for _, detection := range detections[1:] {
		if detection.Score > top.Score {
			top = detection
		}
	}
	return top, true
}
