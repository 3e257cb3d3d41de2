package domain

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

type Point struct {
	X float64
	Y float64
}

// Quadrilateral lists four corners clockwise starting from the top-left one: top-left, top-right, bottom-right,
// bottom-left.
type Quadrilateral [4]Point

// QuadrilateralFromRectangle converts an axis-aligned rectangle to a quadrilateral.
func QuadrilateralFromRectangle(r image.Rectangle) Quadrilateral {
	return Quadrilateral{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}

// TextRegion is a piece of text recognized by OCR, together with where it was found and how confident the engine is
// (0..1).
type TextRegion struct {
	Quad       Quadrilateral
	Text       string
	Confidence float64
}

// TextRecognizer extracts text from an image (OCR).
type TextRecognizer interface {
	// Recognize returns the text regions found in `img`, in the engine's own order.
	Recognize(img image.Image) ([]TextRegion, error)
	// ChannelOrder is the channel order the engine expects its input in.
	ChannelOrder() ChannelOrder
}

// ChannelOrder tells in which order color channels are laid out in the pixel buffer handed to a TextRecognizer.
type ChannelOrder string

const (
	ChannelOrderRGB = ChannelOrder("rgb")
	ChannelOrderBGR = ChannelOrder("bgr")
)

// ParseChannelOrder accepts "rgb" or "bgr" in any case. An empty value is valid and means "whatever the recognizer
// expects".
func ParseChannelOrder(value string) (ChannelOrder, error) {
	order := ChannelOrder(strings.ToLower(strings.TrimSpace(value)))
	switch order {
	case "", ChannelOrderRGB, ChannelOrderBGR:
		return order, nil
	default:
		return "", fmt.Errorf("unknown channel order %q (expected %q or %q)", value, ChannelOrderRGB, ChannelOrderBGR)
	}
}

// readingOrderCorner is the corner whose Y coordinate approximates the reading order of text regions on a plate.
const readingOrderCorner = 2

// JoinInReadingOrder sorts regions top to bottom (by the Y coordinate of the bottom-right corner) and joins their texts
// with single spaces. Regions with blank text are skipped. The input slice is not modified.
func JoinInReadingOrder(regions []TextRegion) string {
	sorted := make([]TextRegion, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quad[readingOrderCorner].Y < sorted[j].Quad[readingOrderCorner].Y
	})
	texts := make([]string, 0, len(sorted))
	for _, region := range sorted {
		text := strings.TrimSpace(region.Text)
		if text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " ")
}
