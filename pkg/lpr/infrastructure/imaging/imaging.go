package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"kgeyst.com/platereader/pkg/lpr/domain"
)

var ErrEmptyCrop = errors.New("crop region is outside of the image bounds")

// Processor implements domain.ImageProcessor.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Crop(img image.Image, box domain.BoundingBox) (image.Image, error) {
	cropped, err := Crop(img, box)
	if err != nil {
		return nil, err
	}
	return cropped, nil
}

func (p *Processor) ConvertChannelOrder(img image.Image, order domain.ChannelOrder) image.Image {
	rgba := ToRGBA(img)
	if order == domain.ChannelOrderBGR {
		return SwapRedBlue(rgba)
	}
	return rgba
}

// Decode decodes any of the registered formats: JPEG, PNG, GIF, BMP, TIFF and WebP.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty %s image", format)
	}
	return img, nil
}

// Crop copies the part of `img` inside `box` into a new RGBA image whose origin is (0,0). The box is clipped to the
// image bounds first.
func Crop(img image.Image, box domain.BoundingBox) (*image.RGBA, error) {
	rect := box.Rectangle().Canon().Intersect(img.Bounds())
	if rect.Empty() {
		return nil, ErrEmptyCrop
	}
	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(cropped, cropped.Bounds(), img, rect.Min, draw.Src)
	return cropped, nil
}

// ToRGBA converts any color model (YCbCr, paletted, gray, CMYK...) to 8-bit RGBA with its origin at (0,0). An image
// that already satisfies this is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// SwapRedBlue returns a copy of `img` with the red and blue channels exchanged, i.e. RGB becomes BGR and vice versa.
func SwapRedBlue(img *image.RGBA) *image.RGBA {
	swapped := image.NewRGBA(img.Rect)
	copy(swapped.Pix, img.Pix)
	for y := 0; y < img.Rect.Dy(); y++ {
		row := swapped.Pix[y*swapped.Stride : y*swapped.Stride+img.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+2] = row[i+2], row[i]
		}
	}
	return swapped
}

// EncodePNG encodes the image losslessly, which is what inference engines are fed with.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
