package filesystem

import (
	"image"
	"os"

	"kgeyst.com/platereader/pkg/lpr/infrastructure/imaging"
)

// ImageLoader loads images from the local filesystem.
type ImageLoader struct{}

func NewImageLoader() *ImageLoader {
	return &ImageLoader{}
}

func (l *ImageLoader) Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return imaging.Decode(file)
}
