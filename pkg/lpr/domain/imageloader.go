package domain

import "image"

// ImageLoader opens an image given a user-provided location (a file path, or a URL for some implementations).
type ImageLoader interface {
	Load(location string) (image.Image, error)
}

// ImageProcessor contains the pixel manipulations the recognition pipeline needs.
type ImageProcessor interface {
	// Crop copies the part of `img` inside `box` into a new image. The box is clipped to the image bounds; an
	// empty intersection is an error.
	Crop(img image.Image, box BoundingBox) (image.Image, error)
	// ConvertChannelOrder returns the image with its color channels laid out in `order`.
	ConvertChannelOrder(img image.Image, order ChannelOrder) image.Image
}
