package web

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/google/uuid"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
)

type TempFilePathProvider interface {
	GetTempFilePath(fileName string) string
}

// RemoteImageLoader loads images from URLs: the image is downloaded to a temporary file which is removed as soon as
// the image is decoded. Anything which is not a URL is passed to the fallback loader.
type RemoteImageLoader struct {
	urlFinder            *URLFinder
	fallback             domain.ImageLoader
	tempFilePathProvider TempFilePathProvider
	logger               common.Logger
}

func NewRemoteImageLoader(
	urlFinder *URLFinder,
	fallback domain.ImageLoader,
	tempFilePathProvider TempFilePathProvider,
	logger common.Logger,
) *RemoteImageLoader {
	return &RemoteImageLoader{
		urlFinder:            urlFinder,
		fallback:             fallback,
		tempFilePathProvider: tempFilePathProvider,
		logger:               logger,
	}
}

func (r *RemoteImageLoader) Load(location string) (image.Image, error) {
	if !r.isURL(location) {
		return r.fallback.Load(location)
	}
	filePath := r.tempFilePathProvider.GetTempFilePath("image_" + uuid.NewString())
	r.logger.Log(fmt.Sprintf("downloading %s to %s", location, filePath))
	err := common.DownloadFromURL(location, filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.Remove(filePath)
	}()
	return r.fallback.Load(filePath)
}

// the whole input must be a single URL: "look at http://x/y.jpg" is not a location
func (r *RemoteImageLoader) isURL(location string) bool {
	urls := r.urlFinder.FindURLs(location)
	return len(urls) == 1 && urls[0] == strings.TrimSpace(location)
}
