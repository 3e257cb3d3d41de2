package common

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const maxDownloadSize = 64 << 20

var httpClient = &http.Client{Timeout: 30 * time.Second}

// ReadAllFromURL reads all content from the URL. Content is capped at 64 MiB so that an endlessly streaming page
// can't exhaust memory.
func ReadAllFromURL(url string) ([]byte, error) {
	res, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status)
	}
	content, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > maxDownloadSize {
		return nil, fmt.Errorf("GET %s: content exceeds %d bytes", url, maxDownloadSize)
	}
	return content, nil
}

// DownloadFromURL saves the content found at `url` to `filePath`.
func DownloadFromURL(url, filePath string) error {
	content, err := ReadAllFromURL(url)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, content, 0644)
}
