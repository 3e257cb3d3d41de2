package filesystem

import (
	"os"
	"path/filepath"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
)

type TempFilePathProvider struct {
	tempDirectoryPath string
}

func NewTempFilePathProvider(config *common.Config) *TempFilePathProvider {
	return &TempFilePathProvider{
		tempDirectoryPath: config.GetStringOrDefault(domain.ConfigKeyTempFilePathProvider, os.TempDir()),
	}
}

func (t *TempFilePathProvider) GetTempFilePath(fileName string) string {
	return filepath.Join(t.tempDirectoryPath, fileName)
}
