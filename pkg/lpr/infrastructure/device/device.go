package device

import (
	"os/exec"
	"strings"
)

const (
	CUDA = "cuda"
	CPU  = "cpu"
	Auto = "auto"
)

// LookPathFunc is exec.LookPath; replaced in tests.
type LookPathFunc func(file string) (string, error)

// Resolve turns a device preference into the device to run on: "cuda" and "cpu" are taken as is, while "auto" (or
// anything unrecognized) selects "cuda" if an NVIDIA driver is installed and "cpu" otherwise.
func Resolve(preference string, lookPath LookPathFunc) string {
	switch strings.ToLower(strings.TrimSpace(preference)) {
	case CUDA:
		return CUDA
	case CPU:
		return CPU
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath("nvidia-smi"); err == nil {
		return CUDA
	}
	return CPU
}
