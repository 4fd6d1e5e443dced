package fs

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

var ErrEmptyImage = errors.New("nothing was rendered")

// SavePNG writes img to path and returns the file size. An empty image or
// an empty file on disk is an error, and the empty file is removed.
func SavePNG(img image.Image, path string) (int64, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, ErrEmptyImage
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create charts directory: %w", err)
	}

	tempFilePath := path + ".tmp.png"
	if err := gg.SavePNG(tempFilePath, img); err != nil {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to save chart: %w", err)
	}
	if err := os.Rename(tempFilePath, path); err != nil {
		_ = os.Remove(tempFilePath)
		return 0, fmt.Errorf("failed to move chart into place: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat chart file: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return 0, fmt.Errorf("chart file is empty after rendering")
	}
	return info.Size(), nil
}
