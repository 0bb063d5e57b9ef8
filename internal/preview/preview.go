// Package preview saves sensor preview frames as image files.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// ResizeToFit scales an image down to fit within maxEdge on its longest side
// while keeping aspect ratio. Images already within the limit are returned
// unchanged.
func ResizeToFit(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxEdge && height <= maxEdge {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxEdge
		newHeight = height * maxEdge / width
	} else {
		newHeight = maxEdge
		newWidth = width * maxEdge / height
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

// SaveFrame writes a frame to dir as a numbered PNG and returns the path.
func SaveFrame(dir string, number int, img image.Image) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", number))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write frame file: %w", err)
	}
	return path, nil
}
