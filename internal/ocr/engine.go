package ocr

import (
	"context"
	"image"
)

// Line is one recognised text line in the order the engine reported it.
type Line struct {
	Text       string
	Confidence float64 // 0..1, zero when the engine does not report it
	Bounds     image.Rectangle
}

// Engine recognises text in an image file on disk.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) ([]Line, error)
}
