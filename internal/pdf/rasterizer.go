package pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
)

var (
	ErrNotPDF    = errors.New("not a PDF document")
	ErrRasterize = errors.New("rasterize pdf")
)

var pdfMagic = []byte("%PDF")

// Rasterizer renders every page of a PDF into an image, in document order.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([]image.Image, error)
}

// LooksLikePDF reports whether data starts with the PDF header, allowing for
// leading whitespace some generators emit.
func LooksLikePDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\x00"), pdfMagic)
}
