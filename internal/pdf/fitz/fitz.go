// Package fitz renders PDF pages with MuPDF through go-fitz.
package fitz

import (
	"context"
	"errors"
	"fmt"
	"image"

	"receiptscan/internal/pdf"

	"github.com/gen2brain/go-fitz"
)

var errNoPages = errors.New("document has no pages")

// Rasterizer implements pdf.Rasterizer. Each call opens its own MuPDF
// document, so one Rasterizer may be shared across requests.
type Rasterizer struct {
	// DPI overrides MuPDF's default resolution when > 0.
	DPI float64
}

func New(dpi float64) *Rasterizer {
	return &Rasterizer{DPI: dpi}
}

func (r *Rasterizer) Rasterize(ctx context.Context, data []byte) ([]image.Image, error) {
	if !pdf.LooksLikePDF(data) {
		return nil, pdf.ErrNotPDF
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n <= 0 {
		return nil, fmt.Errorf("open pdf: %w", errNoPages)
	}
	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var img *image.RGBA
		if r.DPI > 0 {
			img, err = doc.ImageDPI(i, r.DPI)
		} else {
			img, err = doc.Image(i)
		}
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
