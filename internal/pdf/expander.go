package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"go.uber.org/zap"
)

// ImageExtractor is the per-page OCR step.
type ImageExtractor interface {
	ExtractImage(ctx context.Context, data []byte) (string, error)
}

// Expander OCRs a PDF page by page.
type Expander struct {
	raster  Rasterizer
	images  ImageExtractor
	quality int
	logger  *zap.Logger
}

func NewExpander(raster Rasterizer, images ImageExtractor, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{raster: raster, images: images, quality: 90, logger: logger}
}

// ExpandText rasterizes data and concatenates each page's OCR text in page
// order. Pages are processed sequentially. The page count is returned with the
// text; rasterizer failures wrap ErrRasterize.
func (e *Expander) ExpandText(ctx context.Context, data []byte) (string, int, error) {
	pages, err := e.raster.Rasterize(ctx, data)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrRasterize, err)
	}

	var b strings.Builder
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", i, err
		}

		encoded, err := e.encode(page)
		if err != nil {
			return "", i, fmt.Errorf("encode page %d: %w", i+1, err)
		}

		text, err := e.images.ExtractImage(ctx, encoded)
		if err != nil {
			return "", i, fmt.Errorf("page %d: %w", i+1, err)
		}
		b.WriteString(text)

		e.logger.Debug("PDF_PAGE_DONE",
			zap.Int("page", i+1),
			zap.Int("of", len(pages)),
			zap.Int("chars", len(text)))
	}

	return b.String(), len(pages), nil
}

func (e *Expander) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
