package tesseract

import (
	"context"
	"fmt"
	"strings"

	"receiptscan/internal/ocr"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine implements ocr.Engine with the libtesseract binding.
// A fresh client is created per call: gosseract clients are not safe for
// concurrent use.
type GosseractEngine struct {
	languages     []string
	pageSegMode   int
	clientFactory func() *gosseract.Client
}

// NewGosseractEngine constructs the engine. psm <= 0 keeps Tesseract's default
// page segmentation mode; 1 (auto with orientation and script detection)
// straightens rotated scans.
func NewGosseractEngine(languages []string, psm int) *GosseractEngine {
	return &GosseractEngine{
		languages:     append([]string(nil), languages...),
		pageSegMode:   psm,
		clientFactory: gosseract.NewClient,
	}
}

func (e *GosseractEngine) Name() string { return "gosseract" }

// Recognize returns one line per Tesseract text line, top to bottom as the
// layout analysis reports them.
func (e *GosseractEngine) Recognize(ctx context.Context, imagePath string) ([]ocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if e.pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.pageSegMode)); err != nil {
			return nil, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}

	return linesFromBoxes(boxes), nil
}

// linesFromBoxes keeps non-blank text lines in box order and scales
// Tesseract's 0..100 confidence to 0..1.
func linesFromBoxes(boxes []gosseract.BoundingBox) []ocr.Line {
	lines := make([]ocr.Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimRight(b.Word, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, ocr.Line{
			Text:       text,
			Confidence: b.Confidence / 100.0,
			Bounds:     b.Box,
		})
	}
	return lines
}
