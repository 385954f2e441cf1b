package fitz

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"receiptscan/internal/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal PDF with one 1x1 inch page per fill colour
// ("r g b" operands), with a correct xref table.
func buildPDF(colors ...string) []byte {
	objs := []string{"<< /Type /Catalog /Pages 2 0 R >>"}

	kids := make([]string, len(colors))
	for i := range colors {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(colors)))

	contentBase := 3 + len(colors)
	for i := range colors {
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 72 72] /Contents %d 0 R >>", contentBase+i))
	}
	for _, c := range colors {
		stream := c + " rg 0 0 72 72 re f"
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func centerRGB(img image.Image) (r, g, b uint32) {
	bounds := img.Bounds()
	r, g, b, _ = img.At(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestRasterize_RejectsNonPDF(t *testing.T) {
	r := New(0)

	_, err := r.Rasterize(context.Background(), []byte("\x89PNG\r\n\x1a\n not a pdf"))
	assert.ErrorIs(t, err, pdf.ErrNotPDF)
}

func TestRasterize_PagesInOrder(t *testing.T) {
	doc := buildPDF("1 0 0", "0 0 1")

	for _, dpi := range []float64{0, 150} {
		t.Run(fmt.Sprintf("dpi %v", dpi), func(t *testing.T) {
			pages, err := New(dpi).Rasterize(context.Background(), doc)
			require.NoError(t, err)
			require.Len(t, pages, 2)

			for _, p := range pages {
				assert.False(t, p.Bounds().Empty())
			}

			r, _, b := centerRGB(pages[0])
			assert.Greater(t, r, b, "first page should be red")
			r, _, b = centerRGB(pages[1])
			assert.Greater(t, b, r, "second page should be blue")
		})
	}
}

func TestRasterize_DPIControlsSize(t *testing.T) {
	doc := buildPDF("0 1 0")

	pages, err := New(150).Rasterize(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// one inch square page
	assert.InDelta(t, 150, pages[0].Bounds().Dx(), 1)
	assert.InDelta(t, 150, pages[0].Bounds().Dy(), 1)
}

func TestRasterize_TruncatedPDF(t *testing.T) {
	truncated := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R")

	pages, err := New(0).Rasterize(context.Background(), truncated)
	require.Error(t, err)
	assert.Nil(t, pages)
	assert.NotErrorIs(t, err, pdf.ErrNotPDF)
	assert.Contains(t, err.Error(), "open pdf")
}

func TestRasterize_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0).Rasterize(ctx, buildPDF("1 0 0"))
	assert.ErrorIs(t, err, context.Canceled)
}
