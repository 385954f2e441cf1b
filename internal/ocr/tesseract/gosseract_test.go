package tesseract

import (
	"image"
	"testing"

	"receiptscan/internal/ocr"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
)

func TestLinesFromBoxes(t *testing.T) {
	tests := []struct {
		name  string
		boxes []gosseract.BoundingBox
		want  []ocr.Line
	}{
		{
			name: "keeps order and scales confidence",
			boxes: []gosseract.BoundingBox{
				{Box: image.Rect(0, 0, 100, 20), Word: "STORE 42\n", Confidence: 91},
				{Box: image.Rect(0, 20, 100, 40), Word: "Milk 2.99\r\n", Confidence: 50},
			},
			want: []ocr.Line{
				{Text: "STORE 42", Confidence: 0.91, Bounds: image.Rect(0, 0, 100, 20)},
				{Text: "Milk 2.99", Confidence: 0.5, Bounds: image.Rect(0, 20, 100, 40)},
			},
		},
		{
			name: "drops blank lines",
			boxes: []gosseract.BoundingBox{
				{Word: "  \n", Confidence: 10},
				{Word: "Eggs 3.49\n", Confidence: 80},
				{Word: "", Confidence: 0},
			},
			want: []ocr.Line{{Text: "Eggs 3.49", Confidence: 0.8}},
		},
		{
			name:  "no boxes",
			boxes: nil,
			want:  []ocr.Line{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linesFromBoxes(tt.boxes)

			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Text, got[i].Text)
				assert.InDelta(t, tt.want[i].Confidence, got[i].Confidence, 1e-9)
				assert.Equal(t, tt.want[i].Bounds, got[i].Bounds)
			}
		})
	}
}

func TestNewGosseractEngine_CopiesLanguages(t *testing.T) {
	langs := []string{"eng"}
	e := NewGosseractEngine(langs, 1)
	langs[0] = "deu"

	assert.Equal(t, []string{"eng"}, e.languages)
	assert.Equal(t, 1, e.pageSegMode)
}
