package ocr

import (
	"context"
	"fmt"
	"strings"

	"receiptscan/internal/staging"

	"go.uber.org/zap"
)

// Extractor turns raw image bytes into newline separated text using an Engine.
type Extractor struct {
	engine  Engine
	tempDir string
	logger  *zap.Logger
}

func NewExtractor(engine Engine, tempDir string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{engine: engine, tempDir: tempDir, logger: logger}
}

// ExtractImage stages data in a temp file, runs the engine on it and returns
// every line followed by "\n", in engine order.
func (e *Extractor) ExtractImage(ctx context.Context, data []byte) (string, error) {
	f, err := staging.Stage(e.tempDir, "receipt-*", data)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Release(); err != nil {
			e.logger.Warn("temp file cleanup failed", zap.String("path", f.Path()), zap.Error(err))
		}
	}()

	lines, err := e.engine.Recognize(ctx, f.Path())
	if err != nil {
		return "", fmt.Errorf("recognize image with %s: %w", e.engine.Name(), err)
	}

	text := JoinLines(lines)

	e.logger.Debug("OCR_DONE",
		zap.String("engine", e.engine.Name()),
		zap.Int("bytes", len(data)),
		zap.Int("lines", len(lines)),
		zap.Int("chars", len(text)))

	return text, nil
}

// JoinLines concatenates line texts, each terminated by a newline.
func JoinLines(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
