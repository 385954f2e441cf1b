// Package tesseract provides Tesseract-backed ocr.Engine implementations:
// the libtesseract binding (gosseract) and the tesseract command line tool.
package tesseract

import (
	"fmt"

	"receiptscan/internal/ocr"
)

const (
	EngineGosseract = "gosseract"
	EngineCLI       = "cli"
)

// New returns the engine registered under name.
func New(name, binary string, languages []string, psm int) (ocr.Engine, error) {
	switch name {
	case "", EngineGosseract:
		return NewGosseractEngine(languages, psm), nil
	case EngineCLI:
		return NewCLIEngine(binary, languages, psm), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", name)
	}
}
