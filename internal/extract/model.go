package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Branch is the path an upload takes through the pipeline.
type Branch string

const (
	BranchImage       Branch = "image"
	BranchPDF         Branch = "pdf"
	BranchUnsupported Branch = "unsupported"
)

// Classify picks the branch from the declared content type only: any image/*
// type, or exactly application/pdf.
func Classify(contentType string) Branch {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return BranchImage
	case contentType == "application/pdf":
		return BranchPDF
	default:
		return BranchUnsupported
	}
}

var ErrUnsupportedType = errors.New("Unsupported file type")

// Pipeline stages that call out to external collaborators.
const (
	StageOCR       = "ocr"
	StageRasterize = "rasterize"
	StageLLM       = "llm"
)

// StageError reports a collaborator failure and the stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
