package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"receiptscan/internal/ocr"
)

// CLIEngine shells out to the tesseract binary and reads plain text from stdout.
type CLIEngine struct {
	binary      string
	languages   []string
	pageSegMode int
}

func NewCLIEngine(binary string, languages []string, psm int) *CLIEngine {
	if binary == "" {
		binary = "tesseract"
	}
	return &CLIEngine{
		binary:      binary,
		languages:   append([]string(nil), languages...),
		pageSegMode: psm,
	}
}

func (e *CLIEngine) Name() string { return "tesseract-cli" }

func (e *CLIEngine) Recognize(ctx context.Context, imagePath string) ([]ocr.Line, error) {
	cmd := exec.CommandContext(ctx, e.binary, e.args(imagePath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}
	return SplitLines(string(out)), nil
}

func (e *CLIEngine) args(imagePath string) []string {
	args := []string{imagePath, "stdout"}
	if len(e.languages) > 0 {
		args = append(args, "-l", strings.Join(e.languages, "+"))
	}
	if e.pageSegMode > 0 {
		args = append(args, "--psm", strconv.Itoa(e.pageSegMode))
	}
	return args
}

// SplitLines turns tesseract's plain text output into lines, dropping blank
// lines and the trailing form feed it emits per page.
func SplitLines(out string) []ocr.Line {
	out = strings.ReplaceAll(out, "\f", "")
	out = strings.ReplaceAll(out, "\r\n", "\n")

	var lines []ocr.Line
	for _, l := range strings.Split(out, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, ocr.Line{Text: l})
	}
	return lines
}
