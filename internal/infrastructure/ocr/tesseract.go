package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Tesseract runs the tesseract CLI over a slip image. Dispenser slips are
// monospaced dot-matrix prints, which the default engine handles well
// enough without training data.
type Tesseract struct {
	binary  string
	timeout time.Duration
}

// NewTesseract creates a tesseract-backed text recognizer. An empty binary
// falls back to "tesseract" on PATH.
func NewTesseract(binary string, timeout time.Duration) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tesseract{binary: binary, timeout: timeout}
}

// RecognizeText runs OCR on the image at imagePath and returns raw text
func (t *Tesseract) RecognizeText(ctx context.Context, imagePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	// "stdout" makes tesseract print the recognized text instead of
	// writing an output file. PSM 6 assumes a single uniform text block,
	// which matches a slip layout.
	cmd := exec.CommandContext(ctx, t.binary, imagePath, "stdout", "--psm", "6")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("tesseract timed out after %s", t.timeout)
		}
		return "", fmt.Errorf("tesseract failed: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
