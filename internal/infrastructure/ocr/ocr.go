package ocr

import (
	"context"

	"github.com/fuelsight/fuelsight-api/pkg/slip"
)

// TextRecognizer turns a slip image on disk into raw text. The text is fed
// through the slip parser afterwards; recognizers do no interpretation.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, imagePath string) (string, error)
}

// SlipExtractor extracts structured slip fields directly from the image.
// Used as a fallback when plain text recognition yields nothing parseable.
type SlipExtractor interface {
	ExtractSlip(ctx context.Context, imageData []byte) (*slip.Slip, error)
	// Close releases the extractor's resources
	Close() error
}
