package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fuelsight/fuelsight-api/pkg/slip"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const slipExtractPrompt = `You are reading a photo of a fuel dispenser totalizer slip.
Extract the printed values and respond with ONLY a JSON object, no prose:
{
  "pumpSerialNumber": "6-digit serial, empty string if absent",
  "printDate": "date exactly as printed, e.g. 14-JUL-2024, empty string if absent",
  "model": "model number, empty string if absent",
  "nozzles": [
    {"nozzle": "nozzle number", "a": "A totalizer", "v": "V totalizer", "totSales": "TOT SALES value"}
  ]
}
Copy digits exactly as printed, keeping decimal points. Omit thousands separators.
Use an empty string for any field that is not legible. Do not invent values.`

// Gemini extracts structured slip fields with Google Gemini. It is the
// fallback path for slips whose print is too degraded for plain OCR.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini slip extractor
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// ExtractSlip analyzes a slip image and extracts its printed fields
func (g *Gemini) ExtractSlip(ctx context.Context, imageData []byte) (*slip.Slip, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	parts := []genai.Part{
		genai.ImageData("png", imageData),
		genai.Text(slipExtractPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	parsed, err := parseSlipJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing slip data: %w", err)
	}

	return parsed, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
