package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fuelsight/fuelsight-api/pkg/slip"
)

// parseSlipJSON parses the JSON response from Gemini into slip fields.
// Model responses often wrap the object in markdown code fences.
func parseSlipJSON(text string) (*slip.Slip, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[startIdx : endIdx+1]

	var s slip.Slip
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	// Models occasionally echo placeholder text for illegible fields;
	// normalize those back to the empty string the pipeline expects.
	s.PumpSerialNumber = cleanField(s.PumpSerialNumber)
	s.PrintDate = strings.ToUpper(cleanField(s.PrintDate))
	s.Model = cleanField(s.Model)
	for i := range s.Nozzles {
		s.Nozzles[i].Nozzle = cleanField(s.Nozzles[i].Nozzle)
		s.Nozzles[i].A = cleanField(s.Nozzles[i].A)
		s.Nozzles[i].V = cleanField(s.Nozzles[i].V)
		s.Nozzles[i].TotSales = cleanField(s.Nozzles[i].TotSales)
	}

	return &s, nil
}

func cleanField(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "n/a", "na", "null", "none", "unknown", "-":
		return ""
	}
	return v
}
