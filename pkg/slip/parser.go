package slip

import (
	"regexp"
	"strings"
)

// Nozzle holds the raw string fields captured for one dispenser nozzle.
// Fields may be empty when the printout is partially unreadable.
type Nozzle struct {
	Nozzle   string `json:"nozzle"`
	A        string `json:"a"`
	V        string `json:"v"`
	TotSales string `json:"totSales"`
}

// Slip is the structured result of parsing one dispenser printout.
type Slip struct {
	PumpSerialNumber string   `json:"pumpSerialNumber"`
	PrintDate        string   `json:"printDate"`
	Model            string   `json:"model"`
	Nozzles          []Nozzle `json:"nozzles"`
}

// Empty reports whether parsing produced nothing usable: no nozzles and
// every header field blank. Callers treat this as "no extractable data".
func (s *Slip) Empty() bool {
	return len(s.Nozzles) == 0 &&
		s.PumpSerialNumber == "" && s.PrintDate == "" && s.Model == ""
}

var (
	serialPattern = regexp.MustCompile(`(?m)^[ \t]*(\d{6})[ \t]*$`)
	datePattern   = regexp.MustCompile(`(?i)PRINT\s*DATE\s*[:\-]?\s*(\d{1,2}-[A-Za-z]{3}-\d{2,4})`)
	modelPattern  = regexp.MustCompile(`(?i)MODEL\s*[:\-]?\s*(\d{3,5})`)

	nozzleMark = regexp.MustCompile(`(?i)NOZZLE\s*[:\-]?\s*(\d+)`)
	// The line fallback tolerates the single-Z misread tesseract produces
	// on low-contrast prints.
	nozzleLine = regexp.MustCompile(`(?i)NOZZ?LE\s*[:\-]?\s*(\d+)`)

	fieldA     = regexp.MustCompile(`(?i)\bA\s*[:\-]?\s*([0-9][0-9.,]*)`)
	fieldV     = regexp.MustCompile(`(?i)\bV\s*[:\-]?\s*([0-9][0-9.,]*)`)
	fieldSales = regexp.MustCompile(`(?i)TOT\s*SALES\s*[:\-]?\s*([0-9][0-9.,]*)`)
)

// Parse extracts header fields and per-nozzle field sets from normalized OCR
// text. It never fails: absent header fields stay empty and text without any
// nozzle marker yields an empty nozzle list. Nozzles keep occurrence order,
// which is not necessarily ascending nozzle number.
func Parse(text string) *Slip {
	s := &Slip{}
	if m := serialPattern.FindStringSubmatch(text); m != nil {
		s.PumpSerialNumber = m[1]
	}
	if m := datePattern.FindStringSubmatch(text); m != nil {
		s.PrintDate = strings.ToUpper(m[1])
	}
	if m := modelPattern.FindStringSubmatch(text); m != nil {
		s.Model = m[1]
	}

	s.Nozzles = extractBlocks(text)
	if len(s.Nozzles) == 0 {
		s.Nozzles = extractLines(text)
	}
	return s
}

// extractBlocks treats the text between one NOZZLE marker and the next (or
// end of text) as that nozzle's block and searches each field within it.
// The first match per field wins.
func extractBlocks(text string) []Nozzle {
	marks := nozzleMark.FindAllStringSubmatchIndex(text, -1)
	nozzles := make([]Nozzle, 0, len(marks))
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		block := text[m[0]:end]
		nozzles = append(nozzles, Nozzle{
			Nozzle:   text[m[2]:m[3]],
			A:        firstMatch(fieldA, block),
			V:        firstMatch(fieldV, block),
			TotSales: firstMatch(fieldSales, block),
		})
	}
	return nozzles
}

// extractLines is the fallback when no block is found. A line carrying a
// nozzle marker opens a record (flushing the previous one); following lines
// fill whichever fields are still unset.
func extractLines(text string) []Nozzle {
	var nozzles []Nozzle
	var cur *Nozzle
	for _, line := range strings.Split(text, "\n") {
		if m := nozzleLine.FindStringSubmatch(line); m != nil {
			if cur != nil {
				nozzles = append(nozzles, *cur)
			}
			cur = &Nozzle{Nozzle: m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if cur.A == "" {
			cur.A = firstMatch(fieldA, line)
		}
		if cur.V == "" {
			cur.V = firstMatch(fieldV, line)
		}
		if cur.TotSales == "" {
			cur.TotSales = firstMatch(fieldSales, line)
		}
	}
	if cur != nil {
		nozzles = append(nozzles, *cur)
	}
	return nozzles
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.ReplaceAll(m[1], ",", "")
	}
	return ""
}
