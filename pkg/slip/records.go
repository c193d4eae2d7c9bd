package slip

import (
	"strconv"
	"strings"
)

// Reading is a typed per-nozzle meter reading. Amount and Volume are the
// lifetime totalizers on the meter at print time; TotSales is the sales
// value the pump attributes to the period.
type Reading struct {
	Nozzle   int     `json:"nozzle"`
	Amount   float64 `json:"amount"`
	Volume   float64 `json:"volume"`
	TotSales int64   `json:"tot_sales"`
}

// PricePerLiter derives the effective price from the period sales and the
// volume totalizer. Zero when no volume was read.
func (r Reading) PricePerLiter() float64 {
	if r.Volume <= 0 {
		return 0
	}
	return float64(r.TotSales) / r.Volume
}

// Readings coerces raw nozzle field sets into typed readings. Malformed
// numeric text degrades to zero rather than failing the whole slip; an
// entry whose nozzle id is not a positive integer is dropped.
func Readings(nozzles []Nozzle) []Reading {
	readings := make([]Reading, 0, len(nozzles))
	for _, n := range nozzles {
		id, err := strconv.Atoi(strings.TrimSpace(n.Nozzle))
		if err != nil || id <= 0 {
			continue
		}
		readings = append(readings, Reading{
			Nozzle:   id,
			Amount:   parseDecimal(n.A),
			Volume:   parseDecimal(n.V),
			TotSales: parseWhole(n.TotSales),
		})
	}
	return readings
}

func parseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseWhole reads the integer prefix of the field, matching how pump
// firmware prints TOT SALES without decimals. A stray
// fractional tail from OCR is cut, not rejected.
func parseWhole(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
