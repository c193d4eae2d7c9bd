package service

import (
	"context"
	"sort"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/internal/domain/repository"
	"github.com/fuelsight/fuelsight-api/pkg/apperror"
	"github.com/google/uuid"
)

// ComparisonService compares the two most recent receipts of a station
type ComparisonService struct {
	receiptRepo repository.ReceiptRepository
}

// NewComparisonService creates a new comparison service
func NewComparisonService(receiptRepo repository.ReceiptRepository) *ComparisonService {
	return &ComparisonService{receiptRepo: receiptRepo}
}

// ComparisonSummary compares the latest receipt with the one before it
type ComparisonSummary struct {
	Current    ReceiptTotals      `json:"current"`
	Previous   ReceiptTotals      `json:"previous"`
	Difference Difference         `json:"difference"`
	Nozzles    []NozzleComparison `json:"nozzles"`
}

// ReceiptTotals holds per-receipt computed totals
type ReceiptTotals struct {
	ReceiptID       uuid.UUID `json:"receiptId"`
	Date            string    `json:"date"`
	TotalSales      int64     `json:"totalSales"`
	TotalVolume     float64   `json:"totalVolume"`
	RevenuePerLiter float64   `json:"revenuePerLiter"`
}

// Difference holds aggregate deltas between the two receipts
type Difference struct {
	Sales               int64   `json:"sales"`
	Volume              float64 `json:"volume"`
	SalesPercentChange  float64 `json:"salesPercentChange"`
	VolumePercentChange float64 `json:"volumePercentChange"`
}

// NozzleComparison is one nozzle's before/after row. A nozzle read on only
// one of the two slips still gets a row, with zeros on the missing side.
type NozzleComparison struct {
	Nozzle              int     `json:"nozzle"`
	CurrentSales        int64   `json:"currentSales"`
	PreviousSales       int64   `json:"previousSales"`
	SalesDiff           int64   `json:"salesDiff"`
	SalesPercentChange  float64 `json:"salesPercentChange"`
	CurrentVolume       float64 `json:"currentVolume"`
	PreviousVolume      float64 `json:"previousVolume"`
	VolumeDiff          float64 `json:"volumeDiff"`
	VolumePercentChange float64 `json:"volumePercentChange"`
}

// CompareLatest compares the owner's two most recent receipts. Fewer than
// two receipts is reported as an error rather than a degenerate comparison.
func (s *ComparisonService) CompareLatest(ctx context.Context, userID uuid.UUID) (*ComparisonSummary, error) {
	receipts, err := s.receiptRepo.ListRecent(ctx, userID, 2)
	if err != nil {
		return nil, err
	}
	if len(receipts) < 2 {
		return nil, apperror.ErrInsufficientHistory
	}

	current := receiptTotals(&receipts[0])
	previous := receiptTotals(&receipts[1])

	summary := &ComparisonSummary{
		Current:  current,
		Previous: previous,
		Difference: Difference{
			Sales:               current.TotalSales - previous.TotalSales,
			Volume:              current.TotalVolume - previous.TotalVolume,
			SalesPercentChange:  percentChange(float64(current.TotalSales), float64(previous.TotalSales)),
			VolumePercentChange: percentChange(current.TotalVolume, previous.TotalVolume),
		},
		Nozzles: compareNozzles(&receipts[0], &receipts[1]),
	}

	return summary, nil
}

func receiptTotals(receipt *entity.Receipt) ReceiptTotals {
	totals := ReceiptTotals{
		ReceiptID: receipt.ID,
		Date:      receipt.PrintDate,
	}
	if totals.Date == "" {
		totals.Date = receipt.ProcessedAt.Format("02-Jan-2006")
	}

	for _, nozzle := range receipt.Nozzles {
		totals.TotalSales += nozzle.TotSales
		totals.TotalVolume += nozzle.Volume
	}
	if totals.TotalVolume > 0 {
		totals.RevenuePerLiter = float64(totals.TotalSales) / totals.TotalVolume
	}

	return totals
}

// compareNozzles builds one row per nozzle id seen on either receipt
func compareNozzles(current, previous *entity.Receipt) []NozzleComparison {
	currentByID := readingsByNozzle(current)
	previousByID := readingsByNozzle(previous)

	ids := map[int]bool{}
	for id := range currentByID {
		ids[id] = true
	}
	for id := range previousByID {
		ids[id] = true
	}

	rows := make([]NozzleComparison, 0, len(ids))
	for id := range ids {
		cur := currentByID[id]
		prev := previousByID[id]
		rows = append(rows, NozzleComparison{
			Nozzle:              id,
			CurrentSales:        cur.TotSales,
			PreviousSales:       prev.TotSales,
			SalesDiff:           cur.TotSales - prev.TotSales,
			SalesPercentChange:  percentChange(float64(cur.TotSales), float64(prev.TotSales)),
			CurrentVolume:       cur.Volume,
			PreviousVolume:      prev.Volume,
			VolumeDiff:          cur.Volume - prev.Volume,
			VolumePercentChange: percentChange(cur.Volume, prev.Volume),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Nozzle < rows[j].Nozzle })
	return rows
}

func readingsByNozzle(receipt *entity.Receipt) map[int]entity.NozzleReading {
	byID := make(map[int]entity.NozzleReading, len(receipt.Nozzles))
	for _, nozzle := range receipt.Nozzles {
		if _, taken := byID[nozzle.Nozzle]; !taken {
			byID[nozzle.Nozzle] = nozzle
		}
	}
	return byID
}

// percentChange guards the zero denominator: no prior value means no
// meaningful percentage, reported as 0 rather than Inf or NaN.
func percentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
