package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fuelsight/fuelsight-api/internal/domain/enum"
	"github.com/fuelsight/fuelsight-api/internal/domain/repository"
	"github.com/google/uuid"
)

// DashboardService folds receipt history into station statistics
type DashboardService struct {
	receiptRepo  repository.ReceiptRepository
	settingsRepo repository.SettingsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	receiptRepo repository.ReceiptRepository,
	settingsRepo repository.SettingsRepository,
) *DashboardService {
	return &DashboardService{
		receiptRepo:  receiptRepo,
		settingsRepo: settingsRepo,
	}
}

// DashboardStats represents aggregate station statistics
type DashboardStats struct {
	TotalSales           int64                         `json:"totalSales"`
	TotalVolume          float64                       `json:"totalVolume"`
	TransactionCount     int64                         `json:"transactionCount"`
	AverageDensity       float64                       `json:"averageDensity"`
	MonthlySeries        []MonthlyPoint                `json:"monthlySeries"`
	FuelTypeDistribution map[enum.FuelCategory]float64 `json:"fuelTypeDistribution"`
}

// MonthlyPoint is one month's sales and volume. Key qualifies the month
// with its year so July 2023 and July 2024 never merge; Label is what a
// chart axis shows.
type MonthlyPoint struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Sales  int64   `json:"sales"`
	Volume float64 `json:"volume"`
}

// GetDashboardStats folds the owner's full receipt history into totals,
// an ordered monthly series and the fuel-type volume distribution.
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	receipts, err := s.receiptRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	fuelMap := enum.DefaultNozzleFuelMap()
	if settings, err := s.settingsRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	} else if settings != nil {
		fuelMap = settings.FuelMap()
	}

	stats := &DashboardStats{
		MonthlySeries:        []MonthlyPoint{},
		FuelTypeDistribution: map[enum.FuelCategory]float64{},
	}
	for _, category := range enum.AllFuelCategories() {
		stats.FuelTypeDistribution[category] = 0
	}

	var (
		densitySum   float64
		densityCount int
		volumeByFuel = map[enum.FuelCategory]float64{}
		monthIndex   = map[string]int{} // key -> position in MonthlySeries
	)

	for _, receipt := range receipts {
		stats.TransactionCount++

		key, label := monthBucket(receipt.PrintDate, receipt.ProcessedAt)
		idx, ok := monthIndex[key]
		if !ok {
			idx = len(stats.MonthlySeries)
			monthIndex[key] = idx
			stats.MonthlySeries = append(stats.MonthlySeries, MonthlyPoint{Key: key, Label: label})
		}

		for _, nozzle := range receipt.Nozzles {
			stats.TotalSales += nozzle.TotSales
			stats.TotalVolume += nozzle.Volume
			stats.MonthlySeries[idx].Sales += nozzle.TotSales
			stats.MonthlySeries[idx].Volume += nozzle.Volume

			if nozzle.Volume > 0 {
				densitySum += nozzle.Amount / nozzle.Volume
				densityCount++
			}

			volumeByFuel[fuelMap.Classify(nozzle.Nozzle)] += nozzle.Volume
		}
	}

	if densityCount > 0 {
		stats.AverageDensity = densitySum / float64(densityCount)
	}

	var totalFuelVolume float64
	for _, v := range volumeByFuel {
		totalFuelVolume += v
	}
	if totalFuelVolume > 0 {
		for category, v := range volumeByFuel {
			stats.FuelTypeDistribution[category] = v / totalFuelVolume * 100
		}
	}

	return stats, nil
}

var monthsByName = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// monthBucket derives the month bucket for a receipt: the print date when
// its month and year tokens are readable, otherwise the processing time.
func monthBucket(printDate string, processedAt time.Time) (key, label string) {
	if month, year, ok := splitPrintDate(printDate); ok {
		return fmt.Sprintf("%04d-%02d", year, month), fmt.Sprintf("%s %d", month.String()[:3], year)
	}
	return processedAt.Format("2006-01"), processedAt.Format("Jan 2006")
}

// splitPrintDate picks the month and year out of a DD-MON-YYYY print date
func splitPrintDate(printDate string) (time.Month, int, bool) {
	parts := strings.Split(strings.TrimSpace(printDate), "-")
	if len(parts) != 3 {
		return 0, 0, false
	}

	month, ok := monthsByName[strings.ToUpper(parts[1])]
	if !ok {
		return 0, 0, false
	}

	var year int
	if _, err := fmt.Sscanf(parts[2], "%d", &year); err != nil {
		return 0, 0, false
	}
	if year < 100 {
		year += 2000
	}

	return month, year, true
}
