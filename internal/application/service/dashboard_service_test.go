package service

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/internal/domain/enum"
	"github.com/google/uuid"
)

var _ = Describe("DashboardService", func() {
	var (
		receiptRepo  *fakeReceiptRepo
		settingsRepo *fakeSettingsRepo
		svc          *DashboardService
		userID       uuid.UUID
		ctx          context.Context
	)

	BeforeEach(func() {
		receiptRepo = &fakeReceiptRepo{}
		settingsRepo = newFakeSettingsRepo()
		svc = NewDashboardService(receiptRepo, settingsRepo)
		userID = uuid.New()
		ctx = context.Background()
	})

	addReceipt := func(printDate string, processedAt time.Time, nozzles ...entity.NozzleReading) {
		receiptRepo.receipts = append(receiptRepo.receipts, entity.Receipt{
			ID:          uuid.New(),
			OwnerID:     userID,
			PrintDate:   printDate,
			ProcessedAt: processedAt,
			Nozzles:     nozzles,
		})
	}

	When("the history is empty", func() {
		It("returns zeroed stats with every fuel category present", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalSales).To(BeZero())
			Expect(stats.TransactionCount).To(BeZero())
			Expect(stats.MonthlySeries).To(BeEmpty())
			Expect(stats.FuelTypeDistribution).To(HaveLen(3))
			for _, pct := range stats.FuelTypeDistribution {
				Expect(pct).To(BeZero())
			}
		})
	})

	When("two receipts share a nozzle and month", func() {
		BeforeEach(func() {
			addReceipt("14-JUL-2024", time.Date(2024, 7, 14, 10, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 100, Volume: 10, Amount: 8})
			addReceipt("28-JUL-2024", time.Date(2024, 7, 28, 10, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 150, Volume: 20, Amount: 15})
		})

		It("sums sales into the total and a single month bucket", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalSales).To(Equal(int64(250)))
			Expect(stats.MonthlySeries).To(HaveLen(1))
			Expect(stats.MonthlySeries[0].Key).To(Equal("2024-07"))
			Expect(stats.MonthlySeries[0].Label).To(Equal("Jul 2024"))
			Expect(stats.MonthlySeries[0].Sales).To(Equal(int64(250)))
			Expect(stats.MonthlySeries[0].Volume).To(Equal(30.0))
		})

		It("counts receipts, not nozzles", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TransactionCount).To(Equal(int64(2)))
		})

		It("averages density over the readings with positive volume", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			// (8/10 + 15/20) / 2
			Expect(stats.AverageDensity).To(BeNumerically("~", 0.775, 1e-9))
		})
	})

	When("the same month appears in two different years", func() {
		BeforeEach(func() {
			addReceipt("14-JUL-2023", time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 100, Volume: 10})
			addReceipt("14-JUL-2024", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 200, Volume: 20})
		})

		It("keeps the years in separate buckets", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.MonthlySeries).To(HaveLen(2))
			Expect(stats.MonthlySeries[0].Key).To(Equal("2023-07"))
			Expect(stats.MonthlySeries[0].Label).To(Equal("Jul 2023"))
			Expect(stats.MonthlySeries[1].Key).To(Equal("2024-07"))
			Expect(stats.MonthlySeries[1].Sales).To(Equal(int64(200)))
		})
	})

	When("a receipt has no readable print date", func() {
		BeforeEach(func() {
			addReceipt("", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 50, Volume: 5})
		})

		It("buckets by processing time instead", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.MonthlySeries).To(HaveLen(1))
			Expect(stats.MonthlySeries[0].Key).To(Equal("2024-03"))
			Expect(stats.MonthlySeries[0].Label).To(Equal("Mar 2024"))
		})
	})

	When("multiple nozzles dispense different fuels", func() {
		BeforeEach(func() {
			addReceipt("14-JUL-2024", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 100, Volume: 60},
				entity.NozzleReading{Nozzle: 2, TotSales: 100, Volume: 30},
				entity.NozzleReading{Nozzle: 3, TotSales: 100, Volume: 10})
		})

		It("reports a distribution that sums to 100", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.FuelTypeDistribution[enum.FuelCategoryPetrol]).To(BeNumerically("~", 60, 1e-9))
			Expect(stats.FuelTypeDistribution[enum.FuelCategoryDiesel]).To(BeNumerically("~", 30, 1e-9))
			Expect(stats.FuelTypeDistribution[enum.FuelCategoryPremium]).To(BeNumerically("~", 10, 1e-9))

			var sum float64
			for _, pct := range stats.FuelTypeDistribution {
				sum += pct
			}
			Expect(sum).To(BeNumerically("~", 100, 1e-9))
		})

		It("uses the station's configured nozzle assignment when present", func() {
			settingsRepo.settings[userID] = &entity.StationSettings{
				UserID: userID,
				NozzleFuelMap: enum.NozzleFuelMap{
					1: enum.FuelCategoryDiesel,
					2: enum.FuelCategoryDiesel,
					3: enum.FuelCategoryDiesel,
				},
			}

			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.FuelTypeDistribution[enum.FuelCategoryDiesel]).To(BeNumerically("~", 100, 1e-9))
			Expect(stats.FuelTypeDistribution[enum.FuelCategoryPetrol]).To(BeZero())
		})
	})

	When("every reading has zero volume", func() {
		BeforeEach(func() {
			addReceipt("14-JUL-2024", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
				entity.NozzleReading{Nozzle: 1, TotSales: 100, Volume: 0, Amount: 50})
		})

		It("reports zero density and an all-zero distribution", func() {
			stats, err := svc.GetDashboardStats(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.AverageDensity).To(BeZero())
			for _, pct := range stats.FuelTypeDistribution {
				Expect(pct).To(BeZero())
			}
		})
	})

	It("does not mix in another owner's receipts", func() {
		receiptRepo.receipts = append(receiptRepo.receipts, entity.Receipt{
			ID:          uuid.New(),
			OwnerID:     uuid.New(),
			ProcessedAt: time.Now(),
			Nozzles:     []entity.NozzleReading{{Nozzle: 1, TotSales: 999}},
		})

		stats, err := svc.GetDashboardStats(ctx, userID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalSales).To(BeZero())
	})
})
