package service

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fuelsight/fuelsight-api/internal/domain/enum"
	"github.com/fuelsight/fuelsight-api/pkg/apperror"
	"github.com/google/uuid"
)

var _ = Describe("SettingsService", func() {
	var (
		settingsRepo *fakeSettingsRepo
		svc          *SettingsService
		userID       uuid.UUID
		ctx          context.Context
	)

	BeforeEach(func() {
		settingsRepo = newFakeSettingsRepo()
		svc = NewSettingsService(settingsRepo)
		userID = uuid.New()
		ctx = context.Background()
	})

	Describe("Get", func() {
		It("creates a default settings row on first access", func() {
			settings, err := svc.Get(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.Currency).To(Equal("INR"))
			Expect(settings.NozzleFuelMap.Classify(1)).To(Equal(enum.FuelCategoryPetrol))
			Expect(settings.NozzleFuelMap.Classify(2)).To(Equal(enum.FuelCategoryDiesel))
			Expect(settingsRepo.settings).To(HaveKey(userID))
		})

		It("returns the stored row on later access", func() {
			first, err := svc.Get(ctx, userID)
			Expect(err).NotTo(HaveOccurred())

			second, err := svc.Get(ctx, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
		})
	})

	Describe("Update", func() {
		It("changes only the provided fields", func() {
			currency := "KES"
			settings, err := svc.Update(ctx, &UpdateSettingsInput{
				UserID:   userID,
				Currency: &currency,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.Currency).To(Equal("KES"))
			Expect(settings.Timezone).To(Equal("Asia/Kolkata"))
		})

		It("accepts a valid nozzle assignment", func() {
			settings, err := svc.Update(ctx, &UpdateSettingsInput{
				UserID: userID,
				NozzleFuelMap: enum.NozzleFuelMap{
					1: enum.FuelCategoryPremium,
					2: enum.FuelCategoryPetrol,
					3: enum.FuelCategoryDiesel,
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.NozzleFuelMap.Classify(3)).To(Equal(enum.FuelCategoryDiesel))
		})

		It("rejects a non-positive nozzle number", func() {
			_, err := svc.Update(ctx, &UpdateSettingsInput{
				UserID:        userID,
				NozzleFuelMap: enum.NozzleFuelMap{0: enum.FuelCategoryPetrol},
			})
			Expect(apperror.IsAppError(err)).To(BeTrue())
		})

		It("rejects an unknown fuel category", func() {
			_, err := svc.Update(ctx, &UpdateSettingsInput{
				UserID:        userID,
				NozzleFuelMap: enum.NozzleFuelMap{1: enum.FuelCategory("kerosene")},
			})
			Expect(apperror.IsAppError(err)).To(BeTrue())
		})
	})
})
