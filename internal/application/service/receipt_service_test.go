package service

import (
	"context"
	"errors"
	"mime/multipart"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/pkg/apperror"
	"github.com/fuelsight/fuelsight-api/pkg/slip"
	"github.com/google/uuid"
)

const readableSlipText = `ETOT-MAIN
123456
MODEL: 2422
PRINT DATE: 14-JUL-2024
NOZZLE 1
A: 7709841.690
V: 98656.300
TOT SALES: 71064
NOZZLE 2
A: 5502218.110
V: 64201.850
TOT SALES: 48210
`

var _ = Describe("ReceiptService", func() {
	var (
		receiptRepo  *fakeReceiptRepo
		userRepo     *fakeUserRepo
		settingsRepo *fakeSettingsRepo
		store        *fakeFileStore
		recognizer   *fakeRecognizer
		extractor    *fakeExtractor
		mailer       *fakeMailer
		svc          *ReceiptService
		userID       uuid.UUID
		ctx          context.Context
		file         *multipart.FileHeader
	)

	BeforeEach(func() {
		receiptRepo = &fakeReceiptRepo{}
		userRepo = newFakeUserRepo()
		settingsRepo = newFakeSettingsRepo()
		store = &fakeFileStore{}
		recognizer = &fakeRecognizer{text: readableSlipText}
		extractor = &fakeExtractor{}
		mailer = &fakeMailer{}
		userID = uuid.New()
		ctx = context.Background()
		file = &multipart.FileHeader{Filename: "slip.png", Size: 100}

		userRepo.users[userID] = &entity.User{ID: userID, Email: "owner@station.test"}

		svc = NewReceiptService(receiptRepo, userRepo, settingsRepo, store, recognizer, extractor, mailer)
	})

	Describe("Upload", func() {
		When("the slip text is readable", func() {
			It("stores the receipt with its readings and raw text", func() {
				receipt, err := svc.Upload(ctx, userID, file)
				Expect(err).NotTo(HaveOccurred())
				Expect(receipt.PumpSerialNumber).To(Equal("123456"))
				Expect(receipt.PrintDate).To(Equal("14-JUL-2024"))
				Expect(receipt.Model).To(Equal("2422"))
				Expect(receipt.RawText).NotTo(BeEmpty())
				Expect(receipt.Nozzles).To(HaveLen(2))
				Expect(receipt.Nozzles[0].TotSales).To(Equal(int64(71064)))
				Expect(receipt.Nozzles[1].Volume).To(BeNumerically("~", 64201.850, 1e-6))
				Expect(receiptRepo.receipts).To(HaveLen(1))
			})

			It("does not invoke the structured extractor", func() {
				_, err := svc.Upload(ctx, userID, file)
				Expect(err).NotTo(HaveOccurred())
				Expect(extractor.called).To(BeFalse())
			})
		})

		When("plain recognition yields nothing parseable", func() {
			BeforeEach(func() {
				recognizer.text = "sm%udged pr*int @@"
				extractor.slip = &slip.Slip{
					PumpSerialNumber: "123456",
					PrintDate:        "14-JUL-2024",
					Nozzles: []slip.Nozzle{
						{Nozzle: "1", A: "7709841.690", V: "98656.300", TotSales: "71064"},
					},
				}
			})

			It("falls back to the structured extractor", func() {
				receipt, err := svc.Upload(ctx, userID, file)
				Expect(err).NotTo(HaveOccurred())
				Expect(extractor.called).To(BeTrue())
				Expect(receipt.PumpSerialNumber).To(Equal("123456"))
				Expect(receipt.Nozzles).To(HaveLen(1))
				Expect(receipt.Nozzles[0].TotSales).To(Equal(int64(71064)))
			})
		})

		When("both strategies come up empty", func() {
			BeforeEach(func() {
				recognizer.text = "sm%udged pr*int @@"
				extractor.slip = &slip.Slip{}
			})

			It("rejects the upload and keeps nothing", func() {
				_, err := svc.Upload(ctx, userID, file)
				Expect(errors.Is(err, apperror.ErrNoExtractableData)).To(BeTrue())
				Expect(receiptRepo.receipts).To(BeEmpty())
				Expect(store.removed).To(HaveLen(1))
			})

			It("alerts the owner when their settings ask for it", func() {
				settingsRepo.settings[userID] = &entity.StationSettings{
					UserID:               userID,
					EmailNotifications:   true,
					UnreadableSlipAlerts: true,
				}

				_, err := svc.Upload(ctx, userID, file)
				Expect(err).To(HaveOccurred())
				Expect(mailer.alerts).To(ConsistOf("owner@station.test"))
			})

			It("stays quiet when alerts are disabled", func() {
				settingsRepo.settings[userID] = &entity.StationSettings{
					UserID:               userID,
					EmailNotifications:   true,
					UnreadableSlipAlerts: false,
				}

				_, err := svc.Upload(ctx, userID, file)
				Expect(err).To(HaveOccurred())
				Expect(mailer.alerts).To(BeEmpty())
			})
		})

		When("no structured extractor is configured", func() {
			BeforeEach(func() {
				recognizer.text = "sm%udged pr*int @@"
				svc = NewReceiptService(receiptRepo, userRepo, settingsRepo, store, recognizer, nil, mailer)
			})

			It("rejects the upload on the raw-text result alone", func() {
				_, err := svc.Upload(ctx, userID, file)
				Expect(errors.Is(err, apperror.ErrNoExtractableData)).To(BeTrue())
			})
		})

		When("text recognition fails outright", func() {
			BeforeEach(func() {
				recognizer.err = errors.New("binary not found")
				extractor.slip = &slip.Slip{Model: "2422"}
			})

			It("still tries the structured extractor", func() {
				receipt, err := svc.Upload(ctx, userID, file)
				Expect(err).NotTo(HaveOccurred())
				Expect(extractor.called).To(BeTrue())
				Expect(receipt.Model).To(Equal("2422"))
			})
		})
	})

	Describe("Get", func() {
		It("refuses another owner's receipt", func() {
			receipt, err := svc.Upload(ctx, userID, file)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Get(ctx, uuid.New(), receipt.ID)
			Expect(errors.Is(err, apperror.ErrForbidden)).To(BeTrue())
		})

		It("reports a missing receipt as not found", func() {
			_, err := svc.Get(ctx, userID, uuid.New())
			var appErr *apperror.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(404))
		})
	})

	Describe("Delete", func() {
		It("removes the receipt and its stored image", func() {
			receipt, err := svc.Upload(ctx, userID, file)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(ctx, userID, receipt.ID)).To(Succeed())
			Expect(receiptRepo.receipts).To(BeEmpty())
			Expect(store.removed).To(ConsistOf(receipt.FilePath))
		})
	})

	Describe("Reprocess", func() {
		It("rebuilds header fields and readings from the stored text", func() {
			receipt, err := svc.Upload(ctx, userID, file)
			Expect(err).NotTo(HaveOccurred())

			reprocessed, err := svc.Reprocess(ctx, userID, receipt.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reprocessed.PumpSerialNumber).To(Equal("123456"))
			Expect(reprocessed.Nozzles).To(HaveLen(2))
			for _, reading := range reprocessed.Nozzles {
				Expect(reading.ReceiptID).To(Equal(receipt.ID))
			}
		})

		It("rejects a receipt without stored text", func() {
			receiptRepo.receipts = append(receiptRepo.receipts, entity.Receipt{
				ID:      uuid.New(),
				OwnerID: userID,
			})

			_, err := svc.Reprocess(ctx, userID, receiptRepo.receipts[0].ID)
			var appErr *apperror.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(400))
		})
	})
})
