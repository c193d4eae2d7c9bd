package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/internal/domain/repository"
	"github.com/fuelsight/fuelsight-api/internal/infrastructure/ocr"
	"github.com/fuelsight/fuelsight-api/pkg/apperror"
	"github.com/fuelsight/fuelsight-api/pkg/pagination"
	"github.com/fuelsight/fuelsight-api/pkg/slip"
	"github.com/google/uuid"
)

// FileStore persists uploaded slip images
type FileStore interface {
	Save(ownerID uuid.UUID, file *multipart.FileHeader) (string, error)
	Remove(path string) error
}

// AlertMailer notifies a station owner about pipeline events
type AlertMailer interface {
	SendUnreadableSlipAlert(toEmail, fileName string) error
}

// ReceiptService runs the slip pipeline and manages stored receipts
type ReceiptService struct {
	receiptRepo  repository.ReceiptRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	store        FileStore
	recognizer   ocr.TextRecognizer
	extractor    ocr.SlipExtractor // optional, nil disables the fallback
	mailer       AlertMailer       // optional
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	store FileStore,
	recognizer ocr.TextRecognizer,
	extractor ocr.SlipExtractor,
	mailer AlertMailer,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		store:        store,
		recognizer:   recognizer,
		extractor:    extractor,
		mailer:       mailer,
	}
}

// Upload runs the full slip pipeline: store the image, recognize text,
// parse, fall back to structured extraction, persist. A slip that yields
// nothing on both paths is rejected and its image removed; nothing of a
// failed upload survives.
func (s *ReceiptService) Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*entity.Receipt, error) {
	path, err := s.store.Save(userID, file)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	parsed := &slip.Slip{}
	rawText := ""
	if text, err := s.recognizer.RecognizeText(ctx, path); err != nil {
		log.Printf("text recognition failed for %s: %v", path, err)
	} else {
		rawText = slip.Normalize(text)
		parsed = slip.Parse(rawText)
	}

	if parsed.Empty() && s.extractor != nil {
		if extracted, err := s.extractFromImage(ctx, path); err != nil {
			log.Printf("structured extraction failed for %s: %v", path, err)
		} else {
			parsed = extracted
		}
	}

	if parsed.Empty() {
		if err := s.store.Remove(path); err != nil {
			log.Printf("failed to remove unreadable slip %s: %v", path, err)
		}
		s.notifyUnreadable(ctx, userID, file.Filename)
		return nil, apperror.ErrNoExtractableData
	}

	receipt := &entity.Receipt{
		OwnerID:          userID,
		FilePath:         path,
		PumpSerialNumber: parsed.PumpSerialNumber,
		PrintDate:        parsed.PrintDate,
		Model:            parsed.Model,
		RawText:          rawText,
		ProcessedAt:      time.Now(),
		Nozzles:          toReadingEntities(parsed.Nozzles),
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		s.store.Remove(path)
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	return receipt, nil
}

// List returns a page of the owner's receipts, newest first
func (s *ReceiptService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, *pagination.Pagination, error) {
	receipts, total, err := s.receiptRepo.List(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return receipts, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// Get returns one of the owner's receipts with its readings
func (s *ReceiptService) Get(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.findOwned(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Delete removes a receipt and its stored image
func (s *ReceiptService) Delete(ctx context.Context, userID, receiptID uuid.UUID) error {
	receipt, err := s.findOwned(ctx, userID, receiptID)
	if err != nil {
		return err
	}

	if err := s.receiptRepo.Delete(ctx, receipt.ID); err != nil {
		return err
	}
	if err := s.store.Remove(receipt.FilePath); err != nil {
		log.Printf("failed to remove slip image %s: %v", receipt.FilePath, err)
	}
	return nil
}

// Reprocess re-runs the parser over a receipt's stored OCR text, replacing
// its header fields and readings. Useful after a parser fix.
func (s *ReceiptService) Reprocess(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.findOwned(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.RawText == "" {
		return nil, apperror.NewBadRequestError("Receipt has no stored text to reprocess")
	}

	parsed := slip.Parse(slip.Normalize(receipt.RawText))
	if parsed.Empty() {
		return nil, apperror.ErrNoExtractableData
	}

	receipt.PumpSerialNumber = parsed.PumpSerialNumber
	receipt.PrintDate = parsed.PrintDate
	receipt.Model = parsed.Model
	receipt.Nozzles = toReadingEntities(parsed.Nozzles)
	for i := range receipt.Nozzles {
		receipt.Nozzles[i].ReceiptID = receipt.ID
	}

	if err := s.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *ReceiptService) findOwned(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.OwnerID != userID {
		return nil, apperror.ErrForbidden
	}
	return receipt, nil
}

func (s *ReceiptService) extractFromImage(ctx context.Context, path string) (*slip.Slip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.extractor.ExtractSlip(ctx, data)
}

// notifyUnreadable emails the owner about an unreadable slip when their
// settings ask for it. Best effort; the upload error is reported either way.
func (s *ReceiptService) notifyUnreadable(ctx context.Context, userID uuid.UUID, fileName string) {
	if s.mailer == nil {
		return
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil || settings == nil || !settings.EmailNotifications || !settings.UnreadableSlipAlerts {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return
	}

	if err := s.mailer.SendUnreadableSlipAlert(user.Email, filepath.Base(fileName)); err != nil {
		log.Printf("failed to send unreadable slip alert to %s: %v", user.Email, err)
	}
}

// toReadingEntities converts typed slip readings into persistence rows
func toReadingEntities(nozzles []slip.Nozzle) []entity.NozzleReading {
	readings := slip.Readings(nozzles)
	rows := make([]entity.NozzleReading, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, entity.NozzleReading{
			Nozzle:   r.Nozzle,
			Amount:   r.Amount,
			Volume:   r.Volume,
			TotSales: r.TotSales,
		})
	}
	return rows
}
