package repository

import (
	"context"
	"errors"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	domainRepo "github.com/fuelsight/fuelsight-api/internal/domain/repository"
	"github.com/fuelsight/fuelsight-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Nozzles").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	// Replace the readings wholesale; a reprocess rewrites the whole set.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.NozzleReading{}, "receipt_id = ?", receipt.ID).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(receipt).Error
	})
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Nozzles").
		Order("processed_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) ListAll(ctx context.Context, ownerID uuid.UUID) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Nozzles").
		Order("processed_at ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Nozzles").
		Order("processed_at DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}
