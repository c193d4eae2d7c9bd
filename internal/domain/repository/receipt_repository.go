package repository

import (
	"context"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/pkg/pagination"
	"github.com/google/uuid"
)

// ReceiptRepository defines the interface for receipt data operations.
// All reads are owner-scoped; the aggregation and comparison engines never
// see another station's receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of the owner's receipts, newest first, with readings preloaded.
	List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
	// ListAll returns the owner's full receipt history with readings preloaded,
	// ordered by processed_at ascending. Input to the aggregation engine.
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]entity.Receipt, error)
	// ListRecent returns up to limit receipts ordered by processed_at descending,
	// readings preloaded. Input to the comparison engine (limit 2).
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]entity.Receipt, error)
}
