package repository

import (
	"context"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SettingsRepository defines the interface for station settings data access
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.StationSettings, error)
	Create(ctx context.Context, settings *entity.StationSettings) error
	Update(ctx context.Context, settings *entity.StationSettings) error
}
