package service

import (
	"context"
	"fmt"

	"github.com/fuelsight/fuelsight-api/internal/domain/entity"
	"github.com/fuelsight/fuelsight-api/internal/domain/enum"
	"github.com/fuelsight/fuelsight-api/internal/domain/repository"
	"github.com/fuelsight/fuelsight-api/pkg/apperror"
	"github.com/google/uuid"
)

// SettingsService manages per-station configuration
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the user's station settings, creating a default row on first
// access so every station always has a settings record.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*entity.StationSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = &entity.StationSettings{
		UserID:               userID,
		Currency:             "INR",
		Timezone:             "Asia/Kolkata",
		DateFormat:           "DD-MMM-YYYY",
		NozzleFuelMap:        enum.DefaultNozzleFuelMap(),
		EmailNotifications:   true,
		UnreadableSlipAlerts: true,
	}
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettingsInput represents the settings update input. Nil fields are
// left unchanged.
type UpdateSettingsInput struct {
	UserID               uuid.UUID
	Currency             *string
	Timezone             *string
	DateFormat           *string
	NozzleFuelMap        enum.NozzleFuelMap
	EmailNotifications   *bool
	UnreadableSlipAlerts *bool
}

// Update applies a partial settings update
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*entity.StationSettings, error) {
	settings, err := s.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.NozzleFuelMap != nil {
		if err := validateFuelMap(input.NozzleFuelMap); err != nil {
			return nil, err
		}
		settings.NozzleFuelMap = input.NozzleFuelMap
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.UnreadableSlipAlerts != nil {
		settings.UnreadableSlipAlerts = *input.UnreadableSlipAlerts
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// validateFuelMap rejects nozzle assignments the classifier could not use
func validateFuelMap(fuelMap enum.NozzleFuelMap) error {
	for nozzle, category := range fuelMap {
		if nozzle <= 0 {
			return apperror.NewBadRequestError(fmt.Sprintf("Invalid nozzle number %d: must be positive", nozzle))
		}
		if !category.IsValid() {
			return apperror.NewBadRequestError(fmt.Sprintf("Invalid fuel category %q for nozzle %d", category, nozzle))
		}
	}
	return nil
}
