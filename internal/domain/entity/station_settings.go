package entity

import (
	"time"

	"github.com/fuelsight/fuelsight-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StationSettings holds per-station configuration, most importantly the
// nozzle-to-fuel assignment the aggregation pipeline classifies volumes with.
type StationSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General settings
	Currency   string `gorm:"size:10;default:'INR'" json:"currency"`
	Timezone   string `gorm:"size:50;default:'Asia/Kolkata'" json:"timezone"`
	DateFormat string `gorm:"size:20;default:'DD-MMM-YYYY'" json:"date_format"`

	// Nozzle classification policy. Stored as JSON so stations with more
	// than two nozzles can map each one without a schema change.
	NozzleFuelMap enum.NozzleFuelMap `gorm:"serializer:json" json:"nozzle_fuel_map"`

	// Notification settings
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	UnreadableSlipAlerts bool `gorm:"default:true" json:"unreadable_slip_alerts"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StationSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StationSettings model
func (StationSettings) TableName() string {
	return "station_settings"
}

// FuelMap returns the configured nozzle assignment, falling back to the
// default two-nozzle layout when none has been saved yet.
func (s *StationSettings) FuelMap() enum.NozzleFuelMap {
	if len(s.NozzleFuelMap) == 0 {
		return enum.DefaultNozzleFuelMap()
	}
	return s.NozzleFuelMap
}
