package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt is one processed dispenser printout slip. It is created by the
// slip pipeline after a successful parse and never mutated afterwards; a
// receipt with header data but no nozzles is a valid, storable state for a
// slip whose print was unreadable.
type Receipt struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	FilePath         string         `gorm:"size:512;not null" json:"file_path"`
	PumpSerialNumber string         `gorm:"size:32" json:"pump_serial_number"`
	PrintDate        string         `gorm:"size:32" json:"print_date"`
	Model            string         `gorm:"size:16" json:"model"`
	RawText          string         `gorm:"type:text" json:"-"` // OCR output kept for audit and reprocessing
	ProcessedAt      time.Time      `gorm:"not null;index" json:"processed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner   User            `gorm:"foreignKey:OwnerID" json:"-"`
	Nozzles []NozzleReading `gorm:"foreignKey:ReceiptID" json:"nozzles,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// NozzleReading is one nozzle's meter reading on a receipt. Amount and
// Volume are lifetime totalizers; TotSales is the sales value the pump
// printed for the period. The nozzle ordinal is unique within a receipt,
// not globally.
type NozzleReading struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Nozzle    int       `gorm:"not null" json:"nozzle"`
	Amount    float64   `gorm:"not null;default:0" json:"amount"`
	Volume    float64   `gorm:"not null;default:0" json:"volume"`
	TotSales  int64     `gorm:"not null;default:0" json:"tot_sales"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new reading
func (n *NozzleReading) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the NozzleReading model
func (NozzleReading) TableName() string {
	return "nozzle_readings"
}

// PricePerLiter derives the effective price from period sales and the
// volume totalizer, zero when no volume was read.
func (n NozzleReading) PricePerLiter() float64 {
	if n.Volume <= 0 {
		return 0
	}
	return float64(n.TotSales) / n.Volume
}
