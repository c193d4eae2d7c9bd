package request

import "github.com/fuelsight/fuelsight-api/internal/domain/enum"

// UpdateSettingsRequest represents a station settings update. Absent fields
// are left unchanged.
type UpdateSettingsRequest struct {
	Currency             *string            `json:"currency"`
	Timezone             *string            `json:"timezone"`
	DateFormat           *string            `json:"date_format"`
	NozzleFuelMap        enum.NozzleFuelMap `json:"nozzle_fuel_map"`
	EmailNotifications   *bool              `json:"email_notifications"`
	UnreadableSlipAlerts *bool              `json:"unreadable_slip_alerts"`
}
