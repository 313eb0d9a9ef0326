package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceLog struct {
	ID          int             `json:"id" db:"id"`
	AssetID     int             `json:"asset_id" db:"asset_id"`
	ServiceDate time.Time       `json:"service_date" db:"service_date"`
	Description string          `json:"description" db:"description"`
	Cost        decimal.Decimal `json:"cost" db:"cost"`
}

// MaintenanceLogRequest binds the add-maintenance form. The asset id
// comes from the URL path, never from the payload.
type MaintenanceLogRequest struct {
	ServiceDate string          `json:"service_date" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Cost        decimal.Decimal `json:"cost" binding:"required"`
}

// ParseServiceDate validates the submitted date against the wire format.
func (r *MaintenanceLogRequest) ParseServiceDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.ServiceDate)
}
