package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot actions. One row is appended per asset mutation.
const (
	SnapshotActionCreate = "create"
	SnapshotActionUpdate = "update"
	SnapshotActionDelete = "delete"
	SnapshotActionRevert = "revert"
)

// AssetSnapshot is an immutable copy of an asset's fields at one point
// in time. Rows are append-only and survive deletion of the asset.
type AssetSnapshot struct {
	ID             int             `json:"id" db:"id"`
	AssetID        int             `json:"asset_id" db:"asset_id"`
	Action         string          `json:"action" db:"action"`
	Name           string          `json:"name" db:"asset_name"`
	AssetType      string          `json:"asset_type" db:"asset_type"`
	Cost           decimal.Decimal `json:"cost" db:"cost"`
	AssignedTo     *int            `json:"assigned_to,omitempty" db:"assigned_to_id"`
	AssetCreatedAt time.Time       `json:"asset_created_at" db:"asset_created_at"`
	AssetUpdatedAt time.Time       `json:"asset_updated_at" db:"asset_updated_at"`
	RecordedBy     *int            `json:"recorded_by,omitempty" db:"recorded_by"`
	RecordedAt     time.Time       `json:"recorded_at" db:"recorded_at"`
}

// CaptureSnapshot copies the asset's current field set into a snapshot.
func CaptureSnapshot(asset *Asset, action string, recordedBy *int) AssetSnapshot {
	snapshot := AssetSnapshot{
		AssetID:        asset.ID,
		Action:         action,
		Name:           asset.Name,
		AssetType:      asset.AssetType,
		Cost:           asset.Cost,
		AssetCreatedAt: asset.CreatedAt,
		AssetUpdatedAt: asset.UpdatedAt,
		RecordedBy:     recordedBy,
	}

	if asset.AssignedTo != nil {
		assignedID := asset.AssignedTo.ID
		snapshot.AssignedTo = &assignedID
	}

	return snapshot
}
