package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AssetTypeLaptop    = "LAPTOP"
	AssetTypeMonitor   = "MONITOR"
	AssetTypePhone     = "PHONE"
	AssetTypeFurniture = "FURNITURE"
)

// AssetTypes lists every valid asset type with its display label.
var AssetTypes = map[string]string{
	AssetTypeLaptop:    "Laptop",
	AssetTypeMonitor:   "Monitor",
	AssetTypePhone:     "Phone",
	AssetTypeFurniture: "Furniture",
}

func IsValidAssetType(assetType string) bool {
	_, ok := AssetTypes[assetType]
	return ok
}

// AssetTypeLabel returns the human-readable label used in reports.
func AssetTypeLabel(assetType string) string {
	if label, ok := AssetTypes[assetType]; ok {
		return label
	}
	return assetType
}

type Asset struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	AssetType  string          `json:"asset_type"`
	Cost       decimal.Decimal `json:"cost"`
	AssignedTo *AssignedUser   `json:"assigned_to,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AssignedUser is the owner slice of a user joined onto an asset row.
type AssignedUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// FlatAssetRecord is the scan target for the asset/user join.
type FlatAssetRecord struct {
	ID               int             `db:"asset_id"`
	Name             string          `db:"asset_name"`
	AssetType        string          `db:"asset_type"`
	Cost             decimal.Decimal `db:"cost"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
	AssignedToID     sql.NullInt64   `db:"assigned_to_id"`
	AssignedUsername sql.NullString  `db:"assigned_username"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:        fa.ID,
		Name:      fa.Name,
		AssetType: fa.AssetType,
		Cost:      fa.Cost,
		CreatedAt: fa.CreatedAt,
		UpdatedAt: fa.UpdatedAt,
	}

	if fa.AssignedToID.Valid {
		asset.AssignedTo = &AssignedUser{
			ID:       int(fa.AssignedToID.Int64),
			Username: fa.AssignedUsername.String,
		}
	}

	return asset
}

// AssignedUsernameOrDefault backs the report column for unowned assets.
func (fa *FlatAssetRecord) AssignedUsernameOrDefault(def string) string {
	if fa.AssignedToID.Valid {
		return fa.AssignedUsername.String
	}
	return def
}
