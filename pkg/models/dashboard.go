package models

import "github.com/shopspring/decimal"

type AssetTypeCount struct {
	AssetType string `json:"asset_type" db:"asset_type"`
	Count     int    `json:"count" db:"count"`
}

// DashboardStats aggregates the whole asset table: total cost and one
// count per asset type present in the data.
type DashboardStats struct {
	TotalAssetValue decimal.Decimal  `json:"total_asset_value"`
	AssetsByType    []AssetTypeCount `json:"assets_by_type"`
}
