package models

import "github.com/shopspring/decimal"

// AssetRequest carries the create/update form fields for an asset.
type AssetRequest struct {
	Name       string          `json:"name" binding:"required"`
	AssetType  string          `json:"asset_type" binding:"required"`
	Cost       decimal.Decimal `json:"cost" binding:"required"`
	AssignedTo *int            `json:"assigned_to"`
}

// AssetListQuery holds the list filters bound from the query string.
type AssetListQuery struct {
	AssetType string `form:"asset_type"`
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"`
}
