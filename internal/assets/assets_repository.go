package assets

import (
	"fmt"
	"strings"
	"time"

	"assettrack/internal/repository"
	custom_error "assettrack/pkg/errors"
	"assettrack/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// ListPageSize is the fixed page size of the asset list.
const ListPageSize = 5

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{repository: r}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	query := r.getAssetQuery().Where(goqu.Ex{"a.id": id})

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	asset := flatAsset.TransformToAsset()
	return &asset, nil
}

// ListAssets applies the type filter, the free-text search and the
// fixed-size pagination. The search matches the asset name OR the
// assigned user's username, case-insensitively, and is ANDed with the
// type filter. It returns the page plus the unpaginated match count.
func (r *AssetsRepository) ListAssets(listQuery models.AssetListQuery) ([]models.Asset, int, error) {
	conditions := r.listConditions(listQuery)

	var total int
	countQuery := r.repository.GoquDBWrapper.
		Select(goqu.COUNT(goqu.I("a.id"))).
		From(goqu.T("assets").As("a")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"a.assigned_to": goqu.I("u.id")})).
		Where(conditions...)

	if _, err := countQuery.Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count assets: %w", err)
	}

	page := listQuery.Page
	if page < 1 {
		page = 1
	}

	query := r.getAssetQuery().
		Where(conditions...).
		Order(goqu.I("a.id").Asc()).
		Limit(ListPageSize).
		Offset(uint((page - 1) * ListPageSize))

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, 0, fmt.Errorf("unable to select assets from database: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return assets, total, nil
}

func (r *AssetsRepository) listConditions(listQuery models.AssetListQuery) []goqu.Expression {
	var conditions []goqu.Expression

	if listQuery.AssetType != "" {
		conditions = append(conditions, goqu.Ex{"a.asset_type": listQuery.AssetType})
	}

	if listQuery.Search != "" {
		pattern := "%" + escapeSearchTerm(listQuery.Search) + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("a.name").ILike(pattern),
			goqu.I("u.username").ILike(pattern),
		))
	}

	return conditions
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeSearchTerm neutralizes LIKE metacharacters so a search for "_"
// or "100%" matches those characters literally.
func escapeSearchTerm(term string) string {
	return likeEscaper.Replace(term)
}

// GetDashboardStats computes the two dashboard aggregates in isolation
// from each other: COALESCEd cost sum and per-type counts.
func (r *AssetsRepository) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	totalQuery := r.repository.GoquDBWrapper.
		Select(goqu.L("COALESCE(SUM(cost), 0)")).
		From("assets")

	if _, err := totalQuery.Executor().ScanVal(&stats.TotalAssetValue); err != nil {
		return nil, fmt.Errorf("unable to sum asset costs: %w", err)
	}

	countQuery := r.repository.GoquDBWrapper.
		Select("asset_type", goqu.COUNT(goqu.I("id")).As("count")).
		From("assets").
		GroupBy("asset_type")

	if err := countQuery.Executor().ScanStructs(&stats.AssetsByType); err != nil {
		return nil, fmt.Errorf("unable to count assets by type: %w", err)
	}

	return stats, nil
}

func (r *AssetsRepository) InsertAsset(tx *goqu.TxDatabase, req models.AssetRequest) (*models.Asset, error) {
	row := goqu.Record{
		"name":       req.Name,
		"asset_type": req.AssetType,
		"cost":       req.Cost,
	}
	if req.AssignedTo != nil {
		row["assigned_to"] = *req.AssignedTo
	}

	query := tx.Insert("assets").
		Rows(row).
		Returning("id", "created_at", "updated_at")

	var stamped stampedRow
	if _, err := query.Executor().ScanStruct(&stamped); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("asset insert rejected", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetFromRequest(stamped, req), nil
}

func (r *AssetsRepository) UpdateAsset(tx *goqu.TxDatabase, id int, req models.AssetRequest) (*models.Asset, error) {
	row := goqu.Record{
		"name":        req.Name,
		"asset_type":  req.AssetType,
		"cost":        req.Cost,
		"assigned_to": nil,
		"updated_at":  goqu.L("NOW()"),
	}
	if req.AssignedTo != nil {
		row["assigned_to"] = *req.AssignedTo
	}

	query := tx.Update("assets").
		Set(row).
		Where(goqu.Ex{"id": id}).
		Returning("id", "created_at", "updated_at")

	var stamped stampedRow
	found, err := query.Executor().ScanStruct(&stamped)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("asset update rejected", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update asset record: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	return assetFromRequest(stamped, req), nil
}

// ApplySnapshot overwrites the asset's current row with the captured
// field values. The caller records the companion revert snapshot in the
// same transaction.
func (r *AssetsRepository) ApplySnapshot(tx *goqu.TxDatabase, snapshot *models.AssetSnapshot) (*models.Asset, error) {
	req := models.AssetRequest{
		Name:       snapshot.Name,
		AssetType:  snapshot.AssetType,
		Cost:       snapshot.Cost,
		AssignedTo: snapshot.AssignedTo,
	}

	return r.UpdateAsset(tx, snapshot.AssetID, req)
}

func (r *AssetsRepository) DeleteAsset(tx *goqu.TxDatabase, id int) error {
	query := tx.Delete("assets").
		Where(goqu.Ex{"id": id}).
		Returning("id")

	var deletedID int
	found, err := query.Executor().ScanVal(&deletedID)
	if err != nil {
		return fmt.Errorf("failed to delete asset record: %w", err)
	}
	if !found {
		return custom_error.NewNotFoundError("asset", id)
	}

	return nil
}

// GetAssetsForReport returns every asset joined with its assignee in
// one pass, for the CSV export.
func (r *AssetsRepository) GetAssetsForReport() ([]models.FlatAssetRecord, error) {
	query := r.getAssetQuery().Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("unable to fetch report data: %w", err)
	}

	return flatAssets, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.name").As("asset_name"),
		goqu.I("a.asset_type").As("asset_type"),
		goqu.I("a.cost").As("cost"),
		goqu.I("a.created_at").As("created_at"),
		goqu.I("a.updated_at").As("updated_at"),
		goqu.I("u.id").As("assigned_to_id"),
		goqu.I("u.username").As("assigned_username"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("users").As("u"),
			goqu.On(goqu.Ex{"a.assigned_to": goqu.I("u.id")}),
		)
}

type stampedRow struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func assetFromRequest(stamped stampedRow, req models.AssetRequest) *models.Asset {
	asset := &models.Asset{
		ID:        stamped.ID,
		Name:      req.Name,
		AssetType: req.AssetType,
		Cost:      req.Cost,
		CreatedAt: stamped.CreatedAt,
		UpdatedAt: stamped.UpdatedAt,
	}
	if req.AssignedTo != nil {
		asset.AssignedTo = &models.AssignedUser{ID: *req.AssignedTo}
	}
	return asset
}
