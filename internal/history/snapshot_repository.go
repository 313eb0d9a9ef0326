package history

import (
	"fmt"

	"assettrack/internal/repository"
	custom_error "assettrack/pkg/errors"
	"assettrack/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// SnapshotRepository persists the append-only asset history. Rows are
// never updated or deleted; a revert only adds a new one.
type SnapshotRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SnapshotRepository {
	return &SnapshotRepository{repository: r}
}

func (r *SnapshotRepository) InsertSnapshot(tx *goqu.TxDatabase, snapshot models.AssetSnapshot) error {
	row := goqu.Record{
		"asset_id":         snapshot.AssetID,
		"action":           snapshot.Action,
		"asset_name":       snapshot.Name,
		"asset_type":       snapshot.AssetType,
		"cost":             snapshot.Cost,
		"asset_created_at": snapshot.AssetCreatedAt,
		"asset_updated_at": snapshot.AssetUpdatedAt,
	}

	if snapshot.AssignedTo != nil {
		row["assigned_to_id"] = *snapshot.AssignedTo
	}

	if snapshot.RecordedBy != nil {
		row["recorded_by"] = *snapshot.RecordedBy
	}

	var query *goqu.InsertDataset
	if tx != nil {
		query = tx.Insert("asset_snapshots").Rows(row)
	} else {
		query = r.repository.GoquDBWrapper.Insert("asset_snapshots").Rows(row)
	}

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert asset snapshot: %w", err)
	}

	return nil
}

// GetAssetSnapshots returns the asset's history, most recent first.
func (r *SnapshotRepository) GetAssetSnapshots(assetID int) ([]models.AssetSnapshot, error) {
	var snapshots []models.AssetSnapshot

	query := r.snapshotQuery().
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("recorded_at").Desc(), goqu.I("id").Desc())

	if err := query.Executor().ScanStructs(&snapshots); err != nil {
		return nil, fmt.Errorf("unable to select asset snapshots: %w", err)
	}

	return snapshots, nil
}

// GetSnapshot fetches one snapshot, scoped to the asset it belongs to.
func (r *SnapshotRepository) GetSnapshot(assetID, snapshotID int) (*models.AssetSnapshot, error) {
	var snapshot models.AssetSnapshot

	query := r.snapshotQuery().Where(goqu.Ex{
		"id":       snapshotID,
		"asset_id": assetID,
	})

	found, err := query.Executor().ScanStruct(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset snapshot: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("snapshot", snapshotID)
	}

	return &snapshot, nil
}

func (r *SnapshotRepository) snapshotQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"id",
		"asset_id",
		"action",
		"asset_name",
		"asset_type",
		"cost",
		"assigned_to_id",
		"asset_created_at",
		"asset_updated_at",
		"recorded_by",
		"recorded_at",
	).From("asset_snapshots")
}
