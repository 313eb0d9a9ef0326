package assets

import (
	"assettrack/internal/repository"
	"assettrack/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// AssetStore is the persistence surface the service mutates through.
// Mutating calls take the enclosing transaction.
type AssetStore interface {
	GetAsset(id int) (*models.Asset, error)
	InsertAsset(tx *goqu.TxDatabase, req models.AssetRequest) (*models.Asset, error)
	UpdateAsset(tx *goqu.TxDatabase, id int, req models.AssetRequest) (*models.Asset, error)
	ApplySnapshot(tx *goqu.TxDatabase, snapshot *models.AssetSnapshot) (*models.Asset, error)
	DeleteAsset(tx *goqu.TxDatabase, id int) error
}

// SnapshotStore is the append-only history log.
type SnapshotStore interface {
	InsertSnapshot(tx *goqu.TxDatabase, snapshot models.AssetSnapshot) error
	GetAssetSnapshots(assetID int) ([]models.AssetSnapshot, error)
	GetSnapshot(assetID, snapshotID int) (*models.AssetSnapshot, error)
}

// AssetService couples every asset mutation with its snapshot inside
// one transaction: the latest snapshot always matches the current row.
type AssetService struct {
	assets    AssetStore
	snapshots SnapshotStore
	runInTx   func(fn func(tx *goqu.TxDatabase) error) error
}

func NewAssetService(repo *repository.Repository, assets AssetStore, snapshots SnapshotStore) *AssetService {
	return &AssetService{
		assets:    assets,
		snapshots: snapshots,
		runInTx: func(fn func(tx *goqu.TxDatabase) error) error {
			return repository.WithTransaction(repo.GoquDBWrapper, fn)
		},
	}
}

func (s *AssetService) GetAsset(id int) (*models.Asset, error) {
	return s.assets.GetAsset(id)
}

func (s *AssetService) CreateAsset(req models.AssetRequest, actingUser *int) (*models.Asset, error) {
	var created *models.Asset

	err := s.runInTx(func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.InsertAsset(tx, req)
		if err != nil {
			return err
		}
		created = asset

		return s.snapshots.InsertSnapshot(tx, models.CaptureSnapshot(asset, models.SnapshotActionCreate, actingUser))
	})
	if err != nil {
		return nil, err
	}

	// Re-read outside the transaction to return the joined assignee.
	return s.assets.GetAsset(created.ID)
}

func (s *AssetService) UpdateAsset(id int, req models.AssetRequest, actingUser *int) (*models.Asset, error) {
	err := s.runInTx(func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.UpdateAsset(tx, id, req)
		if err != nil {
			return err
		}

		return s.snapshots.InsertSnapshot(tx, models.CaptureSnapshot(asset, models.SnapshotActionUpdate, actingUser))
	})
	if err != nil {
		return nil, err
	}

	return s.assets.GetAsset(id)
}

// DeleteAsset removes the row and appends a terminal delete snapshot.
// The snapshot table holds no foreign key, so the history outlives the
// asset.
func (s *AssetService) DeleteAsset(id int, actingUser *int) error {
	asset, err := s.assets.GetAsset(id)
	if err != nil {
		return err
	}

	return s.runInTx(func(tx *goqu.TxDatabase) error {
		if err := s.assets.DeleteAsset(tx, id); err != nil {
			return err
		}

		return s.snapshots.InsertSnapshot(tx, models.CaptureSnapshot(asset, models.SnapshotActionDelete, actingUser))
	})
}

// ListHistory returns the asset and its snapshots, most recent first.
func (s *AssetService) ListHistory(assetID int) (*models.Asset, []models.AssetSnapshot, error) {
	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return nil, nil, err
	}

	snapshots, err := s.snapshots.GetAssetSnapshots(assetID)
	if err != nil {
		return nil, nil, err
	}

	return asset, snapshots, nil
}

// Revert makes the identified snapshot's values the current state. The
// overwrite and the new revert snapshot commit together, so repeated
// reverts to the same snapshot yield the same fields while the history
// only ever grows.
func (s *AssetService) Revert(assetID, snapshotID int, actingUser *int) (*models.Asset, *models.AssetSnapshot, error) {
	snapshot, err := s.snapshots.GetSnapshot(assetID, snapshotID)
	if err != nil {
		return nil, nil, err
	}

	err = s.runInTx(func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.ApplySnapshot(tx, snapshot)
		if err != nil {
			return err
		}

		return s.snapshots.InsertSnapshot(tx, models.CaptureSnapshot(asset, models.SnapshotActionRevert, actingUser))
	})
	if err != nil {
		return nil, nil, err
	}

	asset, err := s.assets.GetAsset(assetID)
	if err != nil {
		return nil, nil, err
	}

	return asset, snapshot, nil
}
