package maintenance

import (
	"fmt"

	"assettrack/internal/repository"
	"assettrack/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type MaintenanceRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *MaintenanceRepository {
	return &MaintenanceRepository{repository: r}
}

func (r *MaintenanceRepository) InsertLog(entry *models.MaintenanceLog) error {
	query := r.repository.GoquDBWrapper.Insert("maintenance_logs").
		Rows(goqu.Record{
			"asset_id":     entry.AssetID,
			"service_date": entry.ServiceDate,
			"description":  entry.Description,
			"cost":         entry.Cost,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&entry.ID); err != nil {
		return fmt.Errorf("failed to insert maintenance log: %w", err)
	}

	return nil
}

// GetAssetLogs lists an asset's maintenance entries by service date,
// newest first, not by creation order.
func (r *MaintenanceRepository) GetAssetLogs(assetID int) ([]models.MaintenanceLog, error) {
	var logs []models.MaintenanceLog

	query := r.repository.GoquDBWrapper.
		Select("id", "asset_id", "service_date", "description", "cost").
		From("maintenance_logs").
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("service_date").Desc(), goqu.I("id").Desc())

	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, fmt.Errorf("unable to select maintenance logs: %w", err)
	}

	return logs, nil
}
