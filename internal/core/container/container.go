package container

import (
	"database/sql"

	"assettrack/internal/assets"
	"assettrack/internal/history"
	"assettrack/internal/maintenance"
	"assettrack/internal/repository"
	"assettrack/internal/reports"
	"assettrack/internal/users"
	"assettrack/pkg/security"
)

type Container struct {
	Repository         *repository.Repository
	LoginHandler       *security.LoginHandler
	AssetHandler       *assets.AssetHandler
	MaintenanceHandler *maintenance.MaintenanceHandler
	ReportHandler      *reports.ReportHandler
	UserHandler        *users.UsersHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)

	assetsRepo := assets.NewRepository(repo)
	snapshotRepo := history.NewRepository(repo)
	maintenanceRepo := maintenance.NewRepository(repo)
	userRepo := users.NewRepository(repo)

	assetService := assets.NewAssetService(repo, assetsRepo, snapshotRepo)

	loginHandler := security.NewLoginHandler(repo)
	assetHandler := assets.NewAssetHandler(assetService, assetsRepo, maintenanceRepo, userRepo)
	maintenanceHandler := maintenance.NewHandler(maintenanceRepo, assetsRepo)
	reportHandler := reports.NewReportHandler(assetsRepo)
	userHandler := users.NewHandler(userRepo)

	return &Container{
		Repository:         repo,
		LoginHandler:       loginHandler,
		AssetHandler:       assetHandler,
		MaintenanceHandler: maintenanceHandler,
		ReportHandler:      reportHandler,
		UserHandler:        userHandler,
	}
}
