package reports

import (
	"encoding/csv"
	"log"
	"net/http"

	"assettrack/pkg/models"
	"assettrack/pkg/security"

	"github.com/gin-gonic/gin"
)

// csvHeader is fixed for downstream consumers and must not change.
var csvHeader = []string{"Asset Name", "Type", "Cost", "Assigned User"}

const csvFilename = "asset_report.csv"

type AssetReportStore interface {
	GetAssetsForReport() ([]models.FlatAssetRecord, error)
}

type ReportHandler struct {
	assets AssetReportStore
}

func NewReportHandler(assets AssetReportStore) *ReportHandler {
	return &ReportHandler{assets: assets}
}

func (h *ReportHandler) RegisterRoutes(router *gin.Engine) {
	protected := router.Group("")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("/export/csv/", h.ExportAssetsCSV)
	}
}

// ExportAssetsCSV streams every asset as one attachment, no pagination.
func (h *ReportHandler) ExportAssetsCSV(c *gin.Context) {
	records, err := h.assets.GetAssetsForReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch report data", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+csvFilename+`"`)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(csvHeader); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	for _, record := range records {
		row := []string{
			record.Name,
			models.AssetTypeLabel(record.AssetType),
			record.Cost.StringFixed(2),
			record.AssignedUsernameOrDefault("Unassigned"),
		}
		if err := writer.Write(row); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		// Headers are already out, so the failure can only be logged.
		log.Printf("csv export write failed: %v", err)
	}
}
