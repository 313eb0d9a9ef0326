package maintenance

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	custom_error "assettrack/pkg/errors"
	"assettrack/pkg/models"
	"assettrack/pkg/security"

	"github.com/gin-gonic/gin"
)

type LogStore interface {
	InsertLog(entry *models.MaintenanceLog) error
	GetAssetLogs(assetID int) ([]models.MaintenanceLog, error)
}

// AssetGetter checks the path-scoped asset exists before a log is bound
// to it.
type AssetGetter interface {
	GetAsset(id int) (*models.Asset, error)
}

type MaintenanceHandler struct {
	logs   LogStore
	assets AssetGetter
}

func NewHandler(logs LogStore, assets AssetGetter) *MaintenanceHandler {
	return &MaintenanceHandler{
		logs:   logs,
		assets: assets,
	}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.Engine) {
	protected := router.Group("")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("/:id/maintenance/add/", security.RequireManagerOrAdmin(), h.AddFormContext)
		protected.POST("/:id/maintenance/add/", security.RequireManagerOrAdmin(), h.AddLog)
	}
}

// AddFormContext mirrors the maintenance form page: the asset the
// entry will be bound to.
func (h *MaintenanceHandler) AddFormContext(c *gin.Context) {
	asset, ok := h.lookupAsset(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

func (h *MaintenanceHandler) AddLog(c *gin.Context) {
	asset, ok := h.lookupAsset(c)
	if !ok {
		return
	}

	var req models.MaintenanceLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	serviceDate, err := req.ParseServiceDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service date, expected YYYY-MM-DD"})
		return
	}

	if req.Cost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cost must not be negative"})
		return
	}

	// The asset reference comes from the URL path, never the payload.
	entry := models.MaintenanceLog{
		AssetID:     asset.ID,
		ServiceDate: serviceDate,
		Description: req.Description,
		Cost:        req.Cost,
	}

	if err := h.logs.InsertLog(&entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add maintenance record", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Maintenance record added successfully.",
		"log":      entry,
		"redirect": fmt.Sprintf("/%d/detail/", asset.ID),
	})
}

func (h *MaintenanceHandler) lookupAsset(c *gin.Context) (*models.Asset, bool) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return nil, false
	}

	asset, err := h.assets.GetAsset(assetID)
	if err != nil {
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load asset", "details": err.Error()})
		}
		return nil, false
	}

	return asset, true
}
