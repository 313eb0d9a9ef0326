package assets

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	custom_error "assettrack/pkg/errors"
	"assettrack/pkg/models"
	"assettrack/pkg/security"

	"github.com/gin-gonic/gin"
)

// AssetOperations is the mutation/history surface backed by AssetService.
type AssetOperations interface {
	GetAsset(id int) (*models.Asset, error)
	CreateAsset(req models.AssetRequest, actingUser *int) (*models.Asset, error)
	UpdateAsset(id int, req models.AssetRequest, actingUser *int) (*models.Asset, error)
	DeleteAsset(id int, actingUser *int) error
	ListHistory(assetID int) (*models.Asset, []models.AssetSnapshot, error)
	Revert(assetID, snapshotID int, actingUser *int) (*models.Asset, *models.AssetSnapshot, error)
}

// AssetFinder is the read-only query surface backed by AssetsRepository.
type AssetFinder interface {
	ListAssets(listQuery models.AssetListQuery) ([]models.Asset, int, error)
	GetDashboardStats() (*models.DashboardStats, error)
}

// MaintenanceLister supplies the maintenance entries for the detail page.
type MaintenanceLister interface {
	GetAssetLogs(assetID int) ([]models.MaintenanceLog, error)
}

// AssignableUsers supplies the user choices for the asset forms.
type AssignableUsers interface {
	GetUsers() ([]models.User, error)
}

type AssetHandler struct {
	service     AssetOperations
	finder      AssetFinder
	maintenance MaintenanceLister
	users       AssignableUsers
}

func NewAssetHandler(service AssetOperations, finder AssetFinder, maintenance MaintenanceLister, users AssignableUsers) *AssetHandler {
	return &AssetHandler{
		service:     service,
		finder:      finder,
		maintenance: maintenance,
		users:       users,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	protected := router.Group("")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("/", h.Dashboard)
		protected.GET("/list/", h.ListAssets)
		protected.GET("/:id/detail/", h.AssetDetail)

		protected.GET("/create/", security.RequireManagerOrAdmin(), h.AssetFormContext)
		protected.POST("/create/", security.RequireManagerOrAdmin(), h.CreateAsset)
		protected.GET("/update/:id/", security.RequireManagerOrAdmin(), h.UpdateFormContext)
		protected.POST("/update/:id/", security.RequireManagerOrAdmin(), h.UpdateAsset)
		protected.GET("/delete/:id/", security.RequireManagerOrAdmin(), h.DeleteConfirmContext)
		protected.POST("/delete/:id/", security.RequireManagerOrAdmin(), h.DeleteAsset)

		protected.GET("/:id/history/", security.RequireManagerOrAdmin(), h.AssetHistory)
		protected.POST("/:id/history/:historyID/revert/", security.RequireManagerOrAdmin(), h.RevertAsset)
	}
}

func (h *AssetHandler) Dashboard(c *gin.Context) {
	stats, err := h.finder.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to compute dashboard", "details": err.Error()})
		return
	}

	if stats.AssetsByType == nil {
		stats.AssetsByType = []models.AssetTypeCount{}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	var listQuery models.AssetListQuery
	if err := c.ShouldBindQuery(&listQuery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid list filters", "details": err.Error()})
		return
	}

	if listQuery.AssetType != "" && !models.IsValidAssetType(listQuery.AssetType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown asset type", "details": listQuery.AssetType})
		return
	}

	assets, total, err := h.finder.ListAssets(listQuery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to list assets", "details": err.Error()})
		return
	}

	if assets == nil {
		assets = []models.Asset{}
	}

	page := listQuery.Page
	if page < 1 {
		page = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":      assets,
		"page":        page,
		"page_size":   ListPageSize,
		"total":       total,
		"total_pages": (total + ListPageSize - 1) / ListPageSize,
		"asset_types": models.AssetTypes,
	})
}

func (h *AssetHandler) AssetDetail(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(assetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logs, err := h.maintenance.GetAssetLogs(assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load maintenance logs", "details": err.Error()})
		return
	}

	if logs == nil {
		logs = []models.MaintenanceLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":            asset,
		"maintenance_logs": logs,
	})
}

// AssetFormContext mirrors the create form page: the choices a client
// needs to render it.
func (h *AssetHandler) AssetFormContext(c *gin.Context) {
	users, err := h.users.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"asset_types": models.AssetTypes,
		"users":       users,
	})
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req, ok := h.bindAssetRequest(c)
	if !ok {
		return
	}

	asset, err := h.service.CreateAsset(*req, security.ActingUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateFormContext(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(assetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	users, err := h.users.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":       asset,
		"asset_types": models.AssetTypes,
		"users":       users,
	})
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	req, ok := h.bindAssetRequest(c)
	if !ok {
		return
	}

	asset, err := h.service.UpdateAsset(assetID, *req, security.ActingUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteConfirmContext mirrors the delete confirmation page.
func (h *AssetHandler) DeleteConfirmContext(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.service.GetAsset(assetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":   asset,
		"message": fmt.Sprintf("Confirm deletion of %q via POST to this path.", asset.Name),
	})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAsset(assetID, security.ActingUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

func (h *AssetHandler) AssetHistory(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	asset, snapshots, err := h.service.ListHistory(assetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if snapshots == nil {
		snapshots = []models.AssetSnapshot{}
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":   asset,
		"history": snapshots,
	})
}

func (h *AssetHandler) RevertAsset(c *gin.Context) {
	assetID, ok := h.assetIDParam(c)
	if !ok {
		return
	}

	snapshotID, err := strconv.Atoi(c.Param("historyID"))
	if err != nil || snapshotID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history ID"})
		return
	}

	asset, snapshot, err := h.service.Revert(assetID, snapshotID, security.ActingUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Asset successfully reverted to state from %s.", snapshot.RecordedAt.Format(time.RFC3339)),
		"asset":    asset,
		"redirect": fmt.Sprintf("/%d/history/", assetID),
	})
}

func (h *AssetHandler) bindAssetRequest(c *gin.Context) (*models.AssetRequest, bool) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return nil, false
	}

	if !models.IsValidAssetType(req.AssetType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown asset type", "details": req.AssetType})
		return nil, false
	}

	if req.Cost.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cost must not be negative"})
		return nil, false
	}

	if req.Cost.Exponent() < -2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cost must have at most two decimal places"})
		return nil, false
	}

	return &req, true
}

func (h *AssetHandler) assetIDParam(c *gin.Context) (int, bool) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return 0, false
	}
	return assetID, true
}

func (h *AssetHandler) respondError(c *gin.Context, err error) {
	var notFound *custom_error.NotFoundError
	var unique *custom_error.UniqueViolationError
	var foreignKey *custom_error.ForeignKeyViolationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &unique):
		c.JSON(http.StatusConflict, gin.H{"error": unique.Error()})
	case errors.As(err, &foreignKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user does not exist"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed", "details": err.Error()})
	}
}
