package reports

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"assettrack/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAssetReportStore struct {
	mock.Mock
}

func (m *MockAssetReportStore) GetAssetsForReport() ([]models.FlatAssetRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlatAssetRecord), args.Error(1)
}

func TestExportAssetsCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	records := []models.FlatAssetRecord{
		{
			ID:               1,
			Name:             "LaptopA",
			AssetType:        models.AssetTypeLaptop,
			Cost:             decimal.RequireFromString("1200.5"),
			AssignedToID:     sql.NullInt64{Int64: 4, Valid: true},
			AssignedUsername: sql.NullString{String: "alice", Valid: true},
		},
		{
			ID:        2,
			Name:      "Desk",
			AssetType: models.AssetTypeFurniture,
			Cost:      decimal.RequireFromString("250"),
		},
	}

	mockStore := new(MockAssetReportStore)
	mockStore.On("GetAssetsForReport").Return(records, nil).Once()
	handler := NewReportHandler(mockStore)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/export/csv/", nil)

	handler.ExportAssetsCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asset_report.csv"`, w.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"Asset Name", "Type", "Cost", "Assigned User"}, rows[0])
	assert.Equal(t, []string{"LaptopA", "Laptop", "1200.50", "alice"}, rows[1])
	assert.Equal(t, []string{"Desk", "Furniture", "250.00", "Unassigned"}, rows[2])

	mockStore.AssertExpectations(t)
}

// failingResponseWriter simulates a client that went away mid-stream.
type failingResponseWriter struct {
	header http.Header
}

func (w *failingResponseWriter) Header() http.Header { return w.header }

func (w *failingResponseWriter) WriteHeader(int) {}

func (w *failingResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestExportAssetsCSVWriteFailureIsLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockStore := new(MockAssetReportStore)
	mockStore.On("GetAssetsForReport").Return([]models.FlatAssetRecord{
		{ID: 1, Name: "LaptopA", AssetType: models.AssetTypeLaptop},
	}, nil).Once()
	handler := NewReportHandler(mockStore)

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	c, _ := gin.CreateTestContext(&failingResponseWriter{header: http.Header{}})
	c.Request = httptest.NewRequest("GET", "/export/csv/", nil)

	handler.ExportAssetsCSV(c)

	assert.Contains(t, logged.String(), "csv export write failed")
	mockStore.AssertExpectations(t)
}

func TestExportAssetsCSVStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockStore := new(MockAssetReportStore)
	mockStore.On("GetAssetsForReport").Return(nil, errors.New("connection refused")).Once()
	handler := NewReportHandler(mockStore)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/export/csv/", nil)

	handler.ExportAssetsCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockStore.AssertExpectations(t)
}
