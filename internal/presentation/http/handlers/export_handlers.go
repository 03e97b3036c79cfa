package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/services"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// ExportHandlers contains the JSON/CSV export handlers
type ExportHandlers struct {
	exportService *services.ExportService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewExportHandlers creates export handlers with injected dependencies
func NewExportHandlers(exportService *services.ExportService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ExportHandlers {
	return &ExportHandlers{
		exportService: exportService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetJSONExport handles GET /api/v1/export/json
func (h *ExportHandlers) GetJSONExport(c *gin.Context) {
	marker := h.perfTracker.StartOperation("export_json_request")
	defer marker.Complete()

	payload, err := h.exportService.ExportJSON(time.Now().UTC())
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Disposition", `attachment; filename="wealthstack-export.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// GetProfilesCSV handles GET /api/v1/export/profiles.csv
func (h *ExportHandlers) GetProfilesCSV(c *gin.Context) {
	marker := h.perfTracker.StartOperation("export_profiles_csv_request")
	defer marker.Complete()

	payload, err := h.exportService.ExportProfilesCSV()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Disposition", `attachment; filename="wealth-profiles.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// GetPlacesCSV handles GET /api/v1/export/places.csv
func (h *ExportHandlers) GetPlacesCSV(c *gin.Context) {
	marker := h.perfTracker.StartOperation("export_places_csv_request")
	defer marker.Complete()

	payload, err := h.exportService.ExportPlacesCSV()
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	c.Header("Content-Disposition", `attachment; filename="place-interactions.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}
