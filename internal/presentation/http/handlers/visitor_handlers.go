package handlers

import (
	"net/http"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// VisitorHandlers serves the per-visitor profile and journey views.
type VisitorHandlers struct {
	cacheManager *manager.Manager
	logger       *logging.ChanneledLogger
}

// NewVisitorHandlers creates visitor handlers with injected dependencies
func NewVisitorHandlers(cacheManager *manager.Manager, logger *logging.ChanneledLogger) *VisitorHandlers {
	return &VisitorHandlers{cacheManager: cacheManager, logger: logger}
}

// GetVisitors handles GET /api/v1/visitors
func (h *VisitorHandlers) GetVisitors(c *gin.Context) {
	type visitorRow struct {
		VisitorID          string                    `json:"visitorId"`
		FirstSeen          string                    `json:"firstSeen"`
		LastSeen           string                    `json:"lastSeen"`
		Sessions           int                       `json:"sessions"`
		Tier               intel.WealthTier          `json:"tier"`
		HighestTierReached intel.WealthTier          `json:"highestTierReached"`
		PeakLeadScore      float64                   `json:"peakLeadScore"`
		Status             intel.QualificationStatus `json:"status"`
	}

	var rows []visitorRow
	h.cacheManager.View(func() {
		accounts := h.cacheManager.Profiles.AllAccounts()
		rows = make([]visitorRow, 0, len(accounts))
		for _, account := range accounts {
			row := visitorRow{
				VisitorID:          account.VisitorID,
				FirstSeen:          account.FirstSeen.UTC().Format("2006-01-02T15:04:05Z07:00"),
				LastSeen:           account.LastSeen.UTC().Format("2006-01-02T15:04:05Z07:00"),
				Sessions:           len(account.Sessions),
				Tier:               intel.TierUnknown,
				HighestTierReached: account.HighestTierReached,
				PeakLeadScore:      account.PeakLeadScore,
				Status:             account.LastQualification,
			}
			if account.AggregatedProfile != nil {
				row.Tier = account.AggregatedProfile.Tier
			}
			rows = append(rows, row)
		}
	})
	c.JSON(http.StatusOK, gin.H{"visitors": rows})
}

// GetVisitor handles GET /api/v1/visitors/:id
func (h *VisitorHandlers) GetVisitor(c *gin.Context) {
	var account *intel.VisitorAccount
	h.cacheManager.View(func() {
		if stored, found := h.cacheManager.Profiles.GetAccount(c.Param("id")); found {
			account = stored.Clone()
		}
	})
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor not found"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetVisitorJourney handles GET /api/v1/visitors/:id/journey
func (h *VisitorHandlers) GetVisitorJourney(c *gin.Context) {
	var visitorID string
	var journey []intel.JourneyNode
	h.cacheManager.View(func() {
		if account, found := h.cacheManager.Profiles.GetAccount(c.Param("id")); found {
			visitorID = account.VisitorID
			journey = append([]intel.JourneyNode(nil), account.Journey...)
		}
	})
	if visitorID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"visitorId": visitorID,
		"journey":   journey,
	})
}
