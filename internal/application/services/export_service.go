package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// profileCSVHeader is the fixed column set of the profiles export.
var profileCSVHeader = []string{
	"Visitor ID",
	"Session ID",
	"Wealth Tier",
	"Confidence",
	"Est. Net Worth Min",
	"Est. Net Worth Max",
	"Lead Score",
	"Status",
	"Investment Intent",
	"Timeline",
	"Interests",
	"Created At",
}

// FullExport is the complete JSON snapshot of the engine's state.
type FullExport struct {
	Sessions   []*intel.ConversationSession `json:"sessions"`
	Profiles   []*intel.VisitorAccount      `json:"profiles"`
	Analytics  *intel.DashboardSnapshot     `json:"analytics"`
	ExportedAt time.Time                    `json:"exportedAt"`
}

// ExportService produces the JSON and CSV export surfaces.
type ExportService struct {
	cache     *manager.Manager
	dashboard *DashboardService
	logger    *logging.ChanneledLogger
}

// NewExportService creates the export service.
func NewExportService(cache *manager.Manager, dashboard *DashboardService, logger *logging.ChanneledLogger) *ExportService {
	return &ExportService{cache: cache, dashboard: dashboard, logger: logger}
}

// ExportJSON serializes sessions, visitor profiles, and the analytics
// snapshot into one document.
func (s *ExportService) ExportJSON(now time.Time) ([]byte, error) {
	// the snapshot takes its own read lock; acquire ours only afterwards
	snapshot, _ := s.dashboard.Snapshot(now)

	var export FullExport
	var payload []byte
	var err error
	s.cache.View(func() {
		export = FullExport{
			Sessions:   s.cache.Sessions.AllSessions(),
			Profiles:   s.cache.Profiles.AllAccounts(),
			Analytics:  snapshot,
			ExportedAt: now,
		}
		payload, err = json.MarshalIndent(export, "", "  ")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	if s.logger != nil {
		s.logger.System().Info("JSON export produced", "sessions", len(export.Sessions), "profiles", len(export.Profiles), "bytes", len(payload))
	}
	return payload, nil
}

// ExportProfilesCSV writes one row per visitor profile. Every profile
// appears exactly once; rows are keyed by the profile's VisitorID and a
// profile missing its identifier is an error, never a silent drop.
func (s *ExportService) ExportProfilesCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(profileCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	var rowErr error
	s.cache.View(func() {
		for _, account := range s.cache.Profiles.AllAccounts() {
			profile := account.AggregatedProfile
			if profile == nil {
				continue
			}
			if profile.VisitorID == "" {
				rowErr = fmt.Errorf("profile for session %s has no visitor identifier", profile.SessionID)
				return
			}

			intent := "no"
			if profile.Intent.HasIntent {
				intent = strings.Join(profile.Intent.Types, ";")
			}

			row := []string{
				profile.VisitorID,
				profile.SessionID,
				string(profile.Tier),
				strconv.FormatFloat(profile.Confidence, 'f', 2, 64),
				strconv.FormatFloat(profile.EstimatedNetWorth.Min, 'f', 0, 64),
				strconv.FormatFloat(profile.EstimatedNetWorth.Max, 'f', 0, 64),
				strconv.FormatFloat(profile.LeadScore, 'f', 1, 64),
				string(profile.Status),
				intent,
				profile.Intent.Timeline,
				strings.Join(profile.InterestCategories, ";"),
				profile.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				rowErr = fmt.Errorf("failed to write profile row for %s: %w", profile.VisitorID, err)
				return
			}
		}
	})
	if rowErr != nil {
		return nil, rowErr
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPlacesCSV writes aggregated interaction counts per place,
// most-clicked first.
func (s *ExportService) ExportPlacesCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Place ID", "Place Name", "Category", "Interactions"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, stat := range s.cache.Interactions.PlaceStats() {
		row := []string{
			stat.PlaceID,
			stat.PlaceName,
			stat.Category,
			strconv.Itoa(stat.Clicks),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write place row for %s: %w", stat.PlaceID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer failed: %w", err)
	}
	return buf.Bytes(), nil
}
