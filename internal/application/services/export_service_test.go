package services

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportPipeline(t *testing.T) (*pipeline, *ExportService) {
	t.Helper()
	p := newPipeline(t)
	dashboard := NewDashboardService(p.cache, p.bus, newTestTracker(), nil)
	export := NewExportService(p.cache, dashboard, nil)
	return p, export
}

func seedVisitor(t *testing.T, p *pipeline, sessionID, visitorID, text string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := p.sessions.StartSession(sessionID, visitorID, intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage(sessionID, intel.RoleUser, text, now.Add(time.Second))
	require.NoError(t, err)
	_, err = p.sessions.EndSession(sessionID, now.Add(time.Minute))
	require.NoError(t, err)
}

func TestExportProfilesCSVRoundTrip(t *testing.T) {
	p, export := newExportPipeline(t)

	seedVisitor(t, p, "s1", "v1", "I manage a $50M portfolio and fly private")
	seedVisitor(t, p, "s2", "v2", "we love the country club and first class travel")

	payload, err := export.ExportProfilesCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per profiled visitor")

	header := records[0]
	require.Len(t, header, 12)
	assert.Equal(t, "Visitor ID", header[0])
	assert.Equal(t, "Created At", header[11])

	rowsByVisitor := make(map[string][]string)
	for _, row := range records[1:] {
		require.Len(t, row, 12, "every row carries all twelve columns")
		rowsByVisitor[row[0]] = row
	}
	require.Len(t, rowsByVisitor, 2, "each profile appears exactly once, keyed by visitor ID")

	v1 := rowsByVisitor["v1"]
	require.NotNil(t, v1, "row is bound to the profile's visitor identifier")
	assert.Equal(t, "s1", v1[1])
	assert.Equal(t, string(intel.TierUHNWI), v1[2])
	assert.NotEmpty(t, v1[6], "lead score populated")
	assert.NotEmpty(t, v1[11], "created-at populated")
}

func TestExportJSONShape(t *testing.T) {
	p, export := newExportPipeline(t)
	seedVisitor(t, p, "s1", "v1", "my yacht is moored in monaco")

	payload, err := export.ExportJSON(time.Now().UTC())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	for _, key := range []string{"sessions", "profiles", "analytics", "exportedAt"} {
		assert.Contains(t, decoded, key)
	}

	var sessions []intel.ConversationSession
	require.NoError(t, json.Unmarshal(decoded["sessions"], &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].SessionID)
}

func TestExportPlacesCSV(t *testing.T) {
	p, export := newExportPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = p.sessions.RecordInteraction(intel.InteractionEvent{
			Type: intel.InteractionPlaceClick, SessionID: "s1", VisitorID: "v1",
			PlaceID: "marina-1", PlaceName: "Yacht Marina", PlaceCategory: "marina",
			Timestamp: now.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	_, err = p.sessions.RecordInteraction(intel.InteractionEvent{
		Type: intel.InteractionDetailView, SessionID: "s1", VisitorID: "v1",
		PlaceID: "villa-9", PlaceName: "Hillside Villa", PlaceCategory: "real_estate",
		Timestamp: now,
	})
	require.NoError(t, err)

	payload, err := export.ExportPlacesCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Place ID", "Place Name", "Category", "Interactions"}, records[0])
	assert.Equal(t, []string{"marina-1", "Yacht Marina", "marina", "3"}, records[1], "most-clicked place first")
	assert.Equal(t, []string{"villa-9", "Hillside Villa", "real_estate", "1"}, records[2])
}

func TestExportEmptyState(t *testing.T) {
	_, export := newExportPipeline(t)

	payload, err := export.ExportProfilesCSV()
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")

	jsonPayload, err := export.ExportJSON(time.Now().UTC())
	require.NoError(t, err)
	var decoded FullExport
	require.NoError(t, json.Unmarshal(jsonPayload, &decoded))
	assert.Empty(t, decoded.Sessions)
	assert.Empty(t, decoded.Profiles)
	require.NotNil(t, decoded.Analytics)
}
