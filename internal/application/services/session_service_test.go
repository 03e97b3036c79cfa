package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	cache       *manager.Manager
	bus         *messaging.AnalyticsBus
	sessions    *SessionService
	aggregation *AggregationService
	alerts      *AlertService
	activity    *ActivityService
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	cache := manager.NewManager(50, nil)
	bus := messaging.NewAnalyticsBus(nil)
	alerts := NewAlertService(cache, nil)
	aggregation := NewAggregationService(cache, bus, alerts, nil)
	activity := NewActivityService(cache, bus, nil, nil)
	activity.Start()
	t.Cleanup(activity.Stop)

	extraction := NewExtractionService(DefaultRuleset(), nil)
	scoring := NewScoringService(nil)
	tracker := performance.NewTracker(100)
	sessions := NewSessionService(cache, extraction, scoring, aggregation, activity, bus, tracker, nil)

	return &pipeline{
		cache:       cache,
		bus:         bus,
		sessions:    sessions,
		aggregation: aggregation,
		alerts:      alerts,
		activity:    activity,
	}
}

func TestPortfolioDisclosureCreatesSingleVIPAlert(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	var alertEvents []events.HotLeadAlert
	p.bus.Subscribe([]events.Type{events.TypeHotLeadAlert}, func(e events.Event) {
		alertEvents = append(alertEvents, e.(events.HotLeadAlert))
	})

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{DeviceClass: "desktop"}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleAssistant, "Welcome! How can I help today?", now)
	require.NoError(t, err)

	session, err := p.sessions.LogMessage("s1", intel.RoleUser, "I manage a $50M portfolio and fly private", now.Add(time.Second))
	require.NoError(t, err)
	require.NotNil(t, session.Analysis)

	assert.Equal(t, intel.TierUHNWI, session.Analysis.Tier)
	assert.GreaterOrEqual(t, session.Analysis.EstimatedNetWorth.Min, 30_000_000.0)
	assert.True(t, session.Analysis.Status.IsQualifying())

	stored := p.cache.Alerts.AllAlerts()
	require.Len(t, stored, 1, "exactly one alert per qualifying transition")
	assert.Contains(t, stored[0].RecommendedActions, "immediate VIP concierge contact")
	assert.Contains(t, stored[0].RecommendedActions, "executive alert to management")
	require.Len(t, alertEvents, 1)

	// subsequent messages while still qualifying must not re-fire
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "also thinking about a penthouse", now.Add(2*time.Second))
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "and we own a yacht", now.Add(3*time.Second))
	require.NoError(t, err)

	assert.Len(t, p.cache.Alerts.AllAlerts(), 1, "alert fires once per transition, not per message")
	assert.Len(t, alertEvents, 1)
}

func TestHighestTierNeverReverts(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	// first session: modest lifestyle evidence
	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "we stayed at a five star resort", now.Add(time.Second))
	require.NoError(t, err)
	_, err = p.sessions.EndSession("s1", now.Add(time.Minute))
	require.NoError(t, err)

	account, found := p.cache.Profiles.GetAccount("v1")
	require.True(t, found)
	firstTier := account.HighestTierReached

	// second session: much stronger evidence
	_, err = p.sessions.StartSession("s2", "v1", intel.SessionMeta{}, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s2", intel.RoleUser, "my net worth of $20 million is mostly in real estate", now.Add(time.Hour+time.Second))
	require.NoError(t, err)
	_, err = p.sessions.EndSession("s2", now.Add(2*time.Hour))
	require.NoError(t, err)

	account, _ = p.cache.Profiles.GetAccount("v1")
	peak := account.HighestTierReached
	peakScore := account.PeakLeadScore
	assert.True(t, peak.Rank() > firstTier.Rank(), "stronger session raises the peak")
	assert.True(t, peak.AtLeast(intel.TierVHNWI))

	// third session: scores lower, peaks must hold
	_, err = p.sessions.StartSession("s3", "v1", intel.SessionMeta{}, now.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s3", intel.RoleUser, "what time does the spa open?", now.Add(3*time.Hour+time.Second))
	require.NoError(t, err)
	_, err = p.sessions.EndSession("s3", now.Add(4*time.Hour))
	require.NoError(t, err)

	account, _ = p.cache.Profiles.GetAccount("v1")
	assert.Equal(t, peak, account.HighestTierReached, "highestTierReached never reverts")
	assert.Equal(t, peakScore, account.PeakLeadScore, "peakLeadScore never reverts")
}

func TestTierChangeEventsEmitted(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	var changes []events.TierChange
	p.bus.Subscribe([]events.Type{events.TypeTierChange}, func(e events.Event) {
		changes = append(changes, e.(events.TierChange))
	})

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleAssistant, "Good afternoon", now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "I manage a $50M portfolio", now.Add(time.Second))
	require.NoError(t, err)

	require.NotEmpty(t, changes)
	assert.Equal(t, intel.TierUnknown, changes[0].From)
	assert.Equal(t, intel.TierUHNWI, changes[0].To)
}

func TestSessionLifecycleGuards(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)

	_, err = p.sessions.StartSession("s1", "v2", intel.SessionMeta{}, now)
	assert.Error(t, err, "restarting a live session is rejected")

	_, err = p.sessions.LogMessage("missing", intel.RoleUser, "hello", now)
	assert.Error(t, err)

	_, err = p.sessions.LogMessage("s1", "moderator", "hello", now)
	assert.Error(t, err, "unknown roles are rejected")

	_, err = p.sessions.EndSession("s1", now.Add(time.Minute))
	require.NoError(t, err)

	_, err = p.sessions.EndSession("s1", now.Add(2*time.Minute))
	assert.Error(t, err, "double end is rejected")

	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "late", now.Add(2*time.Minute))
	assert.Error(t, err, "finalized sessions accept no messages")
}

func TestStartSessionGeneratesID(t *testing.T) {
	p := newPipeline(t)

	session, err := p.sessions.StartSession("", "v1", intel.SessionMeta{}, time.Now().UTC())
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)

	_, err = p.sessions.StartSession("", "", intel.SessionMeta{}, time.Now().UTC())
	assert.Error(t, err, "visitor ID is mandatory")
}

func TestInteractionFlowsToAccountAndJourney(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)

	event, err := p.sessions.RecordInteraction(intel.InteractionEvent{
		Type:          intel.InteractionPlaceClick,
		SessionID:     "s1",
		VisitorID:     "v1",
		PlaceID:       "marina-1",
		PlaceName:     "Yacht Marina",
		PlaceCategory: "marina",
		Timestamp:     now.Add(time.Second),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)

	account, found := p.cache.Profiles.GetAccount("v1")
	require.True(t, found)
	assert.Equal(t, 1, account.TotalInteractions)
	require.NotEmpty(t, account.Interactions)
	assert.Equal(t, "marina-1", account.Interactions[0].PlaceID)

	var kinds []intel.JourneyNodeType
	for _, node := range account.Journey {
		kinds = append(kinds, node.Type)
	}
	assert.Contains(t, kinds, intel.JourneySessionStart)
	assert.Contains(t, kinds, intel.JourneyInteraction)

	_, err = p.sessions.RecordInteraction(intel.InteractionEvent{Type: intel.InteractionSearch})
	assert.Error(t, err, "interactions need session and visitor identifiers")
}

func TestJourneyRecordsChronologicalNodes(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "we charter a jet every winter", now.Add(time.Second))
	require.NoError(t, err)
	_, err = p.sessions.EndSession("s1", now.Add(time.Minute))
	require.NoError(t, err)

	account, _ := p.cache.Profiles.GetAccount("v1")
	require.NotEmpty(t, account.Journey)

	for i := 1; i < len(account.Journey); i++ {
		assert.False(t, account.Journey[i].Timestamp.Before(account.Journey[i-1].Timestamp),
			"journey entries stay chronological")
	}
	assert.Equal(t, intel.JourneySessionStart, account.Journey[0].Type)
	assert.Equal(t, intel.JourneySessionEnd, account.Journey[len(account.Journey)-1].Type)

	var signalNodes []intel.JourneyNode
	for _, node := range account.Journey {
		if node.Type == intel.JourneySignalDetected {
			signalNodes = append(signalNodes, node)
		}
	}
	require.NotEmpty(t, signalNodes, "detected signals land in the journey log")
	assert.Equal(t, "private_aviation", signalNodes[0].Detail)
	assert.Equal(t, "s1", signalNodes[0].SessionID)
}

func TestFirstTurnDefersAnalysis(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)

	// an opening message has no prior turn to give it context
	session, err := p.sessions.LogMessage("s1", intel.RoleUser, "I manage a $50M portfolio and fly private", now.Add(time.Second))
	require.NoError(t, err)
	assert.Nil(t, session.Analysis)
	assert.Empty(t, p.cache.Alerts.AllAlerts())

	session, err = p.sessions.LogMessage("s1", intel.RoleUser, "we also keep a place in aspen", now.Add(2*time.Second))
	require.NoError(t, err)
	require.NotNil(t, session.Analysis, "second turn analyzes the full transcript")
	assert.Equal(t, intel.TierUHNWI, session.Analysis.Tier)
	assert.Len(t, p.cache.Alerts.AllAlerts(), 1)
}

func TestConcurrentIngestAndProjectionScans(t *testing.T) {
	p := newPipeline(t)
	dashboard := NewDashboardService(p.cache, p.bus, newTestTracker(), nil)
	export := NewExportService(p.cache, dashboard, nil)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleAssistant, "Welcome", now)
	require.NoError(t, err)

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := p.sessions.LogMessage("s1", intel.RoleUser,
				fmt.Sprintf("turn %d, more about my yacht", i), now.Add(time.Duration(i)*time.Millisecond))
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			snapshot, _ := dashboard.Snapshot(now.Add(time.Duration(i) * time.Millisecond))
			assert.NotNil(t, snapshot)
			_, err := export.ExportJSON(now)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	session, err := p.sessions.GetSession("s1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, rounds+1)
	account, found := p.cache.Profiles.GetAccount("v1")
	require.True(t, found)
	assert.Equal(t, rounds, account.TotalMessages)
}

func TestActivityFeedProjectsPipelineEvents(t *testing.T) {
	p := newPipeline(t)
	now := time.Now().UTC()

	_, err := p.sessions.StartSession("s1", "v1", intel.SessionMeta{}, now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleAssistant, "Hello again", now)
	require.NoError(t, err)
	_, err = p.sessions.LogMessage("s1", intel.RoleUser, "I manage a $50M portfolio and fly private", now.Add(time.Second))
	require.NoError(t, err)

	feed := p.activity.Recent(0)
	require.NotEmpty(t, feed)

	types := make(map[intel.ActivityType]bool)
	for _, item := range feed {
		types[item.Type] = true
	}
	assert.True(t, types[intel.ActivityNewSession])
	assert.True(t, types[intel.ActivityMessageSent])
	assert.True(t, types[intel.ActivitySignalDetected])
	assert.True(t, types[intel.ActivityTierChange])
	assert.True(t, types[intel.ActivityHotLead])
}
