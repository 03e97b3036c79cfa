package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

const (
	recentHotLeadLimit = 10
	topSignalTypeLimit = 10
	topPlaceLimit      = 10
)

// DashboardService computes the cross-visitor dashboard snapshot. The
// computation is a pure read-only projection over the registries; the
// result is cached with an ETag until the TTL lapses or a write
// invalidates it.
type DashboardService struct {
	cache   *manager.Manager
	bus     messaging.Bus
	tracker *performance.Tracker
	logger  *logging.ChanneledLogger
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(cache *manager.Manager, bus messaging.Bus, tracker *performance.Tracker, logger *logging.ChanneledLogger) *DashboardService {
	return &DashboardService{cache: cache, bus: bus, tracker: tracker, logger: logger}
}

// Snapshot returns the current dashboard, serving the cached copy when
// fresh and recomputing otherwise.
func (s *DashboardService) Snapshot(now time.Time) (*intel.DashboardSnapshot, string) {
	if snapshot, etag, fresh := s.cache.GetDashboard(config.DashboardTTL); fresh {
		return snapshot, etag
	}

	marker := s.tracker.StartOperation("dashboard_snapshot")
	var snapshot *intel.DashboardSnapshot
	s.cache.View(func() {
		snapshot = s.build(now)
	})
	marker.SetSuccess(true)
	marker.Complete()

	etag := etagFor(snapshot)
	s.cache.SetDashboard(snapshot, etag)

	if s.logger != nil {
		s.logger.Analytics().Debug("Dashboard snapshot computed",
			"visitors", snapshot.Counters.TotalVisitors,
			"activeSessions", snapshot.Counters.ActiveSessions,
			"durationMs", snapshot.Counters.ComputedDurationMs)
	}
	return snapshot, etag
}

func (s *DashboardService) build(now time.Time) *intel.DashboardSnapshot {
	start := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	sessions := s.cache.Sessions.AllSessions()
	accounts := s.cache.Profiles.AllAccounts()
	alerts := s.cache.Alerts.AllAlerts()
	interactions := s.cache.Interactions.All()

	snapshot := &intel.DashboardSnapshot{
		TierHistogram:   make(map[intel.WealthTier]int),
		GeoDistribution: make(map[string]int),
		CategoryClicks:  make(map[string]int),
		ActionClicks:    make(map[string]int),
		SourceOfWealth:  make(map[intel.SignalCategory]int),
		GeneratedAt:     now,
	}

	s.fillFromAccounts(snapshot, accounts, alerts)
	s.fillFromSessions(snapshot, sessions, midnight)
	s.fillFromAlerts(snapshot, alerts, midnight)
	s.fillFromInteractions(snapshot, interactions, midnight)
	snapshot.TierProgression7d = tierProgression(accounts, weekAgo, now)

	snapshot.Counters.ActiveSessions = s.cache.Sessions.ActiveCount()
	snapshot.Counters.TotalVisitors = len(accounts)
	snapshot.Counters.UnactionedAlerts = unactionedCount(alerts)
	snapshot.Counters.SubscriberCount = s.bus.SubscriberCount()
	snapshot.Counters.FeedDepth = s.cache.Activity.Len()
	snapshot.Counters.ComputedDurationMs = float64(time.Since(start).Microseconds()) / 1000

	return snapshot
}

func (s *DashboardService) fillFromAccounts(snapshot *intel.DashboardSnapshot, accounts []*intel.VisitorAccount, alerts []*intel.HotLeadAlert) {
	actionedVisitors := make(map[string]bool)
	for _, alert := range alerts {
		if alert.Actioned {
			actionedVisitors[alert.VisitorID] = true
		}
	}

	type tierAccum struct {
		visitors   int
		confidence float64
		leadScore  float64
		signals    int
	}
	byTier := make(map[intel.WealthTier]*tierAccum)

	engaged, interested, qualified := 0, 0, 0
	var pipeline float64

	for _, account := range accounts {
		profile := account.AggregatedProfile
		tier := intel.TierUnknown
		if profile != nil {
			tier = profile.Tier
		}
		snapshot.TierHistogram[tier]++

		if account.TotalMessages >= 3 || account.TotalInteractions >= 3 {
			engaged++
		}
		if profile != nil && (len(profile.Signals) > 0 || tier.AtLeast(intel.TierAffluent)) {
			interested++
		}
		if account.LastQualification.IsQualifying() {
			qualified++
			if profile != nil {
				pipeline += profile.EstimatedNetWorth.Midpoint()
			}
		}

		if profile != nil {
			accum := byTier[tier]
			if accum == nil {
				accum = &tierAccum{}
				byTier[tier] = accum
			}
			accum.visitors++
			accum.confidence += profile.Confidence
			accum.leadScore += profile.LeadScore
			accum.signals += len(profile.Signals)

			for _, sig := range profile.Signals {
				snapshot.SourceOfWealth[sig.Category]++
				if sig.Category == intel.SignalGeographic {
					snapshot.GeoDistribution[sig.Evidence]++
				}
			}
		}
	}

	snapshot.Counters.PipelineValueEst = pipeline
	snapshot.Counters.ConversionsToDate = len(actionedVisitors)

	snapshot.Funnel = []intel.FunnelStage{
		{Stage: "visitors", Count: len(accounts)},
		{Stage: "engaged", Count: engaged},
		{Stage: "interested", Count: interested},
		{Stage: "qualified", Count: qualified},
		{Stage: "converted", Count: len(actionedVisitors)},
	}

	for _, tier := range []intel.WealthTier{
		intel.TierBillionaire, intel.TierUHNWI, intel.TierVHNWI,
		intel.TierHNWI, intel.TierMassAffluent, intel.TierAffluent, intel.TierUnknown,
	} {
		accum := byTier[tier]
		if accum == nil || accum.visitors == 0 {
			continue
		}
		n := float64(accum.visitors)
		snapshot.Sophistication = append(snapshot.Sophistication, intel.SophisticationCell{
			Tier:          tier,
			Visitors:      accum.visitors,
			AvgConfidence: accum.confidence / n,
			AvgLeadScore:  accum.leadScore / n,
			AvgSignals:    float64(accum.signals) / n,
		})
	}
}

func (s *DashboardService) fillFromSessions(snapshot *intel.DashboardSnapshot, sessions []*intel.ConversationSession, midnight time.Time) {
	signalTypes := make(map[string]int)
	clusterCount := make(map[intel.SignalCategory]int)
	clusterWeight := make(map[intel.SignalCategory]float64)

	var scoreSum float64
	scored := 0

	for _, session := range sessions {
		for _, msg := range session.Messages {
			if !msg.Timestamp.Before(midnight) {
				snapshot.Counters.MessagesToday++
			}
		}
		analysis := session.Analysis
		if analysis == nil || analysis.CreatedAt.Before(midnight) {
			continue
		}
		scoreSum += analysis.LeadScore
		scored++
		for _, sig := range analysis.Signals {
			snapshot.Counters.SignalsToday++
			signalTypes[sig.Type]++
			clusterCount[sig.Category]++
			clusterWeight[sig.Category] += sig.Weight
		}
	}

	if scored > 0 {
		snapshot.Counters.AvgLeadScoreToday = scoreSum / float64(scored)
	}

	for sigType, count := range signalTypes {
		snapshot.TopSignalTypes = append(snapshot.TopSignalTypes, intel.SignalTypeCount{Type: sigType, Count: count})
	}
	sort.Slice(snapshot.TopSignalTypes, func(i, j int) bool {
		if snapshot.TopSignalTypes[i].Count != snapshot.TopSignalTypes[j].Count {
			return snapshot.TopSignalTypes[i].Count > snapshot.TopSignalTypes[j].Count
		}
		return snapshot.TopSignalTypes[i].Type < snapshot.TopSignalTypes[j].Type
	})
	if len(snapshot.TopSignalTypes) > topSignalTypeLimit {
		snapshot.TopSignalTypes = snapshot.TopSignalTypes[:topSignalTypeLimit]
	}

	for _, category := range intel.SignalCategories {
		count := clusterCount[category]
		if count == 0 {
			continue
		}
		snapshot.SignalClusters = append(snapshot.SignalClusters, intel.SignalCluster{
			Category:  category,
			Count:     count,
			AvgWeight: clusterWeight[category] / float64(count),
		})
	}
}

func (s *DashboardService) fillFromAlerts(snapshot *intel.DashboardSnapshot, alerts []*intel.HotLeadAlert, midnight time.Time) {
	for _, alert := range alerts {
		if !alert.Timestamp.Before(midnight) {
			if alert.Status == intel.StatusHot {
				snapshot.Counters.HotLeadsToday++
			} else {
				snapshot.Counters.QualifiedToday++
			}
		}
	}

	// alerts arrive oldest-first; walk backwards for the recent digest
	for i := len(alerts) - 1; i >= 0 && len(snapshot.RecentHotLeads) < recentHotLeadLimit; i-- {
		alert := alerts[i]
		snapshot.RecentHotLeads = append(snapshot.RecentHotLeads, intel.HotLeadDigest{
			VisitorID: alert.VisitorID,
			Tier:      alert.Tier,
			LeadScore: alert.LeadScore,
			Status:    alert.Status,
			Timestamp: alert.Timestamp,
		})
	}
}

func (s *DashboardService) fillFromInteractions(snapshot *intel.DashboardSnapshot, interactions []intel.InteractionEvent, midnight time.Time) {
	for _, event := range interactions {
		if !event.Timestamp.Before(midnight) {
			snapshot.Counters.InteractionsToday++
		}
		if event.PlaceCategory != "" {
			snapshot.CategoryClicks[event.PlaceCategory]++
		}
		snapshot.ActionClicks[string(event.Type)]++
	}

	snapshot.TopPlaces = s.cache.Interactions.PlaceStats()
	if len(snapshot.TopPlaces) > topPlaceLimit {
		snapshot.TopPlaces = snapshot.TopPlaces[:topPlaceLimit]
	}
}

// tierProgression buckets tier upgrades from visitor journeys into a
// 7-day daily series.
func tierProgression(accounts []*intel.VisitorAccount, since, now time.Time) []intel.TierProgressionPoint {
	byDay := make(map[string]map[intel.WealthTier]int)
	for _, account := range accounts {
		for _, node := range account.Journey {
			if node.Type != intel.JourneyTierUpgrade || node.Timestamp.Before(since) {
				continue
			}
			day := node.Timestamp.Format("2006-01-02")
			if byDay[day] == nil {
				byDay[day] = make(map[intel.WealthTier]int)
			}
			byDay[day][node.Tier]++
		}
	}

	series := make([]intel.TierProgressionPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		upgrades := byDay[day]
		if upgrades == nil {
			upgrades = make(map[intel.WealthTier]int)
		}
		series = append(series, intel.TierProgressionPoint{Day: day, Upgrades: upgrades})
	}
	return series
}

func unactionedCount(alerts []*intel.HotLeadAlert) int {
	count := 0
	for _, alert := range alerts {
		if !alert.Actioned {
			count++
		}
	}
	return count
}

func etagFor(snapshot *intel.DashboardSnapshot) string {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}
