package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// AggregationService is the sole mutator of visitor accounts. It merges
// session-level profiles into the durable per-visitor record, enforcing
// the monotonic rules: peaks only rise, counters only grow, last-seen
// only moves forward.
//
// Its methods are invoked from the session service entry points, which
// hold the registry's entity-state write lock; the service itself takes
// no locks.
type AggregationService struct {
	cache  *manager.Manager
	bus    messaging.Bus
	alerts *AlertService
	logger *logging.ChanneledLogger
}

// NewAggregationService creates the profile aggregator.
func NewAggregationService(cache *manager.Manager, bus messaging.Bus, alerts *AlertService, logger *logging.ChanneledLogger) *AggregationService {
	return &AggregationService{
		cache:  cache,
		bus:    bus,
		alerts: alerts,
		logger: logger,
	}
}

// EnsureAccount returns the visitor's account, creating it on first
// contact with a session_start journey entry.
func (s *AggregationService) EnsureAccount(visitorID, sessionID string, now time.Time) *intel.VisitorAccount {
	account, found := s.cache.Profiles.GetAccount(visitorID)
	if !found {
		account = &intel.VisitorAccount{
			VisitorID:          visitorID,
			FirstSeen:          now,
			LastSeen:           now,
			HighestTierReached: intel.TierUnknown,
			LastQualification:  intel.StatusCold,
		}
		if s.logger != nil {
			s.logger.Session().Info("Visitor account created", "visitorId", visitorID)
		}
	}
	account.Touch(now)
	account.Journey = append(account.Journey, intel.JourneyNode{
		Type:      intel.JourneySessionStart,
		Timestamp: now,
		SessionID: sessionID,
	})
	s.cache.Profiles.SetAccount(account)
	return account
}

// RecordMessage increments the visitor's cumulative message counter and
// appends a journey entry.
func (s *AggregationService) RecordMessage(visitorID, sessionID string, now time.Time) {
	account, found := s.cache.Profiles.GetAccount(visitorID)
	if !found {
		account = s.EnsureAccount(visitorID, sessionID, now)
	}
	account.TotalMessages++
	account.Touch(now)
	account.Journey = append(account.Journey, intel.JourneyNode{
		Type:      intel.JourneyMessage,
		Timestamp: now,
		SessionID: sessionID,
	})
	s.cache.Profiles.SetAccount(account)
}

// RecordSignalDetection appends a signal_detected journey entry for one
// newly surfaced wealth signal.
func (s *AggregationService) RecordSignalDetection(visitorID, sessionID string, sig intel.WealthSignal, now time.Time) {
	account, found := s.cache.Profiles.GetAccount(visitorID)
	if !found {
		account = s.EnsureAccount(visitorID, sessionID, now)
	}
	account.Journey = append(account.Journey, intel.JourneyNode{
		Type:      intel.JourneySignalDetected,
		Timestamp: now,
		SessionID: sessionID,
		Detail:    sig.Type,
	})
	account.Touch(now)
	s.cache.Profiles.SetAccount(account)
}

// RecordInteraction logs one interaction against the visitor's account
// and the global interaction log.
func (s *AggregationService) RecordInteraction(event intel.InteractionEvent) {
	s.cache.Interactions.Append(event)

	account, found := s.cache.Profiles.GetAccount(event.VisitorID)
	if !found {
		account = s.EnsureAccount(event.VisitorID, event.SessionID, event.Timestamp)
	}
	account.Interactions = append(account.Interactions, event)
	account.TotalInteractions++
	account.Touch(event.Timestamp)
	account.Journey = append(account.Journey, intel.JourneyNode{
		Type:      intel.JourneyInteraction,
		Timestamp: event.Timestamp,
		SessionID: event.SessionID,
		Detail:    string(event.Type),
	})
	s.cache.Profiles.SetAccount(account)
	s.cache.InvalidateDashboard()
}

// Merge folds a freshly scored session profile into the visitor
// account. It emits tier_change on any tier movement and creates a
// hot-lead alert exactly once per transition into a qualifying status.
func (s *AggregationService) Merge(session *intel.ConversationSession, profile *intel.WealthProfile, now time.Time) {
	account, found := s.cache.Profiles.GetAccount(profile.VisitorID)
	if !found {
		account = s.EnsureAccount(profile.VisitorID, profile.SessionID, now)
	}

	previousTier := intel.TierUnknown
	if account.AggregatedProfile != nil {
		previousTier = account.AggregatedProfile.Tier
	}

	// Most-recent-wins for qualitative fields; the two peaks below are
	// monotonic and survive lower-scoring later sessions.
	account.AggregatedProfile = profile
	account.Touch(now)

	if profile.Tier.Rank() > account.HighestTierReached.Rank() {
		account.Journey = append(account.Journey, intel.JourneyNode{
			Type:      intel.JourneyTierUpgrade,
			Timestamp: now,
			SessionID: profile.SessionID,
			Detail:    fmt.Sprintf("%s -> %s", account.HighestTierReached, profile.Tier),
			Tier:      profile.Tier,
		})
		account.HighestTierReached = profile.Tier
	}
	if profile.LeadScore > account.PeakLeadScore {
		account.PeakLeadScore = profile.LeadScore
	}

	s.upsertSessionSummary(account, session, profile)

	newlyQualifying := profile.Status.IsQualifying() && !account.LastQualification.IsQualifying()
	account.LastQualification = profile.Status

	s.cache.Profiles.SetAccount(account)
	s.cache.InvalidateDashboard()

	if profile.Tier != previousTier {
		s.bus.Emit(events.TierChange{
			SessionID: profile.SessionID,
			VisitorID: profile.VisitorID,
			From:      previousTier,
			To:        profile.Tier,
			Timestamp: now,
		})
	}

	if newlyQualifying {
		reason := fmt.Sprintf("qualification reached %s (tier %s, lead score %.0f)",
			profile.Status, profile.Tier, profile.LeadScore)
		alert := s.alerts.CreateAlert(profile, reason, now)
		s.bus.Emit(events.HotLeadAlert{Alert: *alert, Timestamp: now})
	}
}

// FinalizeSession appends the session_end journey entry after the last
// merge for a session.
func (s *AggregationService) FinalizeSession(visitorID, sessionID string, now time.Time) {
	account, found := s.cache.Profiles.GetAccount(visitorID)
	if !found {
		return
	}
	account.Journey = append(account.Journey, intel.JourneyNode{
		Type:      intel.JourneySessionEnd,
		Timestamp: now,
		SessionID: sessionID,
	})
	account.Touch(now)
	s.cache.Profiles.SetAccount(account)
}

// upsertSessionSummary refreshes the account's digest for this session.
func (s *AggregationService) upsertSessionSummary(account *intel.VisitorAccount, session *intel.ConversationSession, profile *intel.WealthProfile) {
	summary := intel.SessionSummary{
		SessionID:    session.SessionID,
		StartedAt:    session.StartedAt,
		EndedAt:      session.EndedAt,
		MessageCount: len(session.Messages),
		Tier:         profile.Tier,
		LeadScore:    profile.LeadScore,
		Status:       profile.Status,
	}
	for i := range account.Sessions {
		if account.Sessions[i].SessionID == session.SessionID {
			account.Sessions[i] = summary
			return
		}
	}
	account.Sessions = append(account.Sessions, summary)
}
