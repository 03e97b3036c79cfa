package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/events"
	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/manager"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
)

// SessionService owns the conversation session lifecycle: start, message
// ingestion with incremental re-analysis, interaction logging, and
// finalization. Analysis faults are contained; ingestion never fails
// because scoring did.
//
// Every public operation runs under the registry's entity-state lock
// (manager.Mutate/View), so sessions and accounts are never mutated
// while a dashboard or export scan is reading them. Returned sessions
// are clones, safe to serialize after the lock is released.
type SessionService struct {
	cache       *manager.Manager
	extraction  *ExtractionService
	scoring     *ScoringService
	aggregation *AggregationService
	activity    *ActivityService
	bus         messaging.Bus
	tracker     *performance.Tracker
	logger      *logging.ChanneledLogger
}

// NewSessionService creates the session lifecycle service.
func NewSessionService(
	cache *manager.Manager,
	extraction *ExtractionService,
	scoring *ScoringService,
	aggregation *AggregationService,
	activity *ActivityService,
	bus messaging.Bus,
	tracker *performance.Tracker,
	logger *logging.ChanneledLogger,
) *SessionService {
	return &SessionService{
		cache:       cache,
		extraction:  extraction,
		scoring:     scoring,
		aggregation: aggregation,
		activity:    activity,
		bus:         bus,
		tracker:     tracker,
		logger:      logger,
	}
}

// StartSession registers a new conversation session. A blank session ID
// gets a generated ULID; restarting an existing live session is an error.
func (s *SessionService) StartSession(sessionID, visitorID string, meta intel.SessionMeta, now time.Time) (*intel.ConversationSession, error) {
	var session *intel.ConversationSession
	var err error
	s.cache.Mutate(func() {
		session, err = s.startSession(sessionID, visitorID, meta, now)
	})
	return session, err
}

func (s *SessionService) startSession(sessionID, visitorID string, meta intel.SessionMeta, now time.Time) (*intel.ConversationSession, error) {
	if visitorID == "" {
		return nil, fmt.Errorf("visitor ID is required")
	}
	if sessionID == "" {
		sessionID = security.GenerateULID()
	}
	if existing, found := s.cache.Sessions.GetSession(sessionID); found && !existing.IsFinalized() {
		return nil, fmt.Errorf("session already active: %s", sessionID)
	}

	session := &intel.ConversationSession{
		SessionID: sessionID,
		VisitorID: visitorID,
		StartedAt: now,
		Meta:      meta,
	}
	s.cache.Sessions.SetSession(session)
	s.aggregation.EnsureAccount(visitorID, sessionID, now)

	s.bus.Emit(events.NewSession{
		SessionID: sessionID,
		VisitorID: visitorID,
		Meta:      meta,
		Timestamp: now,
	})

	if s.logger != nil {
		s.logger.Session().Info("Session started", "sessionId", sessionID, "visitorId", visitorID, "device", meta.DeviceClass)
	}
	return session.Clone(), nil
}

// LogMessage appends one conversation turn. Visitor-authored turns
// trigger a full re-analysis of the transcript so far, once the session
// has at least one prior turn to give the message context.
func (s *SessionService) LogMessage(sessionID string, role intel.MessageRole, text string, now time.Time) (*intel.ConversationSession, error) {
	var session *intel.ConversationSession
	var err error
	s.cache.Mutate(func() {
		session, err = s.logMessage(sessionID, role, text, now)
	})
	return session, err
}

func (s *SessionService) logMessage(sessionID string, role intel.MessageRole, text string, now time.Time) (*intel.ConversationSession, error) {
	session, found := s.cache.Sessions.GetSession(sessionID)
	if !found {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	if session.IsFinalized() {
		return nil, fmt.Errorf("session already ended: %s", sessionID)
	}
	if role != intel.RoleUser && role != intel.RoleAssistant {
		return nil, fmt.Errorf("unknown message role: %s", role)
	}

	session.Messages = append(session.Messages, intel.Message{
		Role:      role,
		Text:      text,
		Timestamp: now,
	})

	if s.activity != nil {
		s.activity.RecordMessageActivity(session.VisitorID, sessionID, role, now)
	}
	if role == intel.RoleUser {
		s.aggregation.RecordMessage(session.VisitorID, sessionID, now)
		if len(session.Messages) >= 2 {
			s.analyze(session, now)
		}
	}

	s.cache.Sessions.SetSession(session)
	return session.Clone(), nil
}

// RecordInteraction logs one click/engagement event for a live session.
func (s *SessionService) RecordInteraction(event intel.InteractionEvent) (*intel.InteractionEvent, error) {
	if event.SessionID == "" || event.VisitorID == "" {
		return nil, fmt.Errorf("interaction requires session and visitor IDs")
	}
	if event.ID == "" {
		event.ID = security.GenerateULID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	s.cache.Mutate(func() {
		s.aggregation.RecordInteraction(event)
	})
	if s.activity != nil {
		s.activity.RecordInteractionActivity(event)
	}

	if s.logger != nil {
		s.logger.Session().Debug("Interaction recorded", "type", string(event.Type), "sessionId", event.SessionID, "placeId", event.PlaceID)
	}
	return &event, nil
}

// EndSession finalizes the session: one last analysis over the full
// transcript, then the session_end journey entry and event.
func (s *SessionService) EndSession(sessionID string, now time.Time) (*intel.ConversationSession, error) {
	var session *intel.ConversationSession
	var err error
	s.cache.Mutate(func() {
		session, err = s.endSession(sessionID, now)
	})
	return session, err
}

func (s *SessionService) endSession(sessionID string, now time.Time) (*intel.ConversationSession, error) {
	session, found := s.cache.Sessions.GetSession(sessionID)
	if !found {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	if session.IsFinalized() {
		return nil, fmt.Errorf("session already ended: %s", sessionID)
	}

	ended := now
	session.EndedAt = &ended

	if session.UserMessageCount() > 0 {
		s.analyze(session, now)
	}
	s.aggregation.FinalizeSession(session.VisitorID, sessionID, now)
	s.cache.Sessions.SetSession(session)

	s.bus.Emit(events.SessionEnd{
		SessionID:    sessionID,
		VisitorID:    session.VisitorID,
		MessageCount: len(session.Messages),
		Profile:      session.Analysis,
		Timestamp:    now,
	})

	if s.logger != nil {
		s.logger.Session().Info("Session ended", "sessionId", sessionID, "visitorId", session.VisitorID, "messages", len(session.Messages))
	}
	return session.Clone(), nil
}

// GetSession returns a copy of a session by ID.
func (s *SessionService) GetSession(sessionID string) (*intel.ConversationSession, error) {
	var session *intel.ConversationSession
	s.cache.View(func() {
		if stored, found := s.cache.Sessions.GetSession(sessionID); found {
			session = stored.Clone()
		}
	})
	if session == nil {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return session, nil
}

// analyze runs extraction and scoring over the transcript so far and
// merges the result. A panic anywhere in the pipeline is recovered; the
// session keeps its previous analysis. Callers hold the registry write
// lock.
func (s *SessionService) analyze(session *intel.ConversationSession, now time.Time) {
	marker := s.tracker.StartOperation("session_analysis")
	defer func() {
		if r := recover(); r != nil {
			marker.SetError(fmt.Errorf("panic during analysis: %v", r))
			marker.Complete()
			if s.logger != nil {
				s.logger.Signal().Error("Panic recovered during session analysis", "sessionId", session.SessionID, "error", r)
			}
		}
	}()

	signals := s.extraction.ExtractSignals(session.Messages)
	behavior := s.behaviorFor(session, now)
	profile := s.scoring.Score(session.VisitorID, session.SessionID, signals, behavior, now)

	s.emitNewSignals(session, signals, now)
	session.Analysis = profile
	s.aggregation.Merge(session, profile, now)

	marker.SetSuccess(true)
	marker.Complete()
}

// emitNewSignals publishes signal_detected for signals not present in
// the previous analysis, subject to the minimum weight gate, and logs
// each one in the visitor's journey.
func (s *SessionService) emitNewSignals(session *intel.ConversationSession, signals []intel.WealthSignal, now time.Time) {
	known := make(map[string]bool)
	if session.Analysis != nil {
		for _, sig := range session.Analysis.Signals {
			known[sig.Type+"|"+sig.Evidence] = true
		}
	}
	for _, sig := range signals {
		if sig.Weight < config.MinSignalWeight {
			continue
		}
		if known[sig.Type+"|"+sig.Evidence] {
			continue
		}
		s.aggregation.RecordSignalDetection(session.VisitorID, session.SessionID, sig, now)
		s.bus.Emit(events.SignalDetected{
			SessionID: session.SessionID,
			VisitorID: session.VisitorID,
			Signal:    sig,
			Timestamp: now,
		})
	}
}

// behaviorFor derives the behavioral counters fed to scoring.
func (s *SessionService) behaviorFor(session *intel.ConversationSession, now time.Time) intel.BehaviorMetrics {
	interactions := 0
	for _, event := range s.cache.Interactions.All() {
		if event.SessionID == session.SessionID {
			interactions++
		}
	}

	messages := session.UserMessageCount()
	engagement := intel.EngagementLow
	switch {
	case messages >= 8 || interactions >= 10:
		engagement = intel.EngagementHigh
	case messages >= 3 || interactions >= 4:
		engagement = intel.EngagementMedium
	}

	return intel.BehaviorMetrics{
		MessageCount:     messages,
		InteractionCount: interactions,
		Engagement:       engagement,
		SessionSeconds:   session.Duration(now).Seconds(),
	}
}
