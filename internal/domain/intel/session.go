package intel

import "time"

// MessageRole identifies who authored a conversation turn.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// SessionMeta carries request-surface metadata captured at session start.
type SessionMeta struct {
	DeviceClass string `json:"deviceClass"`
	Referrer    string `json:"referrer"`
}

// ConversationSession is one conversation with the concierge assistant.
// It is owned exclusively by the session service until finalized, then
// read-only.
type ConversationSession struct {
	SessionID string         `json:"sessionId"`
	VisitorID string         `json:"visitorId"`
	StartedAt time.Time      `json:"startedAt"`
	EndedAt   *time.Time     `json:"endedAt,omitempty"`
	Messages  []Message      `json:"messages"`
	Meta      SessionMeta    `json:"meta"`
	Analysis  *WealthProfile `json:"analysis,omitempty"`
}

// Clone returns a copy safe to read outside the registry locks. The
// analysis profile is replaced wholesale on every scoring pass, never
// edited in place, so the pointer is shared.
func (s *ConversationSession) Clone() *ConversationSession {
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	if s.EndedAt != nil {
		ended := *s.EndedAt
		out.EndedAt = &ended
	}
	return &out
}

// IsFinalized reports whether the session has ended.
func (s *ConversationSession) IsFinalized() bool {
	return s.EndedAt != nil
}

// UserMessageCount counts visitor-authored turns.
func (s *ConversationSession) UserMessageCount() int {
	n := 0
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// Duration returns elapsed session time, against now for live sessions.
func (s *ConversationSession) Duration(now time.Time) time.Duration {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
