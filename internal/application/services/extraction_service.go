package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/observability/logging"
)

// dollarAmount matches an explicit dollar figure with an optional
// magnitude suffix, e.g. "$50M", "$2.5 million", "$750k".
var dollarAmount = regexp.MustCompile(`(?i)\$\s*(\d+(?:\.\d+)?)\s*(k|mm|m|b|million|billion|thousand)?`)

// ExtractionService scans session transcripts for wealth signals using
// the configured lexicon. Extraction is deterministic: re-running over
// an identical transcript yields the identical signal set.
type ExtractionService struct {
	ruleset *Ruleset
	logger  *logging.ChanneledLogger
}

// NewExtractionService creates an extraction service bound to a compiled ruleset.
func NewExtractionService(ruleset *Ruleset, logger *logging.ChanneledLogger) *ExtractionService {
	return &ExtractionService{
		ruleset: ruleset,
		logger:  logger,
	}
}

// ExtractSignals produces the signal set for an ordered message
// history. Only visitor-authored turns are scanned. A rule fires at
// most once per distinct evidentiary phrase but may fire for several
// distinct phrases across the session.
func (s *ExtractionService) ExtractSignals(messages []intel.Message) []intel.WealthSignal {
	signals := make([]intel.WealthSignal, 0)
	seen := make(map[string]bool)

	for i := range s.ruleset.Rules {
		rule := &s.ruleset.Rules[i]

		for _, msg := range messages {
			if msg.Role != intel.RoleUser {
				continue
			}
			lowered := strings.ToLower(msg.Text)

			for _, phrase := range rule.Phrases {
				if !strings.Contains(lowered, strings.ToLower(phrase)) {
					continue
				}
				key := rule.Type + "|" + strings.ToLower(phrase)
				if seen[key] {
					continue
				}
				seen[key] = true
				signals = append(signals, s.buildSignal(rule, phrase))
			}

			for _, re := range rule.compiled {
				for _, match := range re.FindAllString(msg.Text, -1) {
					key := rule.Type + "|" + strings.ToLower(match)
					if seen[key] {
						continue
					}
					seen[key] = true
					signals = append(signals, s.buildSignal(rule, match))
				}
			}
		}
	}

	if s.logger != nil {
		s.logger.Signal().Debug("Signal extraction complete", "messages", len(messages), "signals", len(signals))
	}
	return signals
}

func (s *ExtractionService) buildSignal(rule *SignalRule, evidence string) intel.WealthSignal {
	signal := intel.WealthSignal{
		Category:   rule.Category,
		Type:       rule.Type,
		Evidence:   evidence,
		Weight:     rule.Weight,
		Confidence: rule.Confidence,
	}
	if rule.CapturesAmount {
		signal.AmountUSD = ParseDollarAmount(evidence)
	}
	return signal
}

// ParseDollarAmount extracts the largest explicit dollar figure in the
// text, normalized to USD. Returns 0 when no figure is present.
func ParseDollarAmount(text string) float64 {
	var largest float64
	for _, match := range dollarAmount.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "k", "thousand":
			value *= 1_000
		case "m", "mm", "million":
			value *= 1_000_000
		case "b", "billion":
			value *= 1_000_000_000
		}
		if value > largest {
			largest = value
		}
	}
	return largest
}
