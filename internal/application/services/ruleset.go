// Package services provides the application services for the visitor
// intelligence pipeline.
package services

import (
	"fmt"
	"os"
	"regexp"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"gopkg.in/yaml.v3"
)

// SignalRule is one entry of the signal lexicon. A rule fires on any of
// its phrases (case-insensitive substring) or patterns (regular
// expressions), at most once per distinct evidentiary phrase.
type SignalRule struct {
	Type           string               `yaml:"type"`
	Category       intel.SignalCategory `yaml:"category"`
	Weight         float64              `yaml:"weight"`
	Confidence     float64              `yaml:"confidence"`
	CapturesAmount bool                 `yaml:"captures_amount"`
	Phrases        []string             `yaml:"phrases"`
	Patterns       []string             `yaml:"patterns"`

	compiled []*regexp.Regexp
}

// Ruleset is the full swappable lexicon.
type Ruleset struct {
	Rules []SignalRule `yaml:"rules"`
}

// Compile precompiles every pattern. Must be called before extraction.
func (rs *Ruleset) Compile() error {
	for i := range rs.Rules {
		rule := &rs.Rules[i]
		rule.compiled = rule.compiled[:0]
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("rule %s: invalid pattern %q: %w", rule.Type, pattern, err)
			}
			rule.compiled = append(rule.compiled, re)
		}
	}
	return nil
}

// LoadRuleset reads a YAML lexicon from disk and compiles it.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset %s: %w", path, err)
	}

	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset %s: %w", path, err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("ruleset %s contains no rules", path)
	}
	if err := rs.Compile(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DefaultRuleset returns the compiled-in lexicon used when no external
// ruleset file is configured.
func DefaultRuleset() *Ruleset {
	rs := &Ruleset{Rules: []SignalRule{
		{
			Type:           "net_worth_disclosure",
			Category:       intel.SignalDirectDisclosure,
			Weight:         12,
			Confidence:     0.95,
			CapturesAmount: true,
			Patterns: []string{
				`(?i)(?:net worth|worth)\s+(?:of\s+|about\s+|around\s+|over\s+)?\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?`,
				`(?i)i(?:'m| am)\s+worth\s+\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?`,
			},
		},
		{
			Type:           "portfolio_size",
			Category:       intel.SignalFinancialBehavior,
			Weight:         10,
			Confidence:     0.9,
			CapturesAmount: true,
			Patterns: []string{
				`(?i)(?:manage|managing|run|running|oversee|overseeing)\s+(?:a\s+)?\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?\s*(?:portfolio|fund|book|aum)`,
				`(?i)\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?\s+(?:portfolio|under management|aum|in assets)`,
			},
		},
		{
			Type:           "budget_disclosure",
			Category:       intel.SignalDirectDisclosure,
			Weight:         8,
			Confidence:     0.85,
			CapturesAmount: true,
			Patterns: []string{
				`(?i)budget\s+(?:of\s+|is\s+|around\s+|about\s+)?\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?`,
				`(?i)(?:spend|spending|looking to spend)\s+(?:up to\s+|around\s+|about\s+)?\$\s*\d+(?:\.\d+)?\s*(?:k|m|b|mm|million|billion|thousand)?`,
			},
		},
		{
			Type:       "private_aviation",
			Category:   intel.SignalTravelAviation,
			Weight:     8,
			Confidence: 0.85,
			Phrases: []string{
				"fly private", "private jet", "our jet", "my jet", "charter a jet",
				"netjets", "gulfstream", "private aviation", "my pilot",
			},
		},
		{
			Type:       "yacht_ownership",
			Category:   intel.SignalLifestyle,
			Weight:     8,
			Confidence: 0.85,
			Phrases: []string{
				"my yacht", "our yacht", "yacht charter", "superyacht", "my boat captain",
			},
		},
		{
			Type:       "luxury_lifestyle",
			Category:   intel.SignalLifestyle,
			Weight:     5,
			Confidence: 0.7,
			Phrases: []string{
				"michelin star", "private chef", "personal trainer", "country club",
				"polo club", "wine cellar", "art collection", "auction house",
				"bespoke", "haute couture",
			},
		},
		{
			Type:       "executive_role",
			Category:   intel.SignalProfessionalStatus,
			Weight:     6,
			Confidence: 0.8,
			Phrases: []string{
				"i'm the ceo", "i am the ceo", "i'm the founder", "i am the founder",
				"managing director", "managing partner", "general partner",
				"my company", "we ipo", "sold my company", "exited my company",
				"board member", "on the board of",
			},
		},
		{
			Type:       "investment_activity",
			Category:   intel.SignalFinancialBehavior,
			Weight:     6,
			Confidence: 0.75,
			Phrases: []string{
				"family office", "hedge fund", "private equity", "venture capital",
				"angel investor", "my broker", "wealth manager", "asset allocation",
				"diversify my holdings",
			},
		},
		{
			Type:       "property_portfolio",
			Category:   intel.SignalRealEstate,
			Weight:     7,
			Confidence: 0.8,
			Phrases: []string{
				"my properties", "investment property", "second home", "third home",
				"vacation home", "penthouse", "buy a villa", "buying a villa",
				"beachfront estate", "looking to buy property", "real estate portfolio",
			},
		},
		{
			Type:       "first_class_travel",
			Category:   intel.SignalTravelAviation,
			Weight:     4,
			Confidence: 0.65,
			Phrases: []string{
				"first class", "business class", "presidential suite", "five star",
				"5-star", "luxury resort",
			},
		},
		{
			Type:       "refined_language",
			Category:   intel.SignalLanguagePattern,
			Weight:     3,
			Confidence: 0.55,
			Phrases: []string{
				"my attorney", "my accountant", "my estate", "our family trust",
				"concierge service", "discretion is important",
			},
		},
		{
			Type:       "elite_network",
			Category:   intel.SignalNetworkIndicator,
			Weight:     5,
			Confidence: 0.7,
			Phrases: []string{
				"my business partner", "fellow investors", "davos", "yale club",
				"harvard club", "alumni network", "charity gala", "board of trustees",
			},
		},
		{
			Type:       "wealth_geography",
			Category:   intel.SignalGeographic,
			Weight:     4,
			Confidence: 0.6,
			Phrases: []string{
				"monaco", "st. moritz", "aspen", "the hamptons", "palm beach",
				"mayfair", "knightsbridge", "lake como", "beverly hills", "dubai marina",
			},
		},
	}}

	// The built-in lexicon is static; a compile failure here is a
	// programming error.
	if err := rs.Compile(); err != nil {
		panic(err)
	}
	return rs
}
