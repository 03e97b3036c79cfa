package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AtRiskMedia/wealthstack-go/internal/domain/intel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadRulesetFromYAML(t *testing.T) {
	path := writeRuleset(t, `
rules:
  - type: vineyard_ownership
    category: lifestyle
    weight: 9
    confidence: 0.8
    phrases:
      - "my vineyard"
      - "our winery"
  - type: art_budget
    category: direct_disclosure
    weight: 11
    confidence: 0.9
    captures_amount: true
    patterns:
      - '(?i)art budget of \$\s*\d+'
`)

	rs, err := LoadRuleset(path)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 2)

	assert.Equal(t, "vineyard_ownership", rs.Rules[0].Type)
	assert.Equal(t, intel.SignalLifestyle, rs.Rules[0].Category)
	assert.Equal(t, 9.0, rs.Rules[0].Weight)
	assert.True(t, rs.Rules[1].CapturesAmount)

	extractor := NewExtractionService(rs, nil)
	signals := extractor.ExtractSignals([]intel.Message{
		userMessage("We just expanded my vineyard in Tuscany"),
	})
	require.Len(t, signals, 1)
	assert.Equal(t, "vineyard_ownership", signals[0].Type)
}

func TestLoadRulesetRejectsEmptyAndInvalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuleset(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("no rules", func(t *testing.T) {
		_, err := LoadRuleset(writeRuleset(t, "rules: []\n"))
		assert.ErrorContains(t, err, "contains no rules")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadRuleset(writeRuleset(t, "rules: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := LoadRuleset(writeRuleset(t, `
rules:
  - type: broken
    category: lifestyle
    weight: 1
    confidence: 0.5
    patterns:
      - "(unclosed"
`))
		assert.ErrorContains(t, err, "invalid pattern")
	})
}

func TestDefaultRulesetCompiles(t *testing.T) {
	rs := DefaultRuleset()
	require.NotEmpty(t, rs.Rules)

	seen := map[string]bool{}
	for _, rule := range rs.Rules {
		assert.False(t, seen[rule.Type], "duplicate rule type %s", rule.Type)
		seen[rule.Type] = true
		assert.Greater(t, rule.Weight, 0.0)
		assert.Greater(t, rule.Confidence, 0.0)
		assert.LessOrEqual(t, rule.Confidence, 1.0)
		assert.True(t, len(rule.Phrases) > 0 || len(rule.Patterns) > 0, "rule %s has no triggers", rule.Type)
	}
}
