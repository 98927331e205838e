package papergen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPatternPrefersLongerNames(t *testing.T) {
	pc := NewPromptCrafter()

	name, _, ok := pc.matchPattern("Format: Multiple-Statement-4 (Correct)")
	require.True(t, ok)
	assert.Equal(t, PatternMS4Correct, name)

	name, _, ok = pc.matchPattern("Format: Complex 3-Stmt Assertion-Reason")
	require.True(t, ok)
	assert.Equal(t, PatternAssertionReason3, name)
}

func TestMatchPatternDefaultsWhenBlueprintNamesNone(t *testing.T) {
	pc := NewPromptCrafter()

	// No pattern markers at all: a pattern is drawn so the question still
	// gets a concrete structure.
	name, _, ok := pc.matchPattern("Subject: Economy\nTopic: Inflation targeting")
	require.True(t, ok)
	_, known := patternSpecs[name]
	assert.True(t, known)
}

func TestMatchPatternUnknownLabelWithMarkers(t *testing.T) {
	pc := NewPromptCrafter()

	// The blueprint clearly tries to name a pattern but the label is not
	// in the catalog; no random fallback in that case.
	_, _, ok := pc.matchPattern("Format: Essay Type")
	assert.False(t, ok)
}

func TestCraftSystemPromptLayersConstraints(t *testing.T) {
	pc := NewPromptCrafter()

	prompt := pc.CraftSystemPrompt("Format: Multiple-Statement-4 (Correct)\nCognitive Skill: Recall/Recognition\nDifficulty: Difficult")

	assert.Contains(t, prompt, "QUESTION PATTERN [HIGHEST PRIORITY]")
	assert.Contains(t, prompt, "COGNITIVE OBJECTIVE")
	assert.Contains(t, prompt, "DIFFICULTY TARGET")
	assert.Contains(t, prompt, "submit_question")

	// Pattern section must precede the cognitive section.
	patternIdx := strings.Index(prompt, "QUESTION PATTERN")
	cognitiveIdx := strings.Index(prompt, "COGNITIVE OBJECTIVE")
	assert.Less(t, patternIdx, cognitiveIdx)
}

func TestCraftSystemPromptFallsBackToModerate(t *testing.T) {
	pc := NewPromptCrafter()

	prompt := pc.CraftSystemPrompt("Format: Standard Single-Correct")
	assert.Contains(t, prompt, "Moderate - standard UPSC Prelims level")
}

func TestPatternSpecsCoverEveryCatalogPattern(t *testing.T) {
	for _, name := range PatternTypes {
		spec, ok := patternSpecs[name]
		require.True(t, ok, "missing spec for pattern %q", name)
		assert.NotEmpty(t, spec.Description, "pattern %q", name)
		assert.NotEmpty(t, spec.Example, "pattern %q", name)
	}
}
