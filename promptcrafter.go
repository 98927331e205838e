package papergen

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// PromptCrafter assembles the generator's system prompt from a blueprint,
// matching pattern, cognitive level and difficulty by case-insensitive
// substring against the catalog. Pattern constraints take priority over
// cognitive and difficulty guidance.
type PromptCrafter struct{}

// NewPromptCrafter creates a prompt crafter.
func NewPromptCrafter() *PromptCrafter {
	return &PromptCrafter{}
}

// matchPattern finds the pattern spec named in the blueprint, preferring
// longer names so "Multiple-Statement-4 (Correct)" wins over shorter
// overlapping labels. When the blueprint names no pattern at all, one is
// drawn at random (default mode).
func (pc *PromptCrafter) matchPattern(blueprint string) (string, patternSpec, bool) {
	lower := strings.ToLower(blueprint)

	names := make([]string, 0, len(patternSpecs))
	for name := range patternSpecs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, patternSpecs[name], true
		}
	}

	patternMarkers := []string{"format:", "pattern:", "standard", "multiple-statement", "chronological", "assertion", "pairs", "sequencing"}
	if !containsAny(lower, patternMarkers) {
		name := names[rand.Intn(len(names))]
		VerboseLog("Default mode: randomly selected pattern %q", name)
		return name, patternSpecs[name], true
	}

	return "", patternSpec{}, false
}

func matchSpec(blueprint string, specs map[string]string) (string, bool) {
	lower := strings.ToLower(blueprint)
	for name, description := range specs {
		if strings.Contains(lower, strings.ToLower(name)) {
			return description, true
		}
	}
	return "", false
}

// CraftSystemPrompt builds the system instruction for one generation call.
func (pc *PromptCrafter) CraftSystemPrompt(blueprint string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert UPSC Prelims question generator with deep knowledge of the full GS Paper I syllabus, the tone and conceptual layering of previous-year questions, and the art of framing close, plausible distractors.\n\n")
	sb.WriteString("You will receive a question blueprint specifying topic, subtopic, difficulty, cognitive focus, and question format. Use it as the sole reference and generate one UPSC-style question that aligns precisely with it.\n")

	if _, spec, ok := pc.matchPattern(blueprint); ok {
		sb.WriteString("\n### QUESTION PATTERN [HIGHEST PRIORITY]\n")
		sb.WriteString("You MUST follow the pattern and logic defined below. This is your primary constraint.\n")
		sb.WriteString(spec.Description)
		sb.WriteString("\n\nReference example:\n")
		sb.WriteString(spec.Example)
		sb.WriteString("\n")
	} else {
		VerboseLog("No specific pattern found in blueprint; using general guidelines only")
	}

	sb.WriteString("\n### COGNITIVE OBJECTIVE [secondary priority]\n")
	if desc, ok := matchSpec(blueprint, cognitiveSpecs); ok {
		sb.WriteString(desc)
		sb.WriteString("\nIf this conflicts with the pattern requirements above, prioritize the PATTERN.\n")
	} else {
		sb.WriteString("Standard UPSC comprehension/conceptual level. Focus primarily on matching the pattern requirements.\n")
	}

	difficulty := "Moderate - standard UPSC Prelims level"
	if desc, ok := matchSpec(blueprint, difficultySpecs); ok {
		difficulty = desc
	}
	sb.WriteString(fmt.Sprintf("\n### DIFFICULTY TARGET\n%s\n", difficulty))

	sb.WriteString(`
### GENERAL GUIDELINES
- One central idea per stem; avoid excessive clauses and complex jargon.
- Multi-statement questions MUST have both an opening context and the pattern's closing question, with ALL statements present and completely written out.
- There must be a single best, defensible answer; distractors must be plausible and homogeneous in form and length.
- Do not let the correct answer drift toward any habitual option letter; construct options so the requested letter is correct.
- Use the submit_question tool to return the question.
`)

	return sb.String()
}
