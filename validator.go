package papergen

import (
	"fmt"
	"regexp"
	"strings"
)

// StructuralCheck is one independent predicate over a drafted question,
// evaluated against the blueprint that requested it. Applies decides from
// the blueprint text whether the check is active; an inactive check passes
// unconditionally. Run returns a human-readable reason on failure.
type StructuralCheck struct {
	Name    string
	Applies func(blueprint string) bool
	Run     func(blueprint string, draft *DraftQuestion) (bool, string)
}

// StructuralChecks are evaluated in order; the generator short-circuits on
// the first failure.
var StructuralChecks = []StructuralCheck{
	{
		Name:    "sequence-randomization",
		Applies: isSequencingBlueprint,
		Run:     checkSequenceRandomization,
	},
	{
		Name:    "assertion-reason-format",
		Applies: isAssertionReasonBlueprint,
		Run:     checkAssertionReasonFormat,
	},
	{
		Name:    "statement-completeness",
		Applies: func(bp string) bool { return true }, // self-gating on the pattern label
		Run:     checkStatementCompleteness,
	},
	{
		Name:    "closing-question",
		Applies: func(bp string) bool { return true }, // self-gating on the pattern label
		Run:     checkClosingQuestion,
	},
}

// ValidateDraft runs every active check in order and returns the name and
// reason of the first failure.
func ValidateDraft(blueprint string, draft *DraftQuestion) (bool, string, string) {
	for _, check := range StructuralChecks {
		if !check.Applies(blueprint) {
			continue
		}
		if ok, reason := check.Run(blueprint, draft); !ok {
			return false, check.Name, reason
		}
	}
	return true, "", ""
}

var sequencingKeywords = []string{
	"chronological", "geographical", "sequencing",
	"correct chronological order", "correct sequence",
	"north to south", "east to west", "earliest first",
}

func isSequencingBlueprint(blueprint string) bool {
	return containsAny(strings.ToLower(blueprint), sequencingKeywords)
}

var (
	sequencePattern = regexp.MustCompile(`\d+\s*[-–—]\s*\d+\s*[-–—]\s*\d+\s*[-–—]\s*\d+`)
	spacePattern    = regexp.MustCompile(`\s+`)
	dashPattern     = regexp.MustCompile(`[–—]`)
)

// checkSequenceRandomization rejects ordering questions whose correct
// option is the giveaway ascending or descending sequence.
func checkSequenceRandomization(blueprint string, draft *DraftQuestion) (bool, string) {
	if draft.Answer == "" {
		return false, "draft has no answer key"
	}
	idx := int(draft.Answer[0] - 'A')
	if idx < 0 || idx >= len(draft.Options) {
		return false, fmt.Sprintf("answer key %q does not address any option", draft.Answer)
	}

	match := sequencePattern.FindString(draft.Options[idx])
	if match == "" {
		return true, ""
	}

	sequence := spacePattern.ReplaceAllString(match, "")
	sequence = dashPattern.ReplaceAllString(sequence, "-")

	if sequence == "1-2-3-4" || sequence == "4-3-2-1" {
		return false, fmt.Sprintf("forbidden sequence %q as the correct answer makes it too predictable", sequence)
	}
	return true, ""
}

var assertionReasonKeywords = []string{"assertion", "assertion-reason", "statement-i", "statement-ii"}

func isAssertionReasonBlueprint(blueprint string) bool {
	return containsAny(strings.ToLower(blueprint), assertionReasonKeywords)
}

var assertionReasonVocabulary = []string{"both", "correct", "incorrect", "explains", "explanation"}

// checkAssertionReasonFormat requires the first option to pose a logical
// relationship between the statements rather than a flat fact.
func checkAssertionReasonFormat(blueprint string, draft *DraftQuestion) (bool, string) {
	if len(draft.Options) == 0 {
		return false, "draft has no options"
	}
	if !containsAny(strings.ToLower(draft.Options[0]), assertionReasonVocabulary) {
		return false, "options lack assertion-reason structure; they should discuss whether statements are correct and if one explains the other"
	}
	return true, ""
}

var (
	numberedStatement = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+`)
	romanStatement    = regexp.MustCompile(`(?mi)^\s*(I{1,3}|IV|V)\.\s+`)
	labeledStatement  = regexp.MustCompile(`(?i)Statement[-\s]*(I{1,3}|IV|\d+)`)
	statementPattern  = regexp.MustCompile(`(?i)multiple[-\s]*statement[-\s]*(\d+)`)
)

var romanValues = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5}

// countStatements returns the highest statement index found in the stem,
// taking the maximum across three counting heuristics: leading arabic
// numerals, leading roman numerals, and explicit Statement-N labels.
func countStatements(stem string) int {
	highest := 0

	for _, m := range numberedStatement.FindAllStringSubmatch(stem, -1) {
		if n := atoiSafe(m[1]); n > highest {
			highest = n
		}
	}
	for _, m := range romanStatement.FindAllStringSubmatch(stem, -1) {
		if n := romanValues[strings.ToLower(m[1])]; n > highest {
			highest = n
		}
	}
	for _, m := range labeledStatement.FindAllStringSubmatch(stem, -1) {
		token := strings.ToLower(m[1])
		n := romanValues[token]
		if n == 0 {
			n = atoiSafe(token)
		}
		if n > highest {
			highest = n
		}
	}
	return highest
}

// checkStatementCompleteness verifies that a blueprint demanding N
// statements got all N. Models routinely drop the last statement on the
// 4-statement shapes.
func checkStatementCompleteness(blueprint string, draft *DraftQuestion) (bool, string) {
	bp := strings.ToLower(blueprint)

	if m := statementPattern.FindStringSubmatch(bp); m != nil {
		expected := atoiSafe(m[1])
		actual := countStatements(draft.Stem)
		if actual < expected {
			return false, fmt.Sprintf("expected %d statements but found only %d; the last statement may be missing", expected, actual)
		}
	}

	if strings.Contains(bp, "3-stmt assertion") || strings.Contains(bp, "complex 3-stmt") {
		if actual := countStatements(draft.Stem); actual < 3 {
			return false, fmt.Sprintf("expected 3 statements for complex assertion-reason but found only %d", actual)
		}
	}

	return true, ""
}

var (
	multiStatementClosings = []string{
		"which of the statements given above is/are correct",
		"which of the statements given above is/are not correct",
		"which of the statements given above are incorrect",
		"which of the above statements is/are correct",
		"which of the above statements is/are not correct",
	}
	howManyClosings = []string{
		"how many of the statements given above are correct",
		"how many of the above statements are correct",
		"how many of the statements given above is/are correct",
	}
	assertionReasonClosings = []string{
		"which one of the following is correct in respect of the above statements",
		"which of the following is correct in respect of the above",
	}
)

// checkClosingQuestion requires the stem of multi-statement, how-many and
// assertion-reason shapes to end in one of the accepted closing phrasings.
func checkClosingQuestion(blueprint string, draft *DraftQuestion) (bool, string) {
	bp := strings.ToLower(blueprint)
	stem := strings.ToLower(draft.Stem)

	if strings.Contains(bp, "multiple-statement") && !containsAny(stem, multiStatementClosings) {
		return false, `multi-statement question missing closing question (e.g. "Which of the statements given above is/are correct?")`
	}
	if strings.Contains(bp, "how many") && !containsAny(stem, howManyClosings) {
		return false, `how-many question missing closing question (e.g. "How many of the statements given above are correct?")`
	}
	if (strings.Contains(bp, "assertion") || strings.Contains(bp, "3-stmt") || strings.Contains(bp, "2-stmt")) &&
		!containsAny(stem, assertionReasonClosings) {
		return false, `assertion-reason question missing closing question (e.g. "Which one of the following is correct in respect of the above statements?")`
	}
	return true, ""
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
