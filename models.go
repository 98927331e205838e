package papergen

import "time"

// AnswerKey is the letter of the correct option.
type AnswerKey string

const (
	AnswerA AnswerKey = "A"
	AnswerB AnswerKey = "B"
	AnswerC AnswerKey = "C"
	AnswerD AnswerKey = "D"
)

var answerKeys = []AnswerKey{AnswerA, AnswerB, AnswerC, AnswerD}

// DraftQuestion is one candidate question produced by a single generator
// attempt, before structural validation. Exactly 4 options.
type DraftQuestion struct {
	Stem    string    `json:"question"`
	Options []string  `json:"options"`
	Answer  AnswerKey `json:"answer"`
}

// Translation is the secondary-language rendering of a question.
type Translation struct {
	Stem    string   `json:"question"`
	Options []string `json:"options"`
}

// ReviewState tracks the human-review lifecycle of an archived question.
type ReviewState string

const (
	ReviewPending  ReviewState = "pending"
	ReviewSelected ReviewState = "selected"
	ReviewRejected ReviewState = "rejected"
)

// Question is the final pipeline unit: a validated, translated question
// with its dispatch-time sequence number and durable identity.
type Question struct {
	SequenceNumber   int         `json:"question_number"`
	StableID         string      `json:"id"`
	StemPrimary      string      `json:"question_english"`
	OptionsPrimary   []string    `json:"options_english"`
	StemSecondary    string      `json:"question_hindi"`
	OptionsSecondary []string    `json:"options_hindi"`
	Answer           AnswerKey   `json:"answer"`
	Blueprint        string      `json:"question_blueprint"`
	Subject          string      `json:"subject"`
	ReviewState      ReviewState `json:"review_state"`
	Feedback         string      `json:"feedback"`
	CreatedAt        time.Time   `json:"created_at"`
}

// TestPaper is an ordered set of questions. Ordering is by SequenceNumber
// ascending; after assembly the numbers are contiguous from the run's
// starting offset, with dropped questions renumbered away rather than
// left as holes.
type TestPaper struct {
	Questions []Question `json:"questions"`
}

// QuestionRequirement is one fully-resolved generation slot after
// distribution expansion. An empty Topic means "inherit the ambient topic"
// (or whole-syllabus mode when no ambient topic exists).
type QuestionRequirement struct {
	Topic      string `json:"topic"`
	Pattern    string `json:"pattern"`
	Cognitive  string `json:"cognitive"`
	Difficulty string `json:"difficulty"`
}

// RequirementRow is one sparse row of the caller's distribution table.
// The Randomize* flags mark fields to be resolved by weighted or even
// allocation; a field left unflagged is replicated Count times verbatim.
type RequirementRow struct {
	Topic      string `json:"topic"`
	Pattern    string `json:"pattern"`
	Cognitive  string `json:"cognitive"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`

	RandomizeTopic      bool `json:"randomize_topic"`
	RandomizePattern    bool `json:"randomize_pattern"`
	RandomizeCognitive  bool `json:"randomize_cognitive"`
	RandomizeDifficulty bool `json:"randomize_difficulty"`
}

// PlanRequest is the input to one planning call.
type PlanRequest struct {
	Requirements []QuestionRequirement `json:"requirements"`
	Context      string                `json:"context,omitempty"`
	Topic        string                `json:"topic,omitempty"`
}

// Blueprint patterns. Names are load-bearing: the structural validator and
// the generator's criticality rules dispatch on substrings of these.
const (
	PatternSingleCorrect    = "Standard Single-Correct"
	PatternSingleIncorrect  = "Standard Single-Incorrect"
	PatternMS2Correct       = "Multiple-Statement-2 (Correct)"
	PatternMS2Incorrect     = "Multiple-Statement-2 (Incorrect)"
	PatternMS3Correct       = "Multiple-Statement-3 (Correct)"
	PatternMS3Incorrect     = "Multiple-Statement-3 (Incorrect)"
	PatternMS4Correct       = "Multiple-Statement-4 (Correct)"
	PatternMS4Incorrect     = "Multiple-Statement-4 (Incorrect)"
	PatternHowManyStatement = "How Many - Statement"
	PatternHowManyPairs     = "How Many Pairs Correct/Incorrect"
	PatternHowManySets      = "How Many Sets/Triplets"
	PatternAssertionReason2 = "Std 2-Stmt Assertion-Reason"
	PatternAssertionReason3 = "Complex 3-Stmt Assertion-Reason"
	PatternChronological    = "Chronological Ordering"
	PatternGeographical     = "Geographical Sequencing"
)

// PatternTypes lists the patterns in typical exam frequency order.
var PatternTypes = []string{
	PatternSingleCorrect,
	PatternMS2Correct,
	PatternMS3Correct,
	PatternSingleIncorrect,
	PatternMS2Incorrect,
	PatternMS3Incorrect,
	PatternAssertionReason2,
	PatternMS4Correct,
	PatternMS4Incorrect,
	PatternHowManyStatement,
	PatternHowManyPairs,
	PatternHowManySets,
	PatternAssertionReason3,
	PatternChronological,
	PatternGeographical,
}

// CognitiveLevels lists the supported cognitive complexity levels.
var CognitiveLevels = []string{
	"Comprehension/Conceptual",
	"Application/Analysis",
	"Recall/Recognition",
	"Higher Reasoning/Synthesis",
}

// DifficultyLevels lists the supported difficulty levels.
var DifficultyLevels = []string{"Moderate", "Difficult", "Easy"}

// SyllabusSubjects are the subjects questions may be planned against when
// the topic field is randomized across the whole syllabus.
var SyllabusSubjects = []string{
	"History & Culture",
	"Geography",
	"Polity & Governance",
	"Economy",
	"Environment",
	"Science & Technology",
	"CA & IR",
	"Miscellaneous",
}
