package papergen

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGenerator returns a generator with the retry backoffs zeroed.
func newTestGenerator(client ChatCompleter) *Generator {
	g := NewGenerator(client, NewUsageLedger())
	g.validationDelay = 0
	g.transportDelay = 0
	return g
}

func TestGeneratePassesFirstAttempt(t *testing.T) {
	calls := 0
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		calls++
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Which Article provides for the Finance Commission?",
			Options: []string{"Article 280", "Article 281", "Article 324", "Article 352"},
			Answer:  AnswerA,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Standard Single-Correct")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, 1, calls)
	assert.Len(t, draft.Options, 4)
}

func TestGenerateRetriesUntilValidationPasses(t *testing.T) {
	// First two drafts answer with the giveaway ascending sequence; the
	// third is properly shuffled.
	calls := 0
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		calls++
		correct := "1-2-3-4"
		if calls == 3 {
			correct = "2-4-1-3"
		}
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Arrange the following treaties in correct chronological order:\n1. Treaty of Allahabad\n2. Treaty of Salbai\n3. Treaty of Bassein\n4. Treaty of Lahore",
			Options: []string{correct, "3-2-4-1", "4-2-1-3", "2-1-3-4"},
			Answer:  AnswerA,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Chronological Ordering")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "2-4-1-3", draft.Options[0])
}

func TestGenerateNonCriticalDegradesToLastDraft(t *testing.T) {
	// Every attempt fails sequence randomization. An ordering question is
	// not a critical pattern, so the last draft comes back anyway.
	calls := 0
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		calls++
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Arrange the following rivers from north to south:\n1. Indus\n2. Narmada\n3. Godavari\n4. Kaveri",
			Options: []string{"1-2-3-4", "2-1-4-3", "3-4-1-2", "4-3-2-1"},
			Answer:  AnswerA,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Geographical Sequencing")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, 3, calls)
}

func TestGenerateCriticalPatternFailsHard(t *testing.T) {
	// A 4-statement blueprint that keeps coming back with 3 statements
	// must not degrade: the draft is structurally broken.
	calls := 0
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		calls++
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Consider the following statements:\n1. First.\n2. Second.\n3. Third.\nWhich of the statements given above is/are correct?",
			Options: []string{"1 only", "1 and 2 only", "2 and 3 only", "1, 2 and 3"},
			Answer:  AnswerD,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Multiple-Statement-4 (Correct)")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, draft)
	assert.Equal(t, 5, calls, "critical patterns get 5 attempts")
}

func TestGenerateCriticalPatternDegradesWhenStructureHolds(t *testing.T) {
	// All 4 statements and the closing question are present; only the
	// ordering check keeps failing. Structure holds, so the degraded
	// draft is still returned.
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Consider the following statements about the chronological order of reforms:\n1. First.\n2. Second.\n3. Third.\n4. Fourth.\nWhich of the statements given above is/are correct?",
			Options: []string{"1-2-3-4", "2-1-4-3", "3-4-1-2", "4-1-3-2"},
			Answer:  AnswerA,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Multiple-Statement-4 (Correct), chronological theme")
	require.NoError(t, err)
	require.NotNil(t, draft)
}

func TestGenerateNoParseableDraft(t *testing.T) {
	calls := 0
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		calls++
		return openai.ChatCompletionResponse{}, errors.New("rate limited")
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Standard Single-Correct")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, draft)
	assert.Equal(t, 3, calls)
}

func TestGenerateRejectsWrongOptionCount(t *testing.T) {
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return toolResponse(t, "submit_question", DraftQuestion{
			Stem:    "Which planet is known as the red planet?",
			Options: []string{"Mars", "Venus"},
			Answer:  AnswerA,
		}), nil
	}}

	g := newTestGenerator(client)
	draft, err := g.Generate(context.Background(), "Format: Standard Single-Correct")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Nil(t, draft)
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		cancel()
		return openai.ChatCompletionResponse{}, errors.New("connection reset")
	}}

	g := newTestGenerator(client)
	g.transportDelay = time.Hour // only the cancelled context can end the wait

	draft, err := g.Generate(ctx, "Format: Standard Single-Correct")
	require.Error(t, err)
	assert.Nil(t, draft)
}

func TestIsCriticalPattern(t *testing.T) {
	assert.True(t, isCriticalPattern("Format: Multiple-Statement-4 (Correct)"))
	assert.True(t, isCriticalPattern("Format: Complex 3-Stmt Assertion-Reason"))
	assert.False(t, isCriticalPattern("Format: Multiple-Statement-2 (Correct)"))
	assert.False(t, isCriticalPattern("Format: Standard Single-Correct"))
}

func TestBuildGenerationPromptPinsAnswer(t *testing.T) {
	prompt := buildGenerationPrompt("Format: Standard Single-Correct", AnswerC)
	assert.Contains(t, prompt, "answer is C")
}

func TestBuildGenerationPromptFourStatementConstraint(t *testing.T) {
	prompt := buildGenerationPrompt("Format: Multiple-Statement-4 (Correct)", AnswerA)
	assert.Contains(t, prompt, "4-STATEMENT")
	assert.Contains(t, prompt, "Statement 4 is mandatory")
}

func TestBuildGenerationPromptReferenceInstruction(t *testing.T) {
	plain := buildGenerationPrompt("Format: Standard Single-Correct", AnswerA)
	assert.NotContains(t, plain, "Reference material")

	annotated := AnnotatePlan("Format: Standard Single-Correct", "- Repo rate raised to 6.5% in 2023")
	prompt := buildGenerationPrompt(annotated, AnswerA)
	assert.Contains(t, prompt, "Reference material")
}
