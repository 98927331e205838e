package papergen

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequirements(n int) []QuestionRequirement {
	reqs := make([]QuestionRequirement, n)
	for i := range reqs {
		reqs[i] = QuestionRequirement{
			Topic:      "Polity: Fundamental Rights",
			Pattern:    PatternSingleCorrect,
			Cognitive:  "Recall/Recognition",
			Difficulty: "Moderate",
		}
	}
	return reqs
}

func TestPlanReturnsBlueprints(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		captured = req
		return toolResponse(t, "submit_plans", map[string]interface{}{
			"plans": []string{"Subject: Polity & Governance\nTopic: Article 14", "Subject: Polity & Governance\nTopic: Article 21"},
		}), nil
	}}

	p := NewPlanner(client, NewUsageLedger(), NewPlanHistory())
	plans, err := p.Plan(context.Background(), PlanRequest{
		Requirements: testRequirements(2),
		Topic:        "Fundamental Rights",
	})
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, "submit_plans", forcedToolName(captured))
	assert.Contains(t, userPromptOf(captured), "Total Questions to Generate: 2")
	assert.Contains(t, userPromptOf(captured), "Fundamental Rights")
}

func TestPlanEmbedsDedupHistory(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		captured = req
		return toolResponse(t, "submit_plans", map[string]interface{}{"plans": []string{"plan"}}), nil
	}}

	history := NewPlanHistory()
	history.blueprints = []string{"Subject: Economy\nTopic: Repo Rate"}

	p := NewPlanner(client, NewUsageLedger(), history)
	_, err := p.Plan(context.Background(), PlanRequest{Requirements: testRequirements(1)})
	require.NoError(t, err)

	require.NotEmpty(t, captured.Messages)
	systemPrompt := captured.Messages[0].Content
	assert.Contains(t, systemPrompt, "Subject: Economy\nTopic: Repo Rate")
	assert.Contains(t, systemPrompt, "PAST GENERATED BLUEPRINTS")
}

func TestPlanFailsWithoutRequirements(t *testing.T) {
	p := NewPlanner(&stubChatClient{}, NewUsageLedger(), NewPlanHistory())
	_, err := p.Plan(context.Background(), PlanRequest{})
	require.ErrorIs(t, err, ErrPlanningFailed)
}

func TestPlanWrapsRemoteError(t *testing.T) {
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, errors.New("rate limited")
	}}

	p := NewPlanner(client, NewUsageLedger(), NewPlanHistory())
	_, err := p.Plan(context.Background(), PlanRequest{Requirements: testRequirements(1)})
	require.ErrorIs(t, err, ErrPlanningFailed)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestPlanFailsOnEmptyPlanList(t *testing.T) {
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return toolResponse(t, "submit_plans", map[string]interface{}{"plans": []string{}}), nil
	}}

	p := NewPlanner(client, NewUsageLedger(), NewPlanHistory())
	_, err := p.Plan(context.Background(), PlanRequest{Requirements: testRequirements(3)})
	require.ErrorIs(t, err, ErrPlanningFailed)
}

func TestFormatRequirementsOneLinePerSlot(t *testing.T) {
	reqs := []QuestionRequirement{
		{Topic: "Polity", Pattern: PatternMS2Correct, Cognitive: "Recall/Recognition", Difficulty: "Easy"},
		{Pattern: PatternSingleCorrect, Cognitive: "Application/Analysis", Difficulty: "Moderate"},
	}

	got := formatRequirements(reqs)
	assert.Contains(t, got, "1. Generate **1 question** with attributes: [Topic: Polity")
	assert.Contains(t, got, "2. Generate **1 question** with attributes: [Topic: Use Main Topic/Context")
	assert.Contains(t, got, "Total Questions to Generate: 2")
}

type stubHistorySource struct {
	blueprints []string
	err        error
}

func (s *stubHistorySource) HistoryForDedup() ([]string, error) {
	return s.blueprints, s.err
}

func TestPlanHistoryRefresh(t *testing.T) {
	h := NewPlanHistory()
	require.NoError(t, h.Refresh(&stubHistorySource{blueprints: []string{"a", "b"}}))
	assert.Equal(t, []string{"a", "b"}, h.Blueprints())

	require.Error(t, h.Refresh(&stubHistorySource{err: errors.New("db closed")}))
	// A failed refresh keeps the previous cache.
	assert.Equal(t, []string{"a", "b"}, h.Blueprints())
}
