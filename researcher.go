package papergen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// referenceMarker opens the working-session annotation a plan may carry.
// The annotation is generator-only context and must be stripped again
// before a blueprint is archived.
const referenceMarker = "--- REFERENCE MATERIAL"

// AnnotatePlan attaches reference material to a blueprint for the duration
// of a generation session.
func AnnotatePlan(plan, reference string) string {
	if strings.TrimSpace(reference) == "" {
		return plan
	}
	return plan + "\n\n" + referenceMarker + " ---\n" + reference
}

// SanitizePlan strips any reference-material annotation from a blueprint.
func SanitizePlan(plan string) string {
	if idx := strings.Index(plan, referenceMarker); idx >= 0 {
		return strings.TrimRight(plan[:idx], "\n ")
	}
	return plan
}

// Researcher decides whether a topic needs current-affairs material beyond
// the model's knowledge cutoff and fetches it as compact bullet points.
type Researcher struct {
	client ChatCompleter
	usage  *UsageLedger
}

// NewResearcher creates a researcher backed by the given chat client.
func NewResearcher(client ChatCompleter, usage *UsageLedger) *Researcher {
	return &Researcher{client: client, usage: usage}
}

// SetClient rebinds the remote client for a new run.
func (r *Researcher) SetClient(client ChatCompleter) {
	r.client = client
}

// NeedsResearch classifies whether accurate questions on the topic require
// information newer than the model's training data. Classification failure
// is treated as "no" so the pipeline proceeds without research.
func (r *Researcher) NeedsResearch(ctx context.Context, topic, contextText string) bool {
	contextLine := ""
	if contextText != "" {
		if len(contextText) > 500 {
			contextText = contextText[:500]
		}
		contextLine = "\nContext: " + contextText
	}

	prompt := fmt.Sprintf(
		"Does this topic/context require information from recent events to create accurate exam questions?\nTopic: %s%s\n\nReply with ONLY the word YES or NO.\nYES if it involves recent events, policies, budgets, summits, or appointments.\nNO if it is historical, theoretical, or foundational.",
		topic, contextLine,
	)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT4oMini,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		MaxTokens: 5,
	})
	if err != nil {
		VerboseLog("Researcher classification failed, skipping research: %v", err)
		return false
	}
	r.usage.Add(resp.Usage)

	if len(resp.Choices) == 0 {
		return false
	}
	answer := strings.ToUpper(strings.TrimSpace(resp.Choices[0].Message.Content))
	return strings.HasPrefix(answer, "YES")
}

// Research fetches compact, testable facts for the topic: key data points,
// dates and numbers, recent schemes, acts and agreements.
func (r *Researcher) Research(ctx context.Context, topic, hint string) (string, error) {
	hintLine := ""
	if hint != "" {
		hintLine = "\nAdditional context: " + hint
	}

	prompt := fmt.Sprintf(
		"Research this topic for civil services exam question creation.\nTopic: %s%s\n\nReturn ONLY:\n- Key facts, data points, dates, and numbers\n- Recent developments\n- Government schemes, acts, policies, or verdicts\n- International agreements or summits if relevant\n\nFormat: bullet points only. No prose, no headers, no explanations. Focus on testable, factual information.",
		topic, hintLine,
	)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("research failed: %w", err)
	}
	r.usage.Add(resp.Usage)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("research returned no content")
	}
	return resp.Choices[0].Message.Content, nil
}
