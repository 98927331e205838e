package papergen

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// criticalPatternMarkers flag the blueprint shapes that fail most often and
// whose structure is non-negotiable: a missing statement is user-visibly
// broken, not merely weaker.
var criticalPatternMarkers = []string{
	"multiple-statement-4",
	"complex 3-stmt",
	"3-stmt assertion",
}

func isCriticalPattern(blueprint string) bool {
	return containsAny(strings.ToLower(blueprint), criticalPatternMarkers)
}

// Generator turns one blueprint into a validated draft question through a
// bounded retry loop against the content model.
type Generator struct {
	client  ChatCompleter
	crafter *PromptCrafter
	usage   *UsageLedger
	logger  *LLMLogger

	// Fixed backoffs; call volume per run is small, so no exponential
	// schedule is needed to stay under rate limits.
	validationDelay time.Duration
	transportDelay  time.Duration
}

// NewGenerator creates a generator backed by the given chat client.
func NewGenerator(client ChatCompleter, usage *UsageLedger) *Generator {
	return &Generator{
		client:          client,
		crafter:         NewPromptCrafter(),
		usage:           usage,
		validationDelay: time.Second,
		transportDelay:  2 * time.Second,
	}
}

// SetClient rebinds the remote client for a new run.
func (g *Generator) SetClient(client ChatCompleter) {
	g.client = client
}

// SetLogger attaches a batch log for LLM traffic.
func (g *Generator) SetLogger(logger *LLMLogger) {
	g.logger = logger
}

// Generate runs the per-plan retry state machine. The first draft that
// passes every structural check is returned immediately. On exhaustion,
// ordinary patterns degrade gracefully to the last draft seen, while
// critical patterns re-run the two structurally fatal checks and fail hard
// if either still fails. If no attempt ever produced a parseable draft the
// result is an explicit failure.
func (g *Generator) Generate(ctx context.Context, blueprint string) (*DraftQuestion, error) {
	critical := isCriticalPattern(blueprint)
	maxAttempts := 3
	if critical {
		maxAttempts = 5
	}

	systemPrompt := g.crafter.CraftSystemPrompt(blueprint)
	tools, toolChoice := forcedTool("submit_question", "Submit the generated exam question", questionSchema)

	var lastDraft *DraftQuestion

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Draw a fresh target letter each attempt to counteract the
		// model's bias toward a habitual answer position.
		target := answerKeys[rand.Intn(len(answerKeys))]
		VerboseLog("Generation attempt %d/%d, target answer %s", attempt, maxAttempts, target)

		userPrompt := buildGenerationPrompt(blueprint, target)
		if g.logger != nil {
			g.logger.LogLLMRequest("Generator", userPrompt)
		}

		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Tools:      tools,
			ToolChoice: toolChoice,
		})
		if err != nil {
			log.Printf("Generator attempt %d/%d remote call failed: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				if !g.wait(ctx, g.transportDelay) {
					return nil, ctx.Err()
				}
			}
			continue
		}

		g.usage.Add(resp.Usage)

		var draft DraftQuestion
		if err := decodeToolArguments(resp, "submit_question", &draft); err != nil || len(draft.Options) != 4 {
			log.Printf("Generator attempt %d/%d returned unusable draft: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				if !g.wait(ctx, g.transportDelay) {
					return nil, ctx.Err()
				}
			}
			continue
		}

		if g.logger != nil {
			g.logger.LogLLMResponse("Generator", draft.Stem)
		}
		lastDraft = &draft

		ok, name, reason := ValidateDraft(blueprint, &draft)
		if ok {
			VerboseLog("All structural checks passed on attempt %d", attempt)
			return &draft, nil
		}

		log.Printf("Validation failed (%s): %s", name, reason)
		if g.logger != nil {
			g.logger.LogCheckFailure(name, reason)
		}
		if attempt < maxAttempts {
			if !g.wait(ctx, g.validationDelay) {
				return nil, ctx.Err()
			}
		}
	}

	if lastDraft == nil {
		return nil, ErrGenerationFailed
	}

	if critical {
		// Only the structurally fatal checks gate the degraded draft;
		// a predictable sequence answer is weak, a missing statement is
		// unusable.
		stmtOK, _ := checkStatementCompleteness(blueprint, lastDraft)
		closingOK, _ := checkClosingQuestion(blueprint, lastDraft)
		if !stmtOK || !closingOK {
			log.Printf("Critical pattern still structurally invalid after %d attempts, dropping", maxAttempts)
			return nil, ErrGenerationFailed
		}
	}

	log.Printf("Max attempts reached; returning question despite validation issues")
	return lastDraft, nil
}

// wait sleeps for the fixed backoff, returning false if the context ended.
func (g *Generator) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// buildGenerationPrompt assembles the per-attempt user prompt: the pattern
// structure constraint, the reference-material instruction when the
// blueprint carries an annotation, the blueprint itself, and the hard
// constraint pinning the correct answer to the drawn letter.
func buildGenerationPrompt(blueprint string, target AnswerKey) string {
	lower := strings.ToLower(blueprint)
	var sb strings.Builder

	sb.WriteString("## Use the details below to generate the question.\n")

	switch {
	case strings.Contains(lower, "multiple-statement-4"):
		sb.WriteString(`
### CRITICAL: THIS IS A 4-STATEMENT QUESTION
You MUST generate exactly 4 statements, numbered 1 to 4. Statement 4 is mandatory; do not stop at 3. The closing question must appear after statement 4. If you only have 3 statements, you are wrong: add a 4th.
`)
	case strings.Contains(lower, "complex 3-stmt"), strings.Contains(lower, "3-stmt assertion"):
		sb.WriteString(`
### CRITICAL STRUCTURE REQUIREMENT
This is a 3-statement assertion-reason question. Include Statement-I, Statement-II AND Statement-III; do not omit Statement-III. Use 3-statement options (testing whether II and III explain I) and end with "Which one of the following is correct in respect of the above statements?" Do not fall back to the 2-statement format.
`)
	case strings.Contains(lower, "multiple-statement-3"):
		sb.WriteString(`
### CRITICAL STRUCTURE REQUIREMENT
This question requires EXACTLY 3 statements numbered 1, 2, 3. Include all 3 and end with the closing question.
`)
	case strings.Contains(lower, "multiple-statement-2"):
		sb.WriteString(`
### CRITICAL STRUCTURE REQUIREMENT
This question requires EXACTLY 2 statements (I and II, or 1 and 2). Include both and end with the closing question.
`)
	}

	if strings.Contains(blueprint, referenceMarker) {
		sb.WriteString(`
### IMPORTANT: Reference material is provided below the blueprint. Use its facts, data points, and information as the primary source of truth for current-affairs content; do not rely on training data for those facts.
`)
	}

	sb.WriteString("\n### Question Blueprint\n")
	sb.WriteString(blueprint)
	sb.WriteString("\n\n### MANDATORY constraint: construct the question and options such that the answer is ")
	sb.WriteString(string(target))
	sb.WriteString(".\n\n### Now generate the question.\n")

	return sb.String()
}
