package papergen

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// HistorySource supplies the blueprints of previously accepted questions.
type HistorySource interface {
	HistoryForDedup() ([]string, error)
}

// PlanHistory is the explicitly-owned cache of past blueprints the planner
// deduplicates against. Refresh it from the archive before a run.
type PlanHistory struct {
	mu         sync.Mutex
	blueprints []string
}

// NewPlanHistory creates an empty history cache.
func NewPlanHistory() *PlanHistory {
	return &PlanHistory{}
}

// Refresh replaces the cache with the archive's accepted blueprints.
func (h *PlanHistory) Refresh(source HistorySource) error {
	blueprints, err := source.HistoryForDedup()
	if err != nil {
		return fmt.Errorf("failed to refresh plan history: %w", err)
	}
	h.mu.Lock()
	h.blueprints = blueprints
	h.mu.Unlock()
	return nil
}

// Blueprints returns a copy of the cached history.
func (h *PlanHistory) Blueprints() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.blueprints))
	copy(out, h.blueprints)
	return out
}

// Planner turns a batch of requirements into one blueprint per question via
// a single remote call. There is no retry at this layer: a failed planning
// call yields zero plans and therefore zero questions.
type Planner struct {
	client  ChatCompleter
	usage   *UsageLedger
	history *PlanHistory
	logger  *LLMLogger
}

// NewPlanner creates a planner with the given dedup history.
func NewPlanner(client ChatCompleter, usage *UsageLedger, history *PlanHistory) *Planner {
	return &Planner{client: client, usage: usage, history: history}
}

// SetClient rebinds the remote client for a new run.
func (p *Planner) SetClient(client ChatCompleter) {
	p.client = client
}

// SetLogger attaches a batch log for LLM traffic.
func (p *Planner) SetLogger(logger *LLMLogger) {
	p.logger = logger
}

var planSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"plans": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "One complete question blueprint per requested question",
		},
	},
	"required": []string{"plans"},
}

// Plan requests one blueprint per requirement. Returns ErrPlanningFailed
// when the call fails or produces no blueprints.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) ([]string, error) {
	if len(req.Requirements) == 0 {
		return nil, fmt.Errorf("%w: no requirements", ErrPlanningFailed)
	}

	systemPrompt := p.buildSystemPrompt(req)
	userPrompt := p.buildUserPrompt(req)
	if p.logger != nil {
		p.logger.LogLLMRequest("Planner", userPrompt)
	}

	tools, toolChoice := forcedTool("submit_plans", "Submit the generated question blueprints", planSchema)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Tools:      tools,
		ToolChoice: toolChoice,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanningFailed, err)
	}
	p.usage.Add(resp.Usage)

	var args struct {
		Plans []string `json:"plans"`
	}
	if err := decodeToolArguments(resp, "submit_plans", &args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanningFailed, err)
	}
	if len(args.Plans) == 0 {
		return nil, ErrPlanningFailed
	}

	log.Printf("Planner produced %d blueprints for %d requirements", len(args.Plans), len(req.Requirements))
	return args.Plans, nil
}

// formatRequirements renders the requirements table the model must satisfy
// exactly, one line per question slot.
func formatRequirements(requirements []QuestionRequirement) string {
	var sb strings.Builder
	sb.WriteString("### Detailed Question Requirements Table:\n")
	sb.WriteString("**CRITICAL: every question MUST be directly relevant to its specified topic.**\n\n")

	for i, r := range requirements {
		topic := "Topic: Use Main Topic/Context"
		if r.Topic != "" {
			topic = "Topic: " + r.Topic
		}
		fmt.Fprintf(&sb, "%d. Generate **1 question** with attributes: [%s, Pattern: %s, Cognitive: %s, Difficulty: %s]\n",
			i+1, topic, r.Pattern, r.Cognitive, r.Difficulty)
	}

	fmt.Fprintf(&sb, "\n**Total Questions to Generate: %d**\n", len(requirements))
	return sb.String()
}

func (p *Planner) buildSystemPrompt(req PlanRequest) string {
	var sb strings.Builder

	sb.WriteString("You are an expert UPSC Prelims question paper designer producing authentic MCQ blueprints matching the standard, depth, ambiguity and conceptual rigor of the actual examination.\n\n")

	sb.WriteString("## Core Task\nCreate the EXACT requested number of question blueprints:\n")
	sb.WriteString("- STRICT ADHERENCE TO QUANTITY: generate precisely one blueprint per row of the requirements table; match each row's pattern, cognitive level and difficulty.\n")
	sb.WriteString("- Each output item is a question PLAN, not the question text. Every plan must include Subject, Topic -> Subtopic -> Sub-subtopic, Difficulty, Cognitive Complexity and Question Format.\n")

	switch {
	case req.Context != "" && req.Topic != "":
		sb.WriteString("- Focus on the USER PROVIDED TOPIC while analyzing the CONTEXT; every blueprint must connect to the context through the lens of the topic.\n")
	case req.Context != "":
		sb.WriteString("- Focus on the USER PROVIDED CONTEXT only; identify its underlying conceptual topics and connect every blueprint directly to it.\n")
	case req.Topic != "":
		sb.WriteString("- Focus on the USER PROVIDED TOPIC only; identify its conceptual subtopics and connect every blueprint directly to it.\n")
	default:
		sb.WriteString("- Cover the full Prelims syllabus across the blueprints.\n")
	}
	sb.WriteString("- Do not try to cover everything in one question; take individual points and make blueprints.\n")
	sb.WriteString("- AVOID REPETITION: analyze past blueprints below and vary at least sub-subtopic and pattern within a subtopic.\n\n")

	if history := p.history.Blueprints(); len(history) > 0 {
		sb.WriteString("### PAST GENERATED BLUEPRINTS [avoid repeating these]\n```\n")
		sb.WriteString(strings.Join(history, "\n---\n"))
		sb.WriteString("\n```\n\n")
	}

	sb.WriteString("Possible values of Subject [HARD RESTRICTION: choose from these only]:\n")
	for i, subject := range SyllabusSubjects {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, subject)
	}

	sb.WriteString(`
## Output Format
Return an array of strings via the submit_plans tool, each one a complete plan such as:

"Subject: History & Culture
Topic: Medieval India
Subtopic: Vijayanagara Empire
Question Type: Static
Difficulty: Moderate
Cognitive Skill: Recall/Recognition
Format: Standard Single-Incorrect
Note: Focus on temple architecture and social conditions under Vijayanagara rulers."
`)

	return sb.String()
}

func (p *Planner) buildUserPrompt(req PlanRequest) string {
	var sb strings.Builder
	sb.WriteString("# USER INPUTS\n\n")

	if req.Context != "" {
		sb.WriteString("### USER Provided Context:\n```\n")
		sb.WriteString(req.Context)
		sb.WriteString("\n```\n\n")
	}
	if req.Topic != "" {
		sb.WriteString("### USER Provided Topic:\n")
		sb.WriteString(req.Topic)
		sb.WriteString("\n\n")
	}

	sb.WriteString(formatRequirements(req.Requirements))
	sb.WriteString("\n------\n\nNow generate the question blueprints.\n")
	return sb.String()
}
