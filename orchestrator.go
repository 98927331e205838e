package papergen

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// chunkSize bounds how many questions are generated concurrently. Each
// question costs several chat completions, so a full batch in flight at
// once would trip provider rate limits.
const chunkSize = 15

// Manager drives the whole pipeline for one batch: plan, generate,
// translate, and archive. A failed question never aborts the batch; it is
// logged and dropped, and the rest of the chunk completes normally.
type Manager struct {
	apiKey     string
	planner    *Planner
	generator  *Generator
	translator *Translator
	researcher *Researcher
	archive    *Archivist
	usage      *UsageLedger
	history    *PlanHistory

	// BulkMode inserts a pause between chunks for long unattended runs.
	BulkMode   bool
	chunkPause time.Duration
}

// NewManager wires the pipeline stages together. The archive may be nil,
// in which case questions are returned but not persisted and planning runs
// without dedup history.
func NewManager(apiKey string, archive *Archivist) *Manager {
	usage := NewUsageLedger()
	history := NewPlanHistory()
	client := openai.NewClient(apiKey)

	return &Manager{
		apiKey:     apiKey,
		planner:    NewPlanner(client, usage, history),
		generator:  NewGenerator(client, usage),
		translator: NewTranslator(client, usage),
		researcher: NewResearcher(client, usage),
		archive:    archive,
		usage:      usage,
		history:    history,
		chunkPause: 5 * time.Second,
	}
}

// Usage returns the token ledger shared by all pipeline stages.
func (m *Manager) Usage() *UsageLedger {
	return m.usage
}

// GenerateQuestions runs the full pipeline: plan once, generate and
// translate in chunks, then archive. Requirements arrive already expanded.
// Output numbering is contiguous from startNumber; a dropped plan removes
// its content but never leaves a hole in the numbering.
func (m *Manager) GenerateQuestions(ctx context.Context, req PlanRequest, batchKey string, startNumber int) ([]Question, error) {
	// Each run gets a fresh client binding so a rotated key or changed
	// base URL takes effect without rebuilding the manager.
	client := openai.NewClient(m.apiKey)
	m.planner.SetClient(client)
	m.generator.SetClient(client)
	m.translator.SetClient(client)
	m.researcher.SetClient(client)

	logger, err := NewLLMLogger(batchKey, req)
	if err != nil {
		log.Printf("Failed to create batch log, continuing without: %v", err)
	} else {
		m.planner.SetLogger(logger)
		m.generator.SetLogger(logger)
		m.translator.SetLogger(logger)
		defer logger.Close()
	}

	if m.archive != nil {
		if err := m.history.Refresh(m.archive); err != nil {
			log.Printf("Could not load dedup history, planning without it: %v", err)
		}
	}

	plans, err := m.planner.Plan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("planning batch %s: %w", batchKey, err)
	}

	if reference := m.gatherReference(ctx, req); reference != "" {
		for i, plan := range plans {
			plans[i] = AnnotatePlan(plan, reference)
		}
	}

	questions := m.collate(ctx, plans, startNumber, logger)
	log.Printf("Batch %s: %d/%d questions generated", batchKey, len(questions), len(plans))

	if m.archive != nil && len(questions) > 0 {
		if err := m.archive.SaveQuestions(questions, batchKey); err != nil {
			return questions, fmt.Errorf("archiving batch %s: %w", batchKey, err)
		}
	}
	return questions, nil
}

// gatherReference fetches current-affairs material when the topic needs it.
// Research failure is non-fatal; generation proceeds on training data.
func (m *Manager) gatherReference(ctx context.Context, req PlanRequest) string {
	if req.Topic == "" && req.Context == "" {
		return ""
	}
	topic := req.Topic
	if topic == "" {
		topic = "the provided source material"
	}
	if !m.researcher.NeedsResearch(ctx, topic, req.Context) {
		return ""
	}
	VerboseLog("Topic flagged for research: %s", topic)
	reference, err := m.researcher.Research(ctx, topic, req.Context)
	if err != nil {
		log.Printf("Research failed, generating without reference material: %v", err)
		return ""
	}
	return reference
}

// collate runs the plans through generation and translation in chunks of
// chunkSize, isolating failures per question. Dispatch-time sequence
// numbers fix the output order; after dropped plans are filtered out the
// survivors are renumbered contiguously from startNumber.
func (m *Manager) collate(ctx context.Context, plans []string, startNumber int, logger *LLMLogger) []Question {
	results := make([]*Question, len(plans))

	for chunkStart := 0; chunkStart < len(plans); chunkStart += chunkSize {
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > len(plans) {
			chunkEnd = len(plans)
		}
		VerboseLog("Processing chunk %d-%d of %d plans", chunkStart+1, chunkEnd, len(plans))

		var wg sync.WaitGroup
		for i := chunkStart; i < chunkEnd; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						log.Printf("Question %d panicked, dropping: %v", startNumber+idx, r)
					}
				}()

				seq := startNumber + idx
				q, err := m.buildQuestion(ctx, plans[idx], seq)
				if err != nil {
					log.Printf("Question %d dropped: %v", seq, err)
					if logger != nil {
						logger.LogQuestionResult(seq, "DROPPED", err.Error())
					}
					return
				}
				if logger != nil {
					logger.LogQuestionResult(seq, "GENERATED", q.Subject)
				}
				results[idx] = q
			}(i)
		}
		wg.Wait()

		if m.BulkMode && chunkEnd < len(plans) {
			VerboseLog("Bulk mode: pausing %s between chunks", m.chunkPause)
			select {
			case <-ctx.Done():
			case <-time.After(m.chunkPause):
			}
		}
	}

	questions := make([]Question, 0, len(plans))
	for _, q := range results {
		if q != nil {
			questions = append(questions, *q)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].SequenceNumber < questions[j].SequenceNumber
	})
	for i := range questions {
		questions[i].SequenceNumber = startNumber + i
	}
	return questions
}

// buildQuestion takes one blueprint through generation and translation.
func (m *Manager) buildQuestion(ctx context.Context, plan string, sequenceNumber int) (*Question, error) {
	draft, err := m.generator.Generate(ctx, plan)
	if err != nil {
		return nil, err
	}

	translation, err := m.translator.Translate(ctx, draft.Stem, draft.Options)
	if err != nil {
		// Review and archival need both renderings; an untranslated
		// question cannot enter the paper.
		return nil, err
	}

	return &Question{
		SequenceNumber:   sequenceNumber,
		StableID:         uuid.New().String(),
		StemPrimary:      draft.Stem,
		OptionsPrimary:   draft.Options,
		StemSecondary:    translation.Stem,
		OptionsSecondary: translation.Options,
		Answer:           draft.Answer,
		Blueprint:        SanitizePlan(plan),
		Subject:          subjectFromPlan(plan),
		ReviewState:      ReviewPending,
		CreatedAt:        time.Now(),
	}, nil
}

// RegenerateQuestion produces a fresh question from an existing question's
// blueprint. The stable ID and sequence number are preserved so the upsert
// replaces the old content, and the review state resets to pending.
func (m *Manager) RegenerateQuestion(ctx context.Context, q Question) (*Question, error) {
	blueprint := q.Blueprint
	if q.Feedback != "" {
		blueprint = q.Blueprint + "\n\nReviewer feedback on the previous attempt [address this]: " + q.Feedback
	}

	draft, err := m.generator.Generate(ctx, blueprint)
	if err != nil {
		return nil, err
	}
	translation, err := m.translator.Translate(ctx, draft.Stem, draft.Options)
	if err != nil {
		return nil, err
	}

	fresh := q
	fresh.StemPrimary = draft.Stem
	fresh.OptionsPrimary = draft.Options
	fresh.StemSecondary = translation.Stem
	fresh.OptionsSecondary = translation.Options
	fresh.Answer = draft.Answer
	fresh.ReviewState = ReviewPending
	fresh.Feedback = ""
	fresh.CreatedAt = time.Now()
	return &fresh, nil
}

// TranslateQuestion fills in the secondary rendering of a question that is
// missing one, leaving everything else untouched.
func (m *Manager) TranslateQuestion(ctx context.Context, q Question) (*Question, error) {
	translation, err := m.translator.Translate(ctx, q.StemPrimary, q.OptionsPrimary)
	if err != nil {
		return nil, err
	}
	q.StemSecondary = translation.Stem
	q.OptionsSecondary = translation.Options
	return &q, nil
}

// subjectFromPlan extracts the Subject line of a blueprint, falling back to
// keyword inference when the line is absent.
func subjectFromPlan(plan string) string {
	for _, line := range strings.Split(plan, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Subject:") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "Subject:"))
		}
	}
	return subjectFromTopic(plan)
}
