package papergen

import (
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// UsageTotals summarizes token consumption across a run.
type UsageTotals struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageLedger is an append-only record of per-call token usage, shared by
// all components of a run. Entries are only summed after the batch settles.
type UsageLedger struct {
	mu      sync.Mutex
	entries []openai.Usage
}

// NewUsageLedger creates an empty ledger.
func NewUsageLedger() *UsageLedger {
	return &UsageLedger{}
}

// Add appends one call's usage.
func (ul *UsageLedger) Add(usage openai.Usage) {
	ul.mu.Lock()
	defer ul.mu.Unlock()
	ul.entries = append(ul.entries, usage)
}

// Totals sums all recorded entries.
func (ul *UsageLedger) Totals() UsageTotals {
	ul.mu.Lock()
	defer ul.mu.Unlock()

	var totals UsageTotals
	for _, u := range ul.entries {
		totals.PromptTokens += u.PromptTokens
		totals.CompletionTokens += u.CompletionTokens
		totals.TotalTokens += u.TotalTokens
	}
	return totals
}

// Calls reports how many remote calls were recorded.
func (ul *UsageLedger) Calls() int {
	ul.mu.Lock()
	defer ul.mu.Unlock()
	return len(ul.entries)
}
