package papergen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger handles logging of all LLM interactions for one batch
type LLMLogger struct {
	file     *os.File
	mu       sync.Mutex
	batchKey string
}

// NewLLMLogger creates a new LLM logger for a specific batch
func NewLLMLogger(batchKey string, req PlanRequest) (*LLMLogger, error) {
	// Ensure log directory exists
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", batchKey))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:     file,
		batchKey: batchKey,
	}

	// Write header with batch parameters
	logger.Logf("=== Question Generation Log ===\n")
	logger.Logf("Batch Key: %s\n", batchKey)
	if req.Topic != "" {
		logger.Logf("Topic: %s\n", req.Topic)
	}
	if req.Context != "" {
		logger.Logf("Context Length: %d characters\n", len(req.Context))
	}
	logger.Logf("Number of Questions: %d\n", len(req.Requirements))
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("========================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)

	// Flush so a crashed run still leaves a usable trace
	ll.file.Sync()
}

// LogLLMRequest logs an LLM request
func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse logs an LLM response
func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogCheckFailure logs a failed structural check on a draft
func (ll *LLMLogger) LogCheckFailure(name, reason string) {
	ll.Logf("Structural check %s: FAILED - %s\n", name, reason)
}

// LogQuestionResult logs the outcome of one plan in the batch
func (ll *LLMLogger) LogQuestionResult(sequenceNumber int, action, reason string) {
	ll.Logf("Question %d: %s - %s\n", sequenceNumber, action, reason)
}

// Close closes the log file
func (ll *LLMLogger) Close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Fprintf(ll.file, "[%s] === Batch Complete ===\n", timestamp)
		fmt.Fprintf(ll.file, "[%s] Completed: %s\n", timestamp, time.Now().Format(time.RFC3339))
		return ll.file.Close()
	}
	return nil
}
