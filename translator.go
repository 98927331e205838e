package papergen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Translator renders a validated question into the secondary language.
// One attempt only: a failed translation drops the question from the batch
// rather than blocking it, because review and storage require both
// renderings to be present.
type Translator struct {
	client ChatCompleter
	usage  *UsageLedger
	logger *LLMLogger
}

// NewTranslator creates a translator backed by the given chat client.
func NewTranslator(client ChatCompleter, usage *UsageLedger) *Translator {
	return &Translator{client: client, usage: usage}
}

// SetClient rebinds the remote client for a new run.
func (t *Translator) SetClient(client ChatCompleter) {
	t.client = client
}

// SetLogger attaches a batch log for LLM traffic.
func (t *Translator) SetLogger(logger *LLMLogger) {
	t.logger = logger
}

const translatorSystemPrompt = `You are an expert UPSC translation specialist converting English exam questions into high-quality, standard Hindi.

Guidelines:
- Use official, standard Hindi vocabulary recognized by UPSC (e.g. 'Judicial Review' as 'न्यायिक पुनर्विलोकन', 'Fiscal Deficit' as 'राजकोषीय घाटा', 'Bill' as 'विधेयक').
- Preserve the question's structure exactly: main statement, numbered statements, and option order. Option (a) in Hindi must correspond to option (a) in English.
- Translate every part of the question and all options; keep the formal, authoritative tone.
- Do not use English abbreviations in the Hindi output.
- Use the submit_translation tool to return the translation.`

var translationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"question": map[string]interface{}{
			"type":        "string",
			"description": "Hindi translation of the question stem, including all statements",
		},
		"options": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Hindi translations of the 4 options, in the same order",
		},
	},
	"required": []string{"question", "options"},
}

// Translate renders the stem and its 4 options into Hindi.
func (t *Translator) Translate(ctx context.Context, stem string, options []string) (*Translation, error) {
	var optionsText strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&optionsText, "(%c) %s\n", 'a'+i, opt)
	}

	userPrompt := fmt.Sprintf("## Translate the question below into Hindi.\n\n### Question (English)\n%s\n\n### Options (English)\n%s", stem, optionsText.String())
	if t.logger != nil {
		t.logger.LogLLMRequest("Translator", userPrompt)
	}

	tools, toolChoice := forcedTool("submit_translation", "Submit the Hindi translation of the question", translationSchema)

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translatorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Tools:      tools,
		ToolChoice: toolChoice,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	t.usage.Add(resp.Usage)

	var translation Translation
	if err := decodeToolArguments(resp, "submit_translation", &translation); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}
	if len(translation.Options) != len(options) {
		return nil, fmt.Errorf("%w: expected %d translated options, got %d", ErrTranslationFailed, len(options), len(translation.Options))
	}

	if t.logger != nil {
		t.logger.LogLLMResponse("Translator", translation.Stem)
	}
	return &translation, nil
}
