package papergen

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateSuccess(t *testing.T) {
	var captured openai.ChatCompletionRequest
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		captured = req
		return toolResponse(t, "submit_translation", Translation{
			Stem:    "भारत का संविधान कब लागू हुआ?",
			Options: []string{"26 जनवरी 1950", "15 अगस्त 1947", "26 नवंबर 1949", "9 दिसंबर 1946"},
		}), nil
	}}

	tr := NewTranslator(client, NewUsageLedger())
	translation, err := tr.Translate(context.Background(),
		"When did the Constitution of India come into force?",
		[]string{"26 January 1950", "15 August 1947", "26 November 1949", "9 December 1946"})
	require.NoError(t, err)
	require.Len(t, translation.Options, 4)
	assert.Equal(t, "भारत का संविधान कब लागू हुआ?", translation.Stem)

	// Options go out lettered so the model preserves their order.
	assert.Contains(t, userPromptOf(captured), "(a) 26 January 1950")
	assert.Contains(t, userPromptOf(captured), "(d) 9 December 1946")
}

func TestTranslateWrapsRemoteError(t *testing.T) {
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, errors.New("timeout")
	}}

	tr := NewTranslator(client, NewUsageLedger())
	_, err := tr.Translate(context.Background(), "stem", []string{"a", "b", "c", "d"})
	require.ErrorIs(t, err, ErrTranslationFailed)
}

func TestTranslateRejectsOptionCountMismatch(t *testing.T) {
	client := &stubChatClient{fn: func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return toolResponse(t, "submit_translation", Translation{
			Stem:    "प्रश्न",
			Options: []string{"एक", "दो"},
		}), nil
	}}

	tr := NewTranslator(client, NewUsageLedger())
	_, err := tr.Translate(context.Background(), "stem", []string{"a", "b", "c", "d"})
	require.ErrorIs(t, err, ErrTranslationFailed)
	assert.Contains(t, err.Error(), "expected 4 translated options")
}
