package papergen

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the slice of the OpenAI client the pipeline depends on.
// *openai.Client satisfies it; tests substitute stubs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// questionSchema is the tool-parameter schema for a single drafted question.
var questionSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"question": map[string]interface{}{
			"type":        "string",
			"description": "The full question stem, including all statements if any",
		},
		"options": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Exactly 4 multiple choice options",
		},
		"answer": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"A", "B", "C", "D"},
			"description": "Letter of the correct option",
		},
	},
	"required": []string{"question", "options", "answer"},
}

// forcedTool builds a single-function tool set plus the matching tool choice
// so the model must answer through the function call.
func forcedTool(name, description string, parameters map[string]interface{}) ([]openai.Tool, openai.ToolChoice) {
	tools := []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        name,
				Description: description,
				Parameters:  parameters,
			},
		},
	}
	choice := openai.ToolChoice{
		Type:     openai.ToolTypeFunction,
		Function: openai.ToolFunction{Name: name},
	}
	return tools, choice
}

// toolArguments extracts the JSON arguments of the expected tool call from
// a chat completion response.
func toolArguments(resp openai.ChatCompletionResponse, name string) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return "", fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != name {
		return "", fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}
	return toolCall.Function.Arguments, nil
}

// decodeToolArguments unmarshals tool-call arguments into out.
func decodeToolArguments(resp openai.ChatCompletionResponse, name string, out interface{}) error {
	args, err := toolArguments(resp, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(args), out); err != nil {
		return fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return nil
}
