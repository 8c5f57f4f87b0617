package models

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gmxagent/gmxagent/utils/retry"
)

// VLLMProvider sends prompts to a locally served vLLM instance through
// its OpenAI-compatible API.
type VLLMProvider struct {
	endpoint string
	verbose  bool
	mu       sync.Mutex
}

// NewVLLMProvider creates a provider against the given endpoint
// (e.g. http://localhost:8000).
func NewVLLMProvider(endpoint string) *VLLMProvider {
	return &VLLMProvider{endpoint: endpoint}
}

// Name returns the provider name.
func (v *VLLMProvider) Name() string {
	return "vllm"
}

// debugf prints debug information if verbose mode is enabled (thread-safe).
func (v *VLLMProvider) debugf(format string, args ...interface{}) {
	if v.verbose {
		v.mu.Lock()
		defer v.mu.Unlock()
		log.Printf("[DEBUG][vLLM] "+format+"\n", args...)
	}
}

// client builds an OpenAI-compatible client pointed at the vLLM server.
// vLLM ignores the API key but the client requires one.
func (v *VLLMProvider) client() *openai.Client {
	cfg := openai.DefaultConfig("EMPTY")
	cfg.BaseURL = v.endpoint + "/v1"
	return openai.NewClientWithConfig(cfg)
}

// SupportsModel accepts any model name; availability is confirmed
// against the server's model listing.
func (v *VLLMProvider) SupportsModel(modelName string) bool {
	return true
}

// hasModel checks the server's /v1/models listing for the model.
func (v *VLLMProvider) hasModel(modelName string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := v.client().ListModels(ctx)
	if err != nil {
		v.debugf("Failed to list models: %v", err)
		return false
	}
	for _, model := range list.Models {
		if strings.EqualFold(model.ID, modelName) {
			return true
		}
	}
	return false
}

// SendPrompt sends the prompt through the chat completions API and
// returns the response text.
func (v *VLLMProvider) SendPrompt(modelName string, prompt string) (string, error) {
	v.debugf("Sending prompt to model %s (%d characters)", modelName, len(prompt))

	return retry.Do(func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		resp, err := v.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       modelName,
			Temperature: 0.1,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("error calling vLLM API: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("vLLM returned no choices for model %s", modelName)
		}
		content := resp.Choices[0].Message.Content
		v.debugf("Received %d characters from %s", len(content), modelName)
		return content, nil
	}, retry.IsTransient, retry.DefaultConfig)
}

// SetVerbose enables or disables verbose mode.
func (v *VLLMProvider) SetVerbose(verbose bool) {
	v.verbose = verbose
}
