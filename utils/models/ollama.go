package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gmxagent/gmxagent/utils/retry"
)

// OllamaProvider sends prompts to a local Ollama instance.
type OllamaProvider struct {
	endpoint string
	verbose  bool
	mu       sync.Mutex
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaProvider creates a provider against the given endpoint
// (e.g. http://localhost:11434).
func NewOllamaProvider(endpoint string) *OllamaProvider {
	return &OllamaProvider{endpoint: endpoint}
}

// Name returns the provider name.
func (o *OllamaProvider) Name() string {
	return "ollama"
}

// debugf prints debug information if verbose mode is enabled (thread-safe).
func (o *OllamaProvider) debugf(format string, args ...interface{}) {
	if o.verbose {
		o.mu.Lock()
		defer o.mu.Unlock()
		log.Printf("[DEBUG][Ollama] "+format+"\n", args...)
	}
}

// SupportsModel accepts any model name: Ollama serves whatever the user
// has pulled, and availability is checked against the running instance.
func (o *OllamaProvider) SupportsModel(modelName string) bool {
	return true
}

// SendPrompt sends the prompt to the model and returns the full
// response text. Generation runs at low temperature: the output is
// command text to be parsed, not prose.
func (o *OllamaProvider) SendPrompt(modelName string, prompt string) (string, error) {
	o.debugf("Sending prompt to model %s (%d characters)", modelName, len(prompt))

	reqBody := ollamaRequest{
		Model:   modelName,
		Prompt:  prompt,
		Stream:  false,
		Options: map[string]any{"temperature": 0.1},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	return retry.Do(func() (string, error) {
		client := &http.Client{Timeout: 120 * time.Second}
		resp, err := client.Post(o.endpoint+"/api/generate", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("error calling Ollama API: %w (is Ollama running?)", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			return "", fmt.Errorf("Ollama API error (status %d): %s", resp.StatusCode, string(bodyBytes))
		}

		// Responses arrive as a JSON stream even with Stream false on
		// some versions; accumulate until done.
		var full strings.Builder
		decoder := json.NewDecoder(resp.Body)
		for {
			var chunk ollamaResponse
			if err := decoder.Decode(&chunk); err != nil {
				if err == io.EOF {
					break
				}
				return "", fmt.Errorf("error decoding response: %w", err)
			}
			full.WriteString(chunk.Response)
			if chunk.Done {
				break
			}
		}
		o.debugf("Received %d characters from %s", full.Len(), modelName)
		return full.String(), nil
	}, retry.IsTransient, retry.DefaultConfig)
}

// SetVerbose enables or disables verbose mode.
func (o *OllamaProvider) SetVerbose(verbose bool) {
	o.verbose = verbose
}
