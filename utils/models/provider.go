package models

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gmxagent/gmxagent/utils/config"
)

// Provider is a local inference backend the agent can send prompts to.
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	SendPrompt(modelName string, prompt string) (string, error)
	SetVerbose(verbose bool)
}

// ollamaTagsResponse is the shape of Ollama's /api/tags listing.
type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// isModelAvailableOnOllama checks the local Ollama instance for the
// model, matching the exact name, the base name before a :tag, or a
// name prefix followed by a tag or version separator.
func isModelAvailableOnOllama(endpoint, modelName string) bool {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(endpoint + "/api/tags")
	if err != nil {
		config.DebugLog("[Provider] Failed to connect to Ollama: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.DebugLog("[Provider] Ollama API returned status %d", resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		config.DebugLog("[Provider] Failed to read Ollama response: %v", err)
		return false
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		config.DebugLog("[Provider] Failed to parse Ollama response: %v", err)
		return false
	}

	want := strings.ToLower(modelName)
	for _, model := range tags.Models {
		have := strings.ToLower(model.Name)
		if have == want {
			return true
		}
		if base, _, found := strings.Cut(have, ":"); found && base == want {
			return true
		}
		if strings.HasPrefix(have, want) {
			rest := have[len(want):]
			if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, ".") {
				return true
			}
		}
	}

	config.DebugLog("[Provider] Model %s not found on Ollama", modelName)
	return false
}

// DetectProvider picks a provider for the model name, preferring an
// Ollama instance that actually has the model pulled, then a running
// vLLM server, and falling back to Ollama so the error the user sees
// comes from the generate call itself.
func DetectProvider(cfg *config.EnvConfig, modelName string) Provider {
	ollama := NewOllamaProvider(cfg.OllamaEndpoint)
	if isModelAvailableOnOllama(cfg.OllamaEndpoint, modelName) {
		config.DebugLog("[Provider] Using Ollama for model %s", modelName)
		return ollama
	}

	vllm := NewVLLMProvider(cfg.VLLMEndpoint)
	if vllm.hasModel(modelName) {
		config.DebugLog("[Provider] Using vLLM for model %s", modelName)
		return vllm
	}

	config.DebugLog("[Provider] No local provider confirmed for %s, defaulting to Ollama", modelName)
	return ollama
}
