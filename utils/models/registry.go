package models

import (
	"sort"
	"strings"
	"sync"
)

// ModelRegistry is a central listing of the models the agent has been
// evaluated with, per provider. Additional models can be registered at
// startup; the registry is safe for concurrent readers.
type ModelRegistry struct {
	mu     sync.RWMutex
	models map[string][]string
}

var globalRegistry = newModelRegistry()

func newModelRegistry() *ModelRegistry {
	r := &ModelRegistry{models: make(map[string][]string)}

	// Small instruct models the agent workflow was evaluated against.
	r.RegisterModels("ollama", []string{
		"qwen2.5:3b-instruct",
		"qwen2.5:1.5b-instruct",
	})
	r.RegisterModels("vllm", []string{
		"Qwen/Qwen2.5-3B-Instruct",
		"Qwen/Qwen2.5-1.5B-Instruct",
	})
	return r
}

// GetRegistry returns the global model registry.
func GetRegistry() *ModelRegistry {
	return globalRegistry
}

// RegisterModels adds models for a provider, skipping duplicates.
func (r *ModelRegistry) RegisterModels(provider string, names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if !containsFold(r.models[provider], name) {
			r.models[provider] = append(r.models[provider], name)
		}
	}
}

// KnownModel reports whether the model is registered for the provider.
func (r *ModelRegistry) KnownModel(provider, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return containsFold(r.models[provider], name)
}

// AllModels returns every registered model name, sorted, across
// providers. Used to list choices in CLI help output.
func (r *ModelRegistry) AllModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []string
	for _, names := range r.models {
		all = append(all, names...)
	}
	sort.Strings(all)
	return all
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
