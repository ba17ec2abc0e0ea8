// Package schema generates the JSON schemas sent to the model as the
// structured output format. Schemas are reflected from the Go types with
// github.com/swaggest/jsonschema-go so the schema and the decoder never drift.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/swaggest/jsonschema-go"
)

// Schema labels for registered types.
const (
	LabelCommitMessage = "commit-message"
)

var (
	registry   = make(map[string]any)
	registryMu sync.RWMutex
	cache      = make(map[string]json.RawMessage)
	cacheMu    sync.RWMutex
)

// Register adds a type to the registry. The schema is generated lazily by Get.
func Register(label string, v any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[label] = v

	cacheMu.Lock()
	delete(cache, label)
	cacheMu.Unlock()
}

// Get returns the schema registered under label.
func Get(label string) (json.RawMessage, error) {
	cacheMu.RLock()
	if cached, ok := cache[label]; ok {
		cacheMu.RUnlock()
		return cached, nil
	}
	cacheMu.RUnlock()

	registryMu.RLock()
	v, ok := registry[label]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown schema label: %s", label)
	}

	out, err := Generate(v)
	if err != nil {
		return nil, fmt.Errorf("generate schema for %s: %w", label, err)
	}

	cacheMu.Lock()
	cache[label] = out
	cacheMu.Unlock()

	return out, nil
}

// Labels returns the registered labels, sorted.
func Labels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	labels := make([]string, 0, len(registry))
	for label := range registry {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Generate reflects v into a self-contained JSON schema.
// Definitions are inlined because the model backend does not resolve $ref.
func Generate(v any) (json.RawMessage, error) {
	r := jsonschema.Reflector{}

	s, err := r.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	stripNullDefaults(raw)

	data, err = json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// stripNullDefaults removes "default": null entries that the reflector emits
// for zero values; grammar-constrained decoders reject them.
func stripNullDefaults(node map[string]any) {
	if d, ok := node["default"]; ok && d == nil {
		delete(node, "default")
	}

	if props, ok := node["properties"].(map[string]any); ok {
		for _, prop := range props {
			if propMap, ok := prop.(map[string]any); ok {
				stripNullDefaults(propMap)
			}
		}
	}

	if items, ok := node["items"].(map[string]any); ok {
		stripNullDefaults(items)
	}
}
