package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// parseArguments merges --args-json with repeated --arg key=value pairs.
// Pair values stay strings; binding coerces them to the declared type.
func parseArguments(pairs []string, rawJSON string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(rawJSON) != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(rawJSON)))
		dec.UseNumber()
		if err := dec.Decode(&args); err != nil {
			return nil, fmt.Errorf("--args-json must be a JSON object: %w", err)
		}
		if args == nil {
			args = map[string]any{}
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--arg must be key=value (got %q)", pair)
		}
		args[key] = value
	}
	return args, nil
}
