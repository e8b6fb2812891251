package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// MarshalOutput renders a command's output document in the requested format.
// Defaults to YAML; "json" selects indented JSON.
func MarshalOutput(v interface{}, format string) ([]byte, error) {
	switch format {
	case "", "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output: %w", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use: yaml or json)", format)
	}
}
