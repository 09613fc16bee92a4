package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a reusable chat configuration loaded from a file: framing text,
// sampling temperature and static context documents.
type Preset struct {
	Model       string          `json:"model" yaml:"model"`
	Preamble    string          `json:"preamble" yaml:"preamble"`
	Temperature *float64        `json:"temperature" yaml:"temperature"`
	Documents   []PresetDocument `json:"documents" yaml:"documents"`
}

// PresetDocument is one static context document.
type PresetDocument struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// LoadPreset reads a preset from a JSON or YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var preset Preset
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &preset); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON preset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &preset); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML preset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format: %s (use .json or .yaml)", ext)
	}

	return &preset, nil
}
