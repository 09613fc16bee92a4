package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadPreset_YAML(t *testing.T) {
	path := writeTempFile(t, "preset.yaml", `
model: command-r-plus
preamble: Answer like a pirate.
temperature: 0.8
documents:
  - id: d1
    text: Ships have keels.
`)

	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if preset.Model != "command-r-plus" {
		t.Errorf("model = %q", preset.Model)
	}
	if preset.Preamble != "Answer like a pirate." {
		t.Errorf("preamble = %q", preset.Preamble)
	}
	if preset.Temperature == nil || *preset.Temperature != 0.8 {
		t.Errorf("temperature = %v", preset.Temperature)
	}
	if len(preset.Documents) != 1 || preset.Documents[0].ID != "d1" {
		t.Errorf("documents = %v", preset.Documents)
	}
}

func TestLoadPreset_JSON(t *testing.T) {
	path := writeTempFile(t, "preset.json", `{
		"model": "command-r",
		"preamble": "Be terse.",
		"documents": [{"id": "d2", "text": "context"}]
	}`)

	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if preset.Model != "command-r" || preset.Preamble != "Be terse." {
		t.Errorf("unexpected preset: %+v", preset)
	}
	if preset.Temperature != nil {
		t.Errorf("absent temperature must stay nil, got %v", *preset.Temperature)
	}
}

func TestLoadPreset_UnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "preset.toml", `model = "command-r"`)

	_, err := LoadPreset(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported preset format") {
		t.Errorf("expected an unsupported format error, got %v", err)
	}
}

func TestLoadPreset_MissingFile(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"chat": false, "embed": false, "search": false, "config": false}
	for _, cmd := range RootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}

	var haveSet, haveGet bool
	for _, cmd := range configCmd.Commands() {
		switch cmd.Name() {
		case "set":
			haveSet = true
		case "get":
			haveGet = true
		}
	}
	if !haveSet || !haveGet {
		t.Error("config must expose set and get")
	}
}

func TestIsSecretKey(t *testing.T) {
	testCases := []struct {
		key  string
		want bool
	}{
		{"cohere.api_key", true},
		{"other.api_key", true},
		{"cohere.base_url", false},
		{"api_key_backup", false},
	}

	for _, tc := range testCases {
		if got := isSecretKey(tc.key); got != tc.want {
			t.Errorf("isSecretKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestPreview(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"multi-line", "first line\nsecond line", "first line"},
		{"clipped", strings.Repeat("a", 50), strings.Repeat("a", 40) + "..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := preview(tc.in); got != tc.want {
				t.Errorf("preview = %q, want %q", got, tc.want)
			}
		})
	}
}
