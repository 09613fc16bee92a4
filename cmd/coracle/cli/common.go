package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelagic-ai/coracle/internal/credential"
	"github.com/pelagic-ai/coracle/internal/observe"
	"github.com/pelagic-ai/coracle/internal/store"
)

const apiKeyConfig = "cohere.api_key"

func newObserver() *observe.Observer {
	return observe.New(os.Stdout, observe.Options{JSON: ciMode, Verbose: verbose})
}

func getStore() store.Storage {
	home, _ := os.UserHomeDir()
	s, err := store.NewSQLiteStore(filepath.Join(home, ".coracle", "coracle.db"))
	if err != nil {
		fmt.Printf("Failed to init store: %v\n", err)
		os.Exit(1)
	}
	return s
}

// resolveAPIKey prefers the --api-key flag, then COHERE_API_KEY, then the
// stored (encrypted) config value.
func resolveAPIKey(s store.Storage) (string, error) {
	if apiKeyFlag != "" {
		return apiKeyFlag, nil
	}
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		return key, nil
	}

	stored, err := s.GetConfig(apiKeyConfig)
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", fmt.Errorf("no API key configured: use --api-key, COHERE_API_KEY, or `coracle config set %s <key>`", apiKeyConfig)
	}

	keyring, err := credential.NewKeyring()
	if err != nil {
		return "", err
	}
	return keyring.Open(stored)
}

// isSecretKey reports whether a config key holds a credential.
func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".api_key")
}

// preview renders a document for log output: first line, clipped.
func preview(doc string) string {
	line, _, _ := strings.Cut(doc, "\n")
	if len(line) > 40 {
		return line[:40] + "..."
	}
	return line
}
