package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	ciMode     bool
	apiKeyFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "coracle",
	Short: "Cohere command-line toolkit",
	Long: `Coracle talks to the Cohere API from the terminal: chat completions
with tool support, batch embeddings, and a local store for configuration
and embedding runs.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "CI mode: JSON log output")
	RootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Cohere API key (overrides env and stored config)")
}
