package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelagic-ai/coracle/internal/cohere"
)

var (
	searchModelName string
	searchLimit     int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search saved embeddings",
	Long: `Embed the query and rank vectors previously saved with "embed --save"
by cosine similarity. The query must use the same model as the saved vectors.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(args[0])
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchModelName, "model", "m", "embed-english-v3.0", "Embedding model")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "Number of results")
}

func runSearch(query string) {
	obs := newObserver()
	defer obs.Close()

	s := getStore()
	defer s.Close()

	model, err := cohere.ParseEmbedModel(searchModelName)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Unknown embedding model")
	}

	key, err := resolveAPIKey(s)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("No usable API key")
	}
	client := cohere.New(key)

	ctx, span := obs.StartSpan(context.Background(), "search")
	defer span.End()

	embs, err := client.EmbeddingModel(model, cohere.InputSearchQuery).
		EmbedDocuments(ctx, []string{query})
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Failed to embed query")
	}

	results, err := s.Nearest(embs[0].Vec, searchLimit)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Search failed")
	}
	if len(results) == 0 {
		fmt.Println("No saved embeddings. Run `coracle embed --save` first.")
		return
	}

	for _, r := range results {
		fmt.Printf("%.4f  %s\n", r.Similarity, preview(r.Document))
	}
}
