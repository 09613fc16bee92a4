package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/pelagic-ai/coracle/internal/cohere"
)

var (
	embedModelName string
	embedInputType string
	embedGlob      string
	embedSave      bool
)

var embedCmd = &cobra.Command{
	Use:   "embed [text ...]",
	Short: "Embed documents",
	Long: `Embed the given texts, plus the contents of any files matching --glob.
Batches larger than the model's per-request cap are chunked automatically.`,
	Run: func(cmd *cobra.Command, args []string) {
		runEmbed(args)
	},
}

func init() {
	RootCmd.AddCommand(embedCmd)
	embedCmd.Flags().StringVarP(&embedModelName, "model", "m", "embed-english-v3.0", "Embedding model")
	embedCmd.Flags().StringVar(&embedInputType, "input-type", cohere.InputSearchDocument, "Embedding input type")
	embedCmd.Flags().StringVar(&embedGlob, "glob", "", "Embed contents of files matching a glob pattern")
	embedCmd.Flags().BoolVar(&embedSave, "save", false, "Persist vectors to the local store")
}

func runEmbed(args []string) {
	obs := newObserver()
	defer obs.Close()

	s := getStore()
	defer s.Close()

	model, err := cohere.ParseEmbedModel(embedModelName)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Unknown embedding model")
	}

	docs := append([]string{}, args...)
	if embedGlob != "" {
		matches, err := doublestar.FilepathGlob(embedGlob)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Bad glob pattern")
		}
		for _, path := range matches {
			data, err := os.ReadFile(path) // #nosec G304
			if err != nil {
				obs.Log().Warn().Str("path", path).Err(err).Msg("skipping unreadable file")
				continue
			}
			docs = append(docs, string(data))
		}
	}
	if len(docs) == 0 {
		obs.Log().Fatal().Msg("Nothing to embed: pass texts or --glob")
	}

	key, err := resolveAPIKey(s)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("No usable API key")
	}
	client := cohere.New(key)

	ctx, span := obs.StartSpan(context.Background(), "embed")
	defer span.End()

	obs.Log().Info().
		Str("model", model.String()).
		Int("documents", len(docs)).
		Msg("embedding documents")

	embs, err := client.Embeddings(model, embedInputType).Documents(docs...).Build(ctx)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Embedding failed")
	}

	if embedSave {
		if err := s.SaveEmbeddings(model.String(), embedInputType, embs); err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to persist embeddings")
		}
	}

	for _, emb := range embs {
		fmt.Printf("%-43s  %d dims\n", preview(emb.Document), len(emb.Vec))
	}
}
