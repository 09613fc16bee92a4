package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pelagic-ai/coracle/internal/cohere"
	"github.com/pelagic-ai/coracle/internal/completion"
	"github.com/pelagic-ai/coracle/internal/ui/tui"
)

var (
	chatModel       string
	chatPreamble    string
	chatTemperature float64
	chatPresetPath  string
	interactive     bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Send a chat completion",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runChat(cmd, args)
	},
}

func init() {
	RootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", cohere.CommandR, "Completion model")
	chatCmd.Flags().StringVar(&chatPreamble, "preamble", "", "System framing text")
	chatCmd.Flags().Float64VarP(&chatTemperature, "temperature", "t", 0, "Sampling temperature")
	chatCmd.Flags().StringVar(&chatPresetPath, "preset", "", "Preset file (yaml or json)")
	chatCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start the interactive chat TUI")
}

func runChat(cmd *cobra.Command, args []string) {
	obs := newObserver()
	defer obs.Close()

	s := getStore()
	defer s.Close()

	key, err := resolveAPIKey(s)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("No usable API key")
	}
	client := cohere.New(key)

	model := chatModel
	preamble := chatPreamble
	var temperature *float64
	if cmd.Flags().Changed("temperature") {
		temperature = &chatTemperature
	}

	var docs []completion.Document
	if chatPresetPath != "" {
		preset, err := LoadPreset(chatPresetPath)
		if err != nil {
			obs.Log().Fatal().Err(err).Msg("Failed to load preset")
		}
		// Flags win over preset values.
		if !cmd.Flags().Changed("model") && preset.Model != "" {
			model = preset.Model
		}
		if preamble == "" {
			preamble = preset.Preamble
		}
		if temperature == nil {
			temperature = preset.Temperature
		}
		for _, d := range preset.Documents {
			docs = append(docs, completion.Document{ID: d.ID, Text: d.Text})
		}
	}

	builder := client.Agent(model).Preamble(preamble).Context(docs...)
	if temperature != nil {
		builder.Temperature(*temperature)
	}
	ag := builder.Build()

	if interactive {
		send := func(ctx context.Context, prompt string, history []completion.Message) (string, error) {
			resp, err := ag.Chat(ctx, prompt, history)
			if err != nil {
				return "", err
			}
			if resp.Choice.Kind == completion.ChoiceToolCall {
				params, _ := json.Marshal(resp.Choice.ToolParams)
				return fmt.Sprintf("[tool call] %s(%s)", resp.Choice.ToolName, params), nil
			}
			return resp.Choice.Message, nil
		}

		program := tea.NewProgram(tui.NewModel("Coracle — "+model, send))
		if _, err := program.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 0 {
		obs.Log().Fatal().Msg("A prompt is required unless --interactive is set")
	}

	ctx, span := obs.StartSpan(context.Background(), "chat")
	defer span.End()

	obs.Log().Info().Str("model", model).Msg("sending chat completion")
	resp, err := ag.Prompt(ctx, args[0])
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Chat failed")
	}

	switch resp.Choice.Kind {
	case completion.ChoiceToolCall:
		params, _ := json.MarshalIndent(resp.Choice.ToolParams, "", "  ")
		fmt.Printf("tool call: %s\n%s\n", resp.Choice.ToolName, params)
	default:
		fmt.Println(resp.Choice.Message)
	}

	obs.Log().Info().
		Str("generation_id", resp.Raw.GenerationID).
		Str("finish_reason", resp.Raw.FinishReason).
		Msg("chat complete")
}
