package cmd

import (
	"context"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/klemjul/menta/internal/app"
	"github.com/klemjul/menta/internal/chat"
	"github.com/klemjul/menta/internal/config"
	"github.com/klemjul/menta/internal/llm"
	"github.com/klemjul/menta/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func RootCommand(app app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "menta [message]",
		Short: "Talk with Menta, a supportive mental health assistant, from the command line.",
		Args:  cobra.RangeArgs(0, 1),
		Example: `
menta   # Open the chat
menta "I had a rough day"   # Send one message and print the reply
menta --provider ollama --model llama3.2   # Chat with a local model
	`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, app)
		},
		PreRunE:      validate,
		SilenceUsage: true,
	}

	rootCmd.Flags().SortFlags = false

	rootCmd.Flags().String("provider", config.DEFAULT_PROVIDER,
		fmt.Sprintf("LLM provider to use, one of %v. (env: %s)", llm.LLMProviders, config.GetEnvWithPrefix(config.ENV_PROVIDER)))
	rootCmd.Flags().String("model", "",
		fmt.Sprintf("LLM model to use, defaults depend on the provider. (env: %s)", config.GetEnvWithPrefix(config.ENV_MODEL)))
	rootCmd.Flags().Float64("temperature", config.DEFAULT_TEMPERATURE,
		fmt.Sprintf("Sampling temperature, between 0 and 2. (env: %s)", config.GetEnvWithPrefix(config.ENV_TEMPERATURE)))
	rootCmd.Flags().Int64("max-tokens", config.DEFAULT_MAX_TOKENS,
		fmt.Sprintf("Maximum number of tokens in a reply. (env: %s)", config.GetEnvWithPrefix(config.ENV_MAX_TOKENS)))
	rootCmd.Flags().String("log-file", "",
		fmt.Sprintf("Write logs to this file, disabled when empty. (env: %s)", config.GetEnvWithPrefix(config.ENV_LOG_FILE)))
	rootCmd.Flags().Bool("debug", false,
		fmt.Sprintf("Log at debug level. (env: %s)", config.GetEnvWithPrefix(config.ENV_DEBUG)))

	viper.BindPFlag(config.ENV_PROVIDER, rootCmd.Flags().Lookup("provider"))
	viper.BindPFlag(config.ENV_MODEL, rootCmd.Flags().Lookup("model"))
	viper.BindPFlag(config.ENV_TEMPERATURE, rootCmd.Flags().Lookup("temperature"))
	viper.BindPFlag(config.ENV_MAX_TOKENS, rootCmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag(config.ENV_LOG_FILE, rootCmd.Flags().Lookup("log-file"))
	viper.BindPFlag(config.ENV_DEBUG, rootCmd.Flags().Lookup("debug"))

	viper.SetEnvPrefix(config.ENV_PREFIX)
	viper.AutomaticEnv()

	viper.BindEnv(config.ENV_OPENAI_API_KEY, config.ENV_OPENAI_API_KEY)
	viper.BindEnv(config.ENV_ANTHROPIC_API_KEY, config.ENV_ANTHROPIC_API_KEY)
	viper.BindEnv(config.ENV_OLLAMA_ENDPOINT, config.ENV_OLLAMA_ENDPOINT)

	return rootCmd
}

func validate(cmd *cobra.Command, args []string) error {
	provider := viper.GetString(config.ENV_PROVIDER)
	if !slices.Contains(llm.LLMProviders, llm.LLMProvider(provider)) {
		return fmt.Errorf("invalid provider '%s'. Valid providers are: %v", provider, llm.LLMProviders)
	}

	temperature := viper.GetFloat64(config.ENV_TEMPERATURE)
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", temperature)
	}

	maxTokens := viper.GetInt64(config.ENV_MAX_TOKENS)
	if maxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}

	return nil
}

// apiKey is read as is, a missing key fails at request time.
func apiKey(provider llm.LLMProvider) string {
	switch provider {
	case llm.LLMProviderOpenAI:
		return viper.GetString(config.ENV_OPENAI_API_KEY)
	case llm.LLMProviderAnthropic:
		return viper.GetString(config.ENV_ANTHROPIC_API_KEY)
	default:
		return ""
	}
}

func run(cmd *cobra.Command, args []string, app app.App) error {
	log, closeLog, err := app.Log().NewLogger(viper.GetString(config.ENV_LOG_FILE), viper.GetBool(config.ENV_DEBUG))
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}
	defer closeLog()

	provider := llm.LLMProvider(viper.GetString(config.ENV_PROVIDER))
	model := viper.GetString(config.ENV_MODEL)

	client, err := app.LLM().NewClient(provider, llm.LLMClientOptions{
		Model:       model,
		APIKey:      apiKey(provider),
		Endpoint:    viper.GetString(config.ENV_OLLAMA_ENDPOINT),
		Temperature: llm.Float(viper.GetFloat64(config.ENV_TEMPERATURE)),
		MaxTokens:   viper.GetInt64(config.ENV_MAX_TOKENS),
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %v", err)
	}

	session := chat.NewSession(chat.NewCompleter(client), log)
	log.Info("session started",
		zap.String("session", session.ID()),
		zap.String("provider", string(provider)),
		zap.String("model", model),
		zap.Bool("interactive", len(args) == 0))

	if len(args) == 1 {
		req, ok := session.Submit(args[0])
		if !ok {
			return fmt.Errorf("message must not be empty")
		}
		turn := session.Reply(cmd.Context(), req)
		session.Resolve(turn)

		formattedRes, err := app.Format().FormatMarkdown(turn.Text)
		if err != nil {
			return fmt.Errorf("failed to format response: %v", err)
		}
		cmd.OutOrStdout().Write([]byte(formattedRes))
		return nil
	}

	TUIModel := app.TUI().InitialModel(ui.InitialModelOptions{
		Title:   ui.CHAT_TITLE,
		Session: session,
		Respond: makeBotResponder(session, cmd.Context()),
	})
	if _, err := app.TUI().Run(TUIModel); err != nil {
		return fmt.Errorf("error running interactive mode: %v", err)
	}
	log.Info("session ended", zap.Int("turns", len(session.Turns())))
	return nil
}

func makeBotResponder(session *chat.Session, ctx context.Context) func(chat.Request) tea.Cmd {
	return func(req chat.Request) tea.Cmd {
		return func() tea.Msg {
			return session.Reply(ctx, req)
		}
	}
}
