package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"personality-quiz/internal/config"
	"personality-quiz/internal/lib/slogcustom"
)

var (
	port       string
	configPath string
	logLevel   = new(slog.LevelVar)
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = config.DefaultPath
	}

	cmd := &cobra.Command{
		Use:          "personality-quiz",
		Short:        "Personality quiz player, server and authoring tool",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slogcustom.NewCustomHandler(cmd.ErrOrStderr(), logLevel)))
		},
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on (overrides server.port)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewPlayCmd(&configPath))
	cmd.AddCommand(NewListCmd(&configPath))
	cmd.AddCommand(NewAuthorCmd())
	cmd.AddCommand(NewPublishCmd(&configPath))
	return cmd
}

// loadConfig reads the config and applies its log level.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logLevel.Set(cfg.LogLevel())
	return cfg, nil
}
