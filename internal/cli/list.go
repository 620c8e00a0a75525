package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"personality-quiz/internal/config"
	"personality-quiz/internal/infra/file"
)

// NewListCmd prints the quiz names the configured source can serve.
func NewListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the quizzes available from the configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			var cleanup closers
			defer cleanup.Close()
			names, err := listQuizzes(cmd.Context(), cfg, &cleanup)
			if err != nil {
				return err
			}
			for _, name := range names {
				marker := "  "
				if name == cfg.Quiz.Default {
					marker = "* "
				}
				fmt.Fprintln(cmd.OutOrStdout(), marker+name)
			}
			return nil
		},
	}
}

func listQuizzes(ctx context.Context, cfg config.Config, cleanup *closers) ([]string, error) {
	loader, err := newQuizLoader(ctx, cfg, cleanup)
	if err != nil {
		return nil, err
	}
	switch l := loader.(type) {
	case *file.Loader:
		return l.List()
	case interface {
		Names(context.Context) ([]string, error)
	}:
		return l.Names(ctx)
	}
	return nil, fmt.Errorf("quiz.source %q cannot list quizzes", cfg.Quiz.Source)
}
