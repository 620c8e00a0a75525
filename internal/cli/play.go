package cli

import (
	"github.com/spf13/cobra"

	"personality-quiz/internal/app"
	"personality-quiz/internal/tui"
)

// NewPlayCmd plays a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "play [name]",
		Short: "Play a quiz in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			var cleanup closers
			defer cleanup.Close()
			quizRepo, err := newQuizRepository(cmd.Context(), cfg, &cleanup)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			service := app.NewQuizService(quizRepo, cfg.Quiz.Default)
			return tui.Run(cmd.Context(), service.Loader(name), cmd.InOrStdin(), cmd.OutOrStdout(), tui.Options{NoColor: noColor})
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours")
	return cmd
}
