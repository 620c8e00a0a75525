package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"personality-quiz/internal/authoring"
	"personality-quiz/internal/domain"
)

// NewAuthorCmd groups the offline authoring tools.
func NewAuthorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "author",
		Short: "Create and check quiz documents",
	}
	cmd.AddCommand(newAuthorValidateCmd(), newAuthorBuildCmd(), newAuthorNewCmd())
	return cmd
}

func newAuthorValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a quiz document against the editor rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, name, err := readDefinition(args[0])
			if err != nil {
				return err
			}
			problems := authoring.Validate(authoring.FromDefinition(def, name))
			if len(problems) == 0 {
				if err := domain.CheckPlayable(def); err != nil {
					problems = append(problems, err.Error())
				}
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintln(cmd.OutOrStdout(), "-", p)
				}
				return &domain.ValidationError{Problems: problems}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions, %d results)\n", args[0], len(def.Questions), def.Results.Len())
			return nil
		},
	}
}

func newAuthorBuildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <draft.json>",
		Short: "Build a quiz document from an editor draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var draft authoring.Draft
			if err := json.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("parse draft: %w", err)
			}
			def, err := authoring.Build(draft)
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems {
						fmt.Fprintln(cmd.ErrOrStderr(), "-", p)
					}
				}
				return err
			}
			doc, err := authoring.Encode(def)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(doc)
				return err
			}
			if output == "" {
				output = strings.TrimSpace(draft.Filename) + ".json"
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path, - for stdout (default <filename>.json)")
	return cmd
}

func newAuthorNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Print an empty editor draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(authoring.NewDraft())
		},
	}
}

// readDefinition parses a JSON or YAML document; the name is the file's
// base name without extension.
func readDefinition(path string) (domain.QuizDefinition, string, error) {
	ext := filepath.Ext(path)
	format, ok := domain.FormatFromExt(ext)
	if !ok {
		return domain.QuizDefinition{}, "", fmt.Errorf("%s: unsupported extension %q", path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuizDefinition{}, "", err
	}
	def, err := domain.ParseDefinition(data, format)
	if err != nil {
		return domain.QuizDefinition{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return def, strings.TrimSuffix(filepath.Base(path), ext), nil
}
