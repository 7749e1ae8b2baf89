package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/redact"
	"github.com/spf13/cobra"
)

// errNoCredential makes check exit non-zero.
var errNoCredential = errors.New("no Gemini API key configured")

func convertCmd(opts *rootOptions, newGenerator generatorFactory) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "convert [paragraph]",
		Short: "Print the tasks found in a paragraph as a JSON array",
		Long: `Sends the paragraph to Gemini and prints the resulting task titles as a
JSON array of strings. Without an argument the paragraph is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paragraph, err := readParagraph(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			gen, log, err := newGenerator(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			titles, err := gen.ConvertParagraph(cmd.Context(), paragraph)
			if err != nil {
				log.Debug("conversion failed", "error", redact.Error(err))
				category := generation.CategoryOf(err)
				return fmt.Errorf("%s (%s)", category.Message(), category)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(titles)
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the JSON output")
	return cmd
}

func checkCmd(opts *rootOptions, newGenerator generatorFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether task generation is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, _, err := newGenerator(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !gen.HasCredential() {
				fmt.Fprintln(cmd.OutOrStdout(), "task generation: unavailable")
				return errNoCredential
			}
			fmt.Fprintln(cmd.OutOrStdout(), "task generation: available")
			return nil
		},
	}
}

// readParagraph returns the argument or, without one, all of stdin.
func readParagraph(stdin io.Reader, args []string) (string, error) {
	paragraph := ""
	if len(args) == 1 {
		paragraph = args[0]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		paragraph = string(data)
	}

	if strings.TrimSpace(paragraph) == "" {
		return "", errors.New("paragraph cannot be empty")
	}
	return paragraph, nil
}
