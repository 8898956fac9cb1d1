package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewGenerateCommand creates the generate command group.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate text from videos",
		Long:    "Generate open-ended text, summaries, chapters, highlights and gists from indexed videos",
	}

	cmd.AddCommand(newGenerateTextCommand())
	cmd.AddCommand(newGenerateSummarizeCommand())
	cmd.AddCommand(newGenerateGistCommand())

	return cmd
}

func newGenerateTextCommand() *cobra.Command {
	var (
		prompt      string
		temperature float64
	)

	cmd := &cobra.Command{
		Use:   "text VIDEO_ID",
		Short: "Generate text from a prompt",
		Long:  "Generate open-ended text about a video from a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			request := &twelvelabs.GenerateRequest{
				VideoID: args[0],
				Prompt:  prompt,
			}

			if cmd.Flags().Changed("temperature") {
				request.Temperature = &temperature
			}

			result, err := client.Generate().Text(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to generate text: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.GenerateResult]{
				RenderTable: func(w io.Writer, result *twelvelabs.GenerateResult) error {
					_, err := fmt.Fprintln(w, result.Data)

					return err
				},
			}

			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "instruction for the model")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature between 0 and 1")

	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func newGenerateSummarizeCommand() *cobra.Command {
	var (
		summaryType string
		prompt      string
	)

	cmd := &cobra.Command{
		Use:   "summarize VIDEO_ID",
		Short: "Summarize a video",
		Long:  "Produce a summary, chapters or highlights of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			result, err := client.Generate().Summarize(cmd.Context(), &twelvelabs.SummarizeRequest{
				VideoID: args[0],
				Type:    twelvelabs.SummaryType(summaryType),
				Prompt:  prompt,
			})
			if err != nil {
				return fmt.Errorf("failed to summarize video: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.SummarizeResult]{
				RenderTable: renderSummary,
			}

			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&summaryType, "type", "t", string(twelvelabs.SummaryTypeSummary), "summary, chapter or highlight")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "optional instruction for the model")

	return cmd
}

func renderSummary(w io.Writer, result *twelvelabs.SummarizeResult) error {
	switch {
	case len(result.Chapters) > 0:
		rows := make([][]string, 0, len(result.Chapters))
		for _, chapter := range result.Chapters {
			rows = append(rows, []string{
				strconv.Itoa(chapter.Number),
				formatSeconds(chapter.Start),
				formatSeconds(chapter.End),
				chapter.Title,
				chapter.Summary,
			})
		}

		return renderTable(w, []string{"#", "Start", "End", "Title", "Summary"}, rows)
	case len(result.Highlights) > 0:
		rows := make([][]string, 0, len(result.Highlights))
		for _, highlight := range result.Highlights {
			rows = append(rows, []string{
				formatSeconds(highlight.Start),
				formatSeconds(highlight.End),
				highlight.Text,
				highlight.Summary,
			})
		}

		return renderTable(w, []string{"Start", "End", "Highlight", "Summary"}, rows)
	default:
		_, err := fmt.Fprintln(w, result.Summary)

		return err
	}
}

func newGenerateGistCommand() *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "gist VIDEO_ID",
		Short: "Generate a title, topics and hashtags",
		Long:  "Generate a structured title, topic list and hashtags for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			request := &twelvelabs.GistRequest{VideoID: args[0]}
			for _, gistType := range types {
				request.Types = append(request.Types, twelvelabs.GistType(strings.TrimSpace(gistType)))
			}

			result, err := client.Generate().Gist(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to generate gist: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.GistResult]{
				RenderTable: func(w io.Writer, result *twelvelabs.GistResult) error {
					return renderProperties(w, [][]string{
						{"Title", valueOrNA(result.Title)},
						{"Topics", valueOrNA(strings.Join(result.Topics, ", "))},
						{"Hashtags", valueOrNA(strings.Join(result.Hashtags, " "))},
					})
				},
			}

			return renderer.Render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t",
		[]string{string(twelvelabs.GistTypeTitle), string(twelvelabs.GistTypeTopic), string(twelvelabs.GistTypeHashtag)},
		"gist fields to generate")

	return cmd
}
