package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewSearchCommand creates the search command group.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search indexed videos",
		Long:  "Run natural language searches against an index and page through the clips",
	}

	cmd.AddCommand(newSearchQueryCommand())
	cmd.AddCommand(newSearchPageCommand())

	return cmd
}

// searchOutput is the rendered form of one or more result pages.
type searchOutput struct {
	Clips         []twelvelabs.Clip `json:"data"                      yaml:"data"`
	TotalResults  int               `json:"total_results"             yaml:"total_results"`
	NextPageToken string            `json:"next_page_token,omitempty" yaml:"next_page_token,omitempty"`
}

func renderSearchOutput(w io.Writer, output *searchOutput) error {
	renderer := &OutputRenderer[*searchOutput]{
		RenderTable: func(w io.Writer, output *searchOutput) error {
			if len(output.Clips) == 0 {
				_, _ = fmt.Fprintln(w, "No matching clips")

				return nil
			}

			rows := make([][]string, 0, len(output.Clips))
			for _, clip := range output.Clips {
				rows = append(rows, []string{
					clip.VideoID,
					fmt.Sprintf(constants.ScoreFormat, clip.Score),
					formatSeconds(clip.Start),
					formatSeconds(clip.End),
					valueOrNA(string(clip.Confidence)),
				})
			}

			err := renderTable(w, []string{"Video", "Score", "Start", "End", "Confidence"}, rows)
			if err != nil {
				return err
			}

			if output.NextPageToken != "" {
				_, _ = fmt.Fprintf(w, "\nMore results: twelvelabs search page %s\n", output.NextPageToken)
			}

			return nil
		},
	}

	return renderer.Render(w, output)
}

func searchOptions(values []string) []twelvelabs.SearchOption {
	options := make([]twelvelabs.SearchOption, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			options = append(options, twelvelabs.SearchOption(value))
		}
	}

	return options
}

func newSearchQueryCommand() *cobra.Command {
	var (
		indexID   string
		query     string
		options   []string
		limit     int
		all       bool
		threshold string
		groupBy   string
		operator  string
		filter    string
	)

	cmd := &cobra.Command{
		Use:   "query [TEXT]",
		Short: "Search an index",
		Long:  "Search an index by text, metadata filter, or both",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query = args[0]
			}

			request := &twelvelabs.SearchRequest{
				IndexID:   indexID,
				Query:     query,
				Options:   searchOptions(options),
				PageLimit: limit,
				Threshold: twelvelabs.Threshold(threshold),
				GroupBy:   twelvelabs.GroupBy(groupBy),
				Operator:  twelvelabs.Operator(operator),
			}

			if filter != "" {
				err := json.Unmarshal([]byte(filter), &request.Filter)
				if err != nil {
					return fmt.Errorf("failed to parse filter: %w", err)
				}
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			cursor, err := client.Search().Query(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to search: %w", err)
			}

			output := &searchOutput{}

			if all {
				clips, err := cursor.All(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch result pages: %w", err)
				}

				output.Clips = clips
				output.TotalResults = len(clips)
			} else {
				page := cursor.Page()
				output.Clips = page.Clips
				output.TotalResults = page.PageInfo.TotalResults
				output.NextPageToken = page.NextPageToken()
			}

			return renderSearchOutput(cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index to search")
	cmd.Flags().StringVarP(&query, "query", "q", "", "natural language query")
	cmd.Flags().StringSliceVar(&options, "option", []string{string(twelvelabs.SearchOptionVisual)}, "search options: visual, conversation, text_in_video, logo")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageSize, "clips per page")
	cmd.Flags().BoolVar(&all, "all", false, "follow continuation tokens to the last page")
	cmd.Flags().StringVar(&threshold, "threshold", "", "minimum confidence: high, medium, low or none")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "group results by clip or video")
	cmd.Flags().StringVar(&operator, "operator", "", "combine options with or/and")
	cmd.Flags().StringVar(&filter, "filter", "", "metadata filter as a JSON object")

	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func newSearchPageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "page TOKEN",
		Short: "Fetch a result page by token",
		Long:  "Fetch the result page a continuation token points to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Search().ByPageToken(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch result page: %w", err)
			}

			return renderSearchOutput(cmd.OutOrStdout(), &searchOutput{
				Clips:         page.Clips,
				TotalResults:  page.PageInfo.TotalResults,
				NextPageToken: page.NextPageToken(),
			})
		},
	}
}
