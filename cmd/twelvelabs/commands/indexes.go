package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewIndexesCommand creates the indexes command group.
func NewIndexesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "indexes",
		Aliases: []string{"index", "idx"},
		Short:   "Manage indexes",
		Long:    "Create, list, inspect and delete video indexes",
	}

	cmd.AddCommand(newIndexesListCommand())
	cmd.AddCommand(newIndexesGetCommand())
	cmd.AddCommand(newIndexesCreateCommand())
	cmd.AddCommand(newIndexesDeleteCommand())

	return cmd
}

func engineOptions(engines []twelvelabs.Engine) string {
	var parts []string

	for _, engine := range engines {
		options := make([]string, 0, len(engine.Options))
		for _, option := range engine.Options {
			options = append(options, string(option))
		}

		parts = append(parts, fmt.Sprintf("%s (%s)", engine.Name, strings.Join(options, ", ")))
	}

	if len(parts) == 0 {
		return NotAvailable
	}

	return strings.Join(parts, "; ")
}

func newIndexesListCommand() *cobra.Command {
	var (
		name     string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexes",
		Long:  "List every index of the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			params := twelvelabs.NewListParams().WithPageLimit(pageSize)
			if name != "" {
				params.WithFilter("index_name", name)
			}

			indexes, err := collectPages(cmd.Context(), params, client.Indexes().ListPage)
			if err != nil {
				return fmt.Errorf("failed to list indexes: %w", err)
			}

			renderer := &OutputRenderer[[]twelvelabs.Index]{
				RenderTable: func(w io.Writer, indexes []twelvelabs.Index) error {
					if len(indexes) == 0 {
						_, _ = fmt.Fprintln(w, "No indexes found")

						return nil
					}

					rows := make([][]string, 0, len(indexes))
					for _, index := range indexes {
						rows = append(rows, []string{
							index.ID,
							index.Name,
							strconv.Itoa(index.VideoCount),
							formatSeconds(index.TotalDuration),
							engineOptions(index.Engines),
							formatTime(&index.CreatedAt),
						})
					}

					return renderTable(w, []string{"ID", "Name", "Videos", "Duration", "Engines", "Created"}, rows)
				},
			}

			return renderer.Render(cmd.OutOrStdout(), indexes)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by index name")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.MaxPageSize, "results fetched per request")

	return cmd
}

func newIndexesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INDEX_ID",
		Short: "Get index details",
		Long:  "Display detailed information about a specific index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			index, err := client.Indexes().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get index: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.Index]{
				RenderTable: func(w io.Writer, index *twelvelabs.Index) error {
					return renderProperties(w, [][]string{
						{"ID", index.ID},
						{"Name", index.Name},
						{"Engines", engineOptions(index.Engines)},
						{"Videos", strconv.Itoa(index.VideoCount)},
						{"Duration", formatSeconds(index.TotalDuration)},
						{"Created", formatTime(&index.CreatedAt)},
						{"Updated", formatTime(index.UpdatedAt)},
						{"Expires", formatTime(index.ExpiresAt)},
					})
				},
			}

			return renderer.Render(cmd.OutOrStdout(), index)
		},
	}
}

func newIndexesCreateCommand() *cobra.Command {
	var (
		engineName string
		options    []string
		addons     []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an index",
		Long:  "Create an index with one engine and the given engine options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if engineName == "" || len(options) == 0 {
				return constants.ErrEngineRequired
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			engine := twelvelabs.Engine{Name: engineName}
			for _, option := range options {
				engine.Options = append(engine.Options, twelvelabs.EngineOption(option))
			}

			index, err := client.Indexes().Create(cmd.Context(), &twelvelabs.IndexCreateRequest{
				Name:    args[0],
				Engines: []twelvelabs.Engine{engine},
				Addons:  addons,
			})
			if err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.Index]{
				RenderTable: func(w io.Writer, index *twelvelabs.Index) error {
					_, err := fmt.Fprintf(w, "Created index %s (%s)\n", index.Name, index.ID)

					return err
				},
			}

			return renderer.Render(cmd.OutOrStdout(), index)
		},
	}

	cmd.Flags().StringVar(&engineName, "engine", "marengo2.6", "engine name")
	cmd.Flags().StringSliceVar(&options, "option", []string{"visual", "conversation"}, "engine options (visual, conversation, text_in_video, logo)")
	cmd.Flags().StringSliceVar(&addons, "addon", nil, "index addons, e.g. thumbnail")

	return cmd
}

func newIndexesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX_ID",
		Short: "Delete an index",
		Long:  "Delete an index and every video it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.Indexes().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete index: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted index %s\n", args[0])

			return nil
		},
	}
}
