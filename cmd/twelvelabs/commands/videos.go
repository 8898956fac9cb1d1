package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewVideosCommand creates the videos command group.
func NewVideosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "videos",
		Aliases: []string{"video"},
		Short:   "Manage indexed videos",
		Long:    "List, inspect and delete the videos of an index",
	}

	cmd.AddCommand(newVideosListCommand())
	cmd.AddCommand(newVideosGetCommand())
	cmd.AddCommand(newVideosDeleteCommand())

	return cmd
}

func videoFilename(video *twelvelabs.Video) string {
	if video.Metadata == nil {
		return NotAvailable
	}

	return valueOrNA(video.Metadata.Filename)
}

func videoDuration(video *twelvelabs.Video) string {
	if video.Metadata == nil {
		return NotAvailable
	}

	return formatSeconds(video.Metadata.Duration)
}

func newVideosListCommand() *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list INDEX_ID",
		Short: "List videos",
		Long:  "List every video of an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			fetch := func(ctx context.Context, params *twelvelabs.ListParams) (*twelvelabs.ListResponse[twelvelabs.Video], error) {
				return client.Videos().ListPage(ctx, args[0], params)
			}

			videos, err := collectPages(cmd.Context(), twelvelabs.NewListParams().WithPageLimit(pageSize), fetch)
			if err != nil {
				return fmt.Errorf("failed to list videos: %w", err)
			}

			renderer := &OutputRenderer[[]twelvelabs.Video]{
				RenderTable: func(w io.Writer, videos []twelvelabs.Video) error {
					if len(videos) == 0 {
						_, _ = fmt.Fprintln(w, "No videos found")

						return nil
					}

					rows := make([][]string, 0, len(videos))
					for i := range videos {
						rows = append(rows, []string{
							videos[i].ID,
							videoFilename(&videos[i]),
							videoDuration(&videos[i]),
							formatTime(videos[i].IndexedAt),
						})
					}

					return renderTable(w, []string{"ID", "Filename", "Duration", "Indexed"}, rows)
				},
			}

			return renderer.Render(cmd.OutOrStdout(), videos)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", constants.MaxPageSize, "results fetched per request")

	return cmd
}

func newVideosGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get INDEX_ID VIDEO_ID",
		Short: "Get video details",
		Long:  "Display detailed information about a video of an index",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			video, err := client.Videos().Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get video: %w", err)
			}

			renderer := &OutputRenderer[*twelvelabs.Video]{
				RenderTable: func(w io.Writer, video *twelvelabs.Video) error {
					properties := [][]string{
						{"ID", video.ID},
						{"Filename", videoFilename(video)},
						{"Duration", videoDuration(video)},
						{"Created", formatTime(&video.CreatedAt)},
						{"Indexed", formatTime(video.IndexedAt)},
					}

					if video.Metadata != nil {
						properties = append(properties, []string{
							"Resolution", strconv.Itoa(video.Metadata.Width) + "x" + strconv.Itoa(video.Metadata.Height),
						})
					}

					if video.HLS != nil {
						properties = append(properties, []string{"Stream", valueOrNA(video.HLS.VideoURL)})
					}

					return renderProperties(w, properties)
				},
			}

			return renderer.Render(cmd.OutOrStdout(), video)
		},
	}
}

func newVideosDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX_ID VIDEO_ID",
		Short: "Delete a video",
		Long:  "Remove a video from an index",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			err = client.Videos().Delete(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to delete video: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted video %s from index %s\n", args[1], args[0])

			return nil
		},
	}
}
