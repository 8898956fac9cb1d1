package commands

import (
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	Built     string `json:"built"      yaml:"built"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the twelvelabs CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
			}

			renderer := &OutputRenderer[VersionInfo]{
				RenderTable: func(w io.Writer, info VersionInfo) error {
					return renderProperties(w, [][]string{
						{"Version", info.Version},
						{"Commit", info.Commit},
						{"Built", info.Built},
						{"Go", info.GoVersion},
					})
				},
			}

			return renderer.Render(cmd.OutOrStdout(), versionInfo)
		},
	}
}
