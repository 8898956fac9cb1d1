package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/tlclient"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long:  "Prompt for an API key, check it against the platform and save it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey, err := readAPIKey(cmd)
			if err != nil {
				return err
			}

			if !skipVerify {
				client, err := tlclient.New(&twelvelabs.Config{
					APIKey:      apiKey,
					BaseURL:     viper.GetString("base_url"),
					HTTPTimeout: constants.ShortHTTPTimeout,
				})
				if err != nil {
					return fmt.Errorf("failed to create client: %w", err)
				}

				indexes, err := client.Indexes().List(cmd.Context(), twelvelabs.NewListParams().WithPageLimit(constants.MaxPageSize))
				if err != nil {
					return fmt.Errorf("failed to verify API key: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated, %d indexes visible\n", len(indexes))
			}

			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.APIKey = apiKey
			if baseURL := viper.GetString("base_url"); baseURL != "" {
				config.BaseURL = baseURL
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "API key saved")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the key without contacting the platform")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Long:  "Remove the API key from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			config.APIKey = ""

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

// readAPIKey takes the key from --api-key, a hidden terminal prompt, or the
// first line of piped input.
func readAPIKey(cmd *cobra.Command) (string, error) {
	if flag := cmd.Flags().Lookup("api-key"); flag != nil && flag.Changed {
		return validAPIKey(flag.Value.String())
	}

	in := cmd.InOrStdin()

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API key: ")

		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return validAPIKey(string(secret))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return validAPIKey(line)
}

func validAPIKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", constants.ErrEmptyAPIKey
	}

	return key, nil
}
