package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twelvelabs-go/internal/constants"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/tlclient"
	"github.com/fivetwenty-io/twelvelabs-go/pkg/twelvelabs"
)

// Config represents the persisted CLI configuration.
type Config struct {
	APIKey    string  `json:"api_key,omitempty"    yaml:"api_key,omitempty"`
	BaseURL   string  `json:"base_url,omitempty"   yaml:"base_url,omitempty"`
	Output    string  `json:"output,omitempty"     yaml:"output,omitempty"`
	RetryMax  int     `json:"retry_max,omitempty"  yaml:"retry_max,omitempty"`
	RateLimit float64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in ~/.twelvelabs/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration, including flag and environment overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskSecret(config.APIKey)

			renderer := &OutputRenderer[*Config]{
				RenderTable: func(w io.Writer, config *Config) error {
					return renderProperties(w, [][]string{
						{"api_key", valueOrNA(config.APIKey)},
						{"base_url", valueOrNA(config.BaseURL)},
						{"output", valueOrNA(config.Output)},
						{"retry_max", strconv.Itoa(config.RetryMax)},
						{"rate_limit", strconv.FormatFloat(config.RateLimit, 'f', -1, 64)},
						{"config_file", valueOrNA(viper.ConfigFileUsed())},
					})
				},
			}

			return renderer.Render(cmd.OutOrStdout(), config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of api_key, base_url, output, retry_max or rate_limit",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// setConfigValue assigns key on config. An empty value resets the key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api_key":
		config.APIKey = value
	case "base_url":
		config.BaseURL = value
	case "output":
		switch value {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return constants.ErrInvalidOutput
		}
	case "retry_max":
		if value == "" {
			config.RetryMax = 0

			return nil
		}

		retryMax, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retry_max %q: %w", value, err)
		}

		config.RetryMax = retryMax
	case "rate_limit":
		if value == "" {
			config.RateLimit = 0

			return nil
		}

		rateLimit, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid rate_limit %q: %w", value, err)
		}

		config.RateLimit = rateLimit
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// loadConfig returns the effective configuration: file values overridden by
// environment variables and flags.
func loadConfig() *Config {
	return &Config{
		APIKey:    viper.GetString("api_key"),
		BaseURL:   viper.GetString("base_url"),
		Output:    viper.GetString("output"),
		RetryMax:  viper.GetInt("retry_max"),
		RateLimit: viper.GetFloat64("rate_limit"),
	}
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName), nil
}

// readConfigFile reads only what is persisted, so saving it back never writes
// flag or environment values to disk.
func readConfigFile() (*Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// configFile is derived from the user's home directory or --config.
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// createClient builds an API client from the effective configuration.
func createClient(cmd *cobra.Command) (twelvelabs.Client, error) {
	return createClientWithTimeout(cmd, 0)
}

func createClientWithTimeout(cmd *cobra.Command, timeout time.Duration) (twelvelabs.Client, error) {
	config := loadConfig()
	if config.APIKey == "" {
		return nil, constants.ErrNoAPIKey
	}

	clientConfig := &twelvelabs.Config{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		HTTPTimeout: timeout,
		RetryMax:    config.RetryMax,
		RateLimit:   config.RateLimit,
	}

	if viper.GetBool("verbose") {
		clientConfig.Logger = newStderrLogger(cmd.ErrOrStderr())
		clientConfig.Debug = true
	}

	client, err := tlclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
