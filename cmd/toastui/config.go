package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/config"
)

var configOpts struct {
	format string
	save   bool
	force  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration in use: the defaults overlaid with the config file.

The output is a valid config file and can be saved as a starting point:
  toastui config > ~/.config/toastui/config.toml

Or written straight to the config path (--config, or the default location):
  toastui config --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configOpts.save {
			path := globalOpts.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if err := saveConfig(getConfig(), path, configOpts.force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
			return nil
		}
		return writeConfig(cmd.OutOrStdout(), getConfig(), configOpts.format)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configOpts.format, "format", "f", "toml",
		"Output format (toml, yaml)")
	configCmd.Flags().BoolVar(&configOpts.save, "save", false,
		"Write the effective config to the config file instead of stdout")
	configCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file with --save")
}

// saveConfig writes c to path as TOML, refusing to replace an existing
// file unless force is set.
func saveConfig(c *config.Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := c.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func writeConfig(w io.Writer, c *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "toml":
		data, err = toml.Marshal(c)
	case "yaml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported format: %s (use toml or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
