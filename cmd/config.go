package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"fieldkit/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
}

// configShowCmd prints the effective settings, including .env and
// environment overrides.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, key := range config.SettableKeys {
			v, _ := cfg.Get(key)
			fmt.Fprintf(w, "%-20s %s\n", key, v)
		}
		return nil
	},
}

// configSetCmd writes one setting to config.json. Environment overrides
// are not persisted.
var configSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Change a setting in config.json",
	Long:      "Change a setting in config.json. Keys: " + strings.Join(config.SettableKeys, ", ") + ".",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.SettableKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		v, _ := cfg.Get(args[0])
		pterm.Success.Printf("%s set to %s\n", args[0], v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
