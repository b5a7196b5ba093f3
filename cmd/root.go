// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Field Kit CLI.
// It implements the session commands (login, logout, refresh, whoami,
// geolocation) on top of internal/auth, plus config, using the Cobra CLI
// framework.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	flagDev     bool
	flagVerbose bool
	flagStorage string
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fieldkit",
	Short: "Field Kit CLI for farmOS",
	Long: `Field Kit logs you into a farmOS server and keeps your profile and
site information cached locally so later commands work without a network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("fieldkit %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application and exits 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "Log in against the development server first")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Session storage backend (sqlite, postgres, keyring, redis, memory)")
}
