// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutKeepCache bool

// logoutCmd ends the farmOS session and, by default, wipes the local cache.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the farmOS session and remove cached data",
	Long: `The logout command asks the farmOS server to end the session (best effort,
failures are ignored) and then removes every cached value: credentials,
token, profile and site information, and preferences.

Pass --keep-cache to end the remote session but keep local data.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.auth.Logout(cmd.Context())
		if logoutKeepCache {
			pterm.Success.Println("Logged out; cached data kept")
			return nil
		}

		if err := a.auth.ClearCachedProfileAndSiteInfo(); err != nil {
			return err
		}
		pterm.Success.Println("Logged out and removed all cached data")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVar(&logoutKeepCache, "keep-cache", false, "Keep cached credentials and profile data")
}
