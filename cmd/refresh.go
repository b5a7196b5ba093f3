package cmd

import (
	"os"
	"time"

	"fieldkit/cli/internal/httperrors"
	"fieldkit/cli/internal/logging"
	"fieldkit/cli/internal/storage"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// refreshCmd re-fetches profile and site information for the cached session.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Update cached profile and site information",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.auth.LoadCachedProfileAndSiteInfo()
		if a.store.Snapshot().Username == "" {
			printNotLoggedIn()
			return nil
		}

		stop := startInlineSpinner(os.Stderr, "Fetching profile and site info", spinnerFrames, 120*time.Millisecond)
		err = a.auth.RefreshProfileAndSiteInfo(cmd.Context())
		stop()
		if err != nil {
			host, _, _ := a.backend.Get(storage.KeyHost)
			pterm.Error.Println(logging.PresentError("Could not refresh profile and site info", err, ""))
			httperrors.Show(err, httperrors.ExtractHostFromURL(host))
			return errReported
		}

		pterm.Success.Println("Profile and site info updated")
		return renderProfile(a.store.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
