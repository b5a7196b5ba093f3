package cmd

import (
	"strings"

	"fieldkit/cli/internal/store"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the cached profile without touching the network.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the cached account and farm",
	Long: `The whoami command prints the profile and site information cached by the
last login or refresh. It never contacts the server; run 'fieldkit refresh'
to update the cache.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.auth.LoadCachedProfileAndSiteInfo()
		st := a.store.Snapshot()
		if st.Username == "" {
			printNotLoggedIn()
			return nil
		}
		return renderProfile(st)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func printNotLoggedIn() {
	pterm.Info.Println("You're not logged in yet!")
	pterm.Println("   Run 'fieldkit login' to get started.")
}

func renderProfile(st store.State) error {
	mapbox := "not set"
	if st.MapboxAPIKey != "" {
		mapbox = "set"
	}
	geo := "off"
	if st.UseGeolocation {
		geo = "on"
	}
	names := make([]string, 0, len(st.LogTypes))
	for _, lt := range st.LogTypes {
		names = append(names, lt.Label)
	}

	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Session", st.Status.String()},
		{"Farm", st.FarmName},
		{"Server", st.FarmURL},
		{"Username", st.Username},
		{"Email", st.Email},
		{"User ID", st.UID},
		{"Units", st.SystemOfMeasurement},
		{"Log types", strings.Join(names, ", ")},
		{"Mapbox key", mapbox},
		{"Geolocation", geo},
	}).Render()
}
