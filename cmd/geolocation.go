package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// geolocationCmd toggles whether new logs record the device location.
var geolocationCmd = &cobra.Command{
	Use:       "geolocation on|off",
	Short:     "Turn geolocation for new logs on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.auth.SetUseGeolocation(on); err != nil {
			return err
		}
		pterm.Success.Printf("Geolocation turned %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(geolocationCmd)
}
