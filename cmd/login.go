// Copyright (c) 2025 Field Kit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"fieldkit/cli/internal/auth"
	"fieldkit/cli/internal/httperrors"
	"fieldkit/cli/internal/logging"
	"fieldkit/cli/internal/navigation"
	"fieldkit/cli/internal/render"
	"fieldkit/cli/internal/store"
	"fieldkit/cli/internal/terminal"
	"fieldkit/cli/internal/ui/loginform"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loginUsername string
	loginPassword string
	loginReturnTo string
)

// loginCmd authenticates against a farmOS server and caches the session.
var loginCmd = &cobra.Command{
	Use:   "login [server]",
	Short: "Log in to a farmOS server",
	Long: `The login command signs in to a farmOS server. The server address is
given without a scheme: https:// is tried first, then http://.

Values not passed as arguments or flags are asked for with an interactive
form. On success the session is stored and your profile and site information
are fetched and cached for later commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		creds := auth.Credentials{Username: loginUsername, Password: loginPassword}
		if len(args) == 1 {
			creds.ServerURL = args[0]
		}
		if creds, err = completeCredentials(creds); err != nil {
			return err
		}
		creds.ServerURL = normalizeServer(creds.ServerURL)
		a.log.Debug("submitting credentials",
			zap.String("server", creds.ServerURL),
			zap.String("username", creds.Username),
			logging.Secret("password", creds.Password))

		nav := navigation.NewHistory()
		if loginReturnTo != "" {
			nav = navigation.NewHistory(loginReturnTo, "/login")
		}

		stop := startInlineSpinner(os.Stderr, "Logging in to "+creds.ServerURL, spinnerFrames, 120*time.Millisecond)
		res := a.auth.SubmitCredentials(ctx, creds, nav)
		stop()

		if !res.OK() {
			showLoginError(a.store.Snapshot(), res, creds.ServerURL)
			return errReported
		}
		a.log.Debug("session stored", zap.String("host", res.Host), zap.String("return_to", nav.Current()))

		showLoginGreeting(ctx, a, creds.ServerURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "farmOS username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "farmOS password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginReturnTo, "return-to", "", "Route to return to after logging in")
}

// completeCredentials fills in missing values: with the form on a terminal,
// otherwise only the password may be read from stdin.
func completeCredentials(c auth.Credentials) (auth.Credentials, error) {
	if c.ServerURL != "" && c.Username != "" && c.Password != "" {
		return c, nil
	}
	if terminal.IsInteractive() {
		return loginform.Run(c)
	}
	if c.ServerURL == "" || c.Username == "" {
		return c, errors.New("server and --username are required when not running in a terminal")
	}
	pw, err := terminal.ReadPassword("Password: ")
	if err != nil {
		return c, err
	}
	c.Password = pw
	return c, nil
}

// showLoginError prints the warning the login flow committed to the store,
// followed by network troubleshooting hints.
func showLoginError(st store.State, res auth.LoginResult, server string) {
	msg := res.Err.Message
	if n := len(st.Errors); n > 0 {
		msg = st.Errors[n-1].Message
	}
	pterm.Warning.Println(render.MarkupToText(msg, terminal.Width()-10))
	httperrors.Show(res.Err.Err, httperrors.ExtractHostFromURL(server))
}

// showLoginGreeting refreshes the profile cache and greets the user.
// A failed refresh does not undo the login.
func showLoginGreeting(ctx context.Context, a *app, server string) {
	stop := startInlineSpinner(os.Stderr, "Fetching profile and site info", spinnerFrames, 120*time.Millisecond)
	err := a.auth.RefreshProfileAndSiteInfo(ctx)
	stop()
	if err != nil {
		a.log.Debug("refresh after login failed", zap.Error(err))
		pterm.Success.Println("Login successful!")
		hint, _ := httperrors.Hints(httperrors.Classify(err), httperrors.ExtractHostFromURL(server))
		pterm.Warning.Println(logging.PresentError("Could not fetch profile and site info", err, hint))
		return
	}

	st := a.store.Snapshot()
	name := st.Username
	if st.Email != "" {
		name = st.Email
	}
	pterm.Success.Println(getRandomLoginGreeting(name))
	if st.FarmName != "" {
		pterm.Info.Printf("Connected to %s (%s)\n", st.FarmName, st.FarmURL)
	}
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier.
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"Welcome back, %s!",
		"Great to see you, %s!",
		"You're all set, %s!",
		"Hello %s! Ready to log some field work?",
		"Logged in as %s",
		"Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], identifier)
}
