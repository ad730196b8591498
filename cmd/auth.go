package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phauna/phaunabot/internal/config"
	"github.com/phauna/phaunabot/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Helpers for the Google OAuth consent flow",
		Long: `Helpers for completing the Google OAuth consent flow without the
auth HTTP server, for example when setting up the bot from a machine that
Google cannot reach.

Run "phaunabot auth url", open the printed URL in a browser, approve the
consent screen, then pass the code from the redirect back to
"phaunabot auth save CODE".`,
	}

	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthSaveCmd())
	cmd.AddCommand(newAuthStatusCmd())

	return cmd
}

func newAuthURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the Google consent URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			oauth, err := loadOAuth()
			if err != nil {
				return err
			}
			fmt.Println(oauth.AuthURL())
			return nil
		},
	}
}

func newAuthSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save CODE",
		Short: "Exchange an authorization code and store the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oauth, err := loadOAuth()
			if err != nil {
				return err
			}
			if err := oauth.Exchange(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Token stored.")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a Google OAuth token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			oauth, err := loadOAuth()
			if err != nil {
				return err
			}
			if oauth.HasToken() {
				fmt.Println("A Google OAuth token is stored.")
			} else {
				fmt.Println("No Google OAuth token stored. Run \"phaunabot auth url\" to start the consent flow.")
			}
			return nil
		},
	}
}

// loadOAuth builds the OAuth helper from the Google slice of the
// configuration. The Telegram settings are not required here.
func loadOAuth() (*google.OAuth, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	return google.NewOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURL()), nil
}
