package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/classkit-labs/handout-cli/internal/adapters/driven/auth"
	"github.com/classkit-labs/handout-cli/internal/adapters/driven/config/file"
	"github.com/classkit-labs/handout-cli/internal/adapters/driving/oauth"
	"github.com/classkit-labs/handout-cli/internal/connectors/google"
	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// loginTimeout bounds the wait for the browser round trip.
const loginTimeout = 5 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Google sign-in",
	Long: `Sign in to Google and manage the cached OAuth token.

Handout needs an OAuth client of its own: create a desktop app client in
the Google Cloud console, download the client secret JSON, and place it
as credentials.json next to the binary or in the config directory (or
point HANDOUT_CREDENTIALS at it).

Examples:
  handout auth login
  handout auth status
  handout auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Google via the browser",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached token's state",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached token",
	RunE:  runAuthLogout,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	dir, err := configDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	credPath, err := file.FindCredentials(dir)
	if err != nil {
		return fmt.Errorf("locate OAuth client secret: %w", err)
	}
	cfg, err := file.LoadOAuthConfig(credPath, google.Scopes)
	if err != nil {
		return err
	}

	state := uuid.NewString()
	server := oauth.NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer func() { _ = server.Stop() }()

	cfg.RedirectURL = server.RedirectURI()
	verifier := oauth.GenerateCodeVerifier()

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("code_challenge", oauth.GenerateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	cmd.Println("Opening your browser to sign in to Google...")
	cmd.Printf("If nothing opens, visit:\n\n  %s\n\n", authURL)
	if err := oauth.OpenBrowser(authURL); err != nil {
		cmd.PrintErrf("could not open browser: %v\n", err)
	}

	code, err := server.WaitForCode(loginTimeout)
	if err != nil {
		return fmt.Errorf("authorisation: %w", err)
	}

	token, err := cfg.Exchange(cmd.Context(), code,
		oauth2.SetAuthURLParam("code_verifier", verifier))
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	store := auth.NewTokenStore(dir)
	if err := store.Save(token); err != nil {
		return err
	}

	cmd.Printf("Signed in. Token cached at %s\n", store.Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	dir, err := configDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	store := auth.NewTokenStore(dir)
	token, err := store.Load()
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		cmd.Println("Not signed in. Run 'handout auth login'.")
		return nil
	case errors.Is(err, domain.ErrTokenInvalid):
		cmd.Println("Cached token is unusable. Run 'handout auth login' again.")
		return nil
	case err != nil:
		return err
	}

	cmd.Printf("Signed in. Token cached at %s\n", store.Path())
	if token.Valid() {
		cmd.Printf("Access token valid until %s\n", token.Expiry.Local().Format(time.RFC1123))
	} else {
		cmd.Println("Access token expired; it will be refreshed on next use.")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	dir, err := configDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	if err := auth.NewTokenStore(dir).Clear(); err != nil {
		return err
	}
	cmd.Println("Signed out.")
	return nil
}
