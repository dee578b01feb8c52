// ABOUTME: Login command for the produk CLI
// ABOUTME: Exchanges credentials (or a Google token) for a portal session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/produkportal/produk-cli/internal/session"
	"github.com/produkportal/produk-cli/internal/tui/styles"
)

var (
	loginEmail       string
	loginPassword    string
	loginGoogleToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	Long: `Authenticate against the portal and store the session locally.

With --google-token the Google OAuth exchange is used instead of email and
password. Missing credentials are prompted for interactively.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginGoogleToken, "google-token", "", "Google ID token for OAuth login")
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	c, _ := newClient()

	var auth session.Auth
	var err error
	if loginGoogleToken != "" {
		auth, err = c.OAuthGoogle(ctx, loginGoogleToken)
	} else {
		if promptErr := promptCredentials(); promptErr != nil {
			fmt.Fprintf(w, "Error: %v\n", promptErr)
			return 2
		}
		auth, err = c.Login(ctx, loginEmail, loginPassword)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	// Mirror identity into the durable slots so later runs restore it.
	store := session.NewStore(session.DefaultConfigDir())
	authStore := session.NewAuthStore(store, nil)
	authStore.SetAuth(auth)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(auth.User, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Berhasil masuk sebagai %s <%s>\n", auth.User.Name, auth.User.Email)
	return 0
}

// promptCredentials fills missing email/password via an interactive form.
func promptCredentials() error {
	if loginEmail != "" && loginPassword != "" {
		return nil
	}

	var fields []huh.Field
	if loginEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&loginEmail))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Kata sandi").
			EchoMode(huh.EchoModePassword).
			Value(&loginPassword))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title("Masuk")).
		WithTheme(styles.FormTheme())
	return form.Run()
}
