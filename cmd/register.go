// ABOUTME: Register command for the produk CLI
// ABOUTME: Creates a portal account and stores the resulting session

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
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a portal account",
	Long:  `Register a new account. On success the new session is stored locally, the same as login.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
}

// runRegister executes the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if err := promptRegistration(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c, _ := newClient()
	auth, err := c.Register(ctx, registerName, registerEmail, registerPassword)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	store := session.NewStore(session.DefaultConfigDir())
	authStore := session.NewAuthStore(store, nil)
	authStore.SetAuth(auth)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(auth.User, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Akun dibuat. Berhasil masuk sebagai %s <%s>\n", auth.User.Name, auth.User.Email)
	return 0
}

// promptRegistration fills missing fields via an interactive form.
func promptRegistration() error {
	if registerName != "" && registerEmail != "" && registerPassword != "" {
		return nil
	}

	var fields []huh.Field
	if registerName == "" {
		fields = append(fields, huh.NewInput().Title("Nama").Value(&registerName))
	}
	if registerEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&registerEmail))
	}
	if registerPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Kata sandi").
			EchoMode(huh.EchoModePassword).
			Value(&registerPassword))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title("Daftar")).
		WithTheme(styles.FormTheme())
	return form.Run()
}
