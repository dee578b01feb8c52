// ABOUTME: Whoami command for the produk CLI
// ABOUTME: Bootstraps the session and prints the current user profile

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/produkportal/produk-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long: `Reconcile the stored session with the backend and print the profile.

Exit codes:
  0 - Authenticated
  2 - No valid session`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami bootstraps the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	c, store := newClient()
	authStore := session.NewAuthStore(store, func(string) {})

	authStore.Bootstrap(ctx, c)
	if !authStore.Authenticated() {
		fmt.Fprintln(w, "Tidak ada sesi. Jalankan `produk login`.")
		return 2
	}

	user := authStore.Current().User
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Nama:  %s\nEmail: %s\n", user.Name, user.Email)
	if len(user.Roles) > 0 {
		names := make([]string, len(user.Roles))
		for i, r := range user.Roles {
			names[i] = r.Name
		}
		fmt.Fprintf(w, "Peran: %s\n", strings.Join(names, ", "))
	}
	return 0
}
