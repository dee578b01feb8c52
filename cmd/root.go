// ABOUTME: Root command for the produk CLI
// ABOUTME: Handles global flags, env config, and shared client wiring

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "produk",
	Short: "CLI for the product management portal",
	Long: `produk is a command-line client for the product management portal.

It manages the login session locally and talks to the portal's REST API.

Environment Variables:
  PRODUK_API_URL  Portal API URL (default: http://localhost:8000)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Missing .env is fine; env vars and flags still apply.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Portal API URL (overrides PRODUK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("PRODUK_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// hintNavigator prints recovery hints instead of switching screens. The
// command's own error output still reports what failed.
type hintNavigator struct{}

func (hintNavigator) SessionExpired() {
	fmt.Fprintln(os.Stderr, "Sesi habis. Jalankan `produk login` untuk masuk kembali.")
}

func (hintNavigator) Forbidden() {
	fmt.Fprintln(os.Stderr, "Akses ditolak (403).")
}

// newClient wires the API client against the durable session store.
func newClient() (*api.Client, *session.Store) {
	store := session.NewStore(session.DefaultConfigDir())
	c := api.New(GetAPIURL(), store, api.WithNavigator(hintNavigator{}))
	return c, store
}
