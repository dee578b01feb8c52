// ABOUTME: Browse command launching the interactive portal TUI
// ABOUTME: Wires the session store, API client, and navigator into the app

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/produkportal/produk-cli/internal/api"
	"github.com/produkportal/produk-cli/internal/session"
	"github.com/produkportal/produk-cli/internal/tui"
	"github.com/produkportal/produk-cli/internal/tui/debuglog"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the portal interactively",
	Long:  `Open the interactive terminal UI: login, product list with search and pagination, create/edit/delete.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBrowse(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// runBrowse wires the TUI and blocks until it exits.
func runBrowse() error {
	configDir := session.DefaultConfigDir()
	if err := debuglog.Init(configDir); err == nil {
		defer debuglog.Close()
	}

	store := session.NewStore(configDir)
	nav := tui.NewNavigator()
	client := api.New(GetAPIURL(), store, api.WithNavigator(nav))

	notices := make(chan string, 4)
	authStore := session.NewAuthStore(store, func(msg string) {
		select {
		case notices <- msg:
		default:
		}
	})

	app := tui.NewApp(client, authStore, nav, notices)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
