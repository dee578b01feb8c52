// ABOUTME: Logout command for the produk CLI
// ABOUTME: Clears all locally stored session slots

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the portal",
	Long:  `Remove the locally stored session. Purely client-side; the backend keeps no session to revoke.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	c, _ := newClient()
	c.Logout()
	fmt.Fprintln(w, "Berhasil keluar.")
	return 0
}
