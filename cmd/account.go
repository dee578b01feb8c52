// ABOUTME: Account commands for the produk CLI
// ABOUTME: Profile update, password change, password reset, email validation

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	accountName        string
	accountEmail       string
	accountOldPassword string
	accountNewPassword string
	accountToken       string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the account",
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name and email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountUpdate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the password",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountPassword(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountResetRequestCmd = &cobra.Command{
	Use:   "reset-request",
	Short: "Request a password reset email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountResetRequest(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password with a reset token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountReset(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountValidateRequestCmd = &cobra.Command{
	Use:   "validate-request",
	Short: "Request an email validation message",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountValidateRequest(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Confirm an email with a validation token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountValidate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountPasswordCmd)
	accountCmd.AddCommand(accountResetRequestCmd)
	accountCmd.AddCommand(accountResetCmd)
	accountCmd.AddCommand(accountValidateRequestCmd)
	accountCmd.AddCommand(accountValidateCmd)

	accountUpdateCmd.Flags().StringVar(&accountName, "name", "", "Display name")
	accountUpdateCmd.Flags().StringVar(&accountEmail, "email", "", "Account email")
	accountUpdateCmd.MarkFlagRequired("name")
	accountUpdateCmd.MarkFlagRequired("email")

	accountPasswordCmd.Flags().StringVar(&accountOldPassword, "old-password", "", "Current password")
	accountPasswordCmd.Flags().StringVar(&accountNewPassword, "new-password", "", "New password")
	accountPasswordCmd.MarkFlagRequired("old-password")
	accountPasswordCmd.MarkFlagRequired("new-password")

	accountResetRequestCmd.Flags().StringVar(&accountEmail, "email", "", "Account email")
	accountResetRequestCmd.MarkFlagRequired("email")

	accountResetCmd.Flags().StringVar(&accountToken, "token", "", "Reset token from the email")
	accountResetCmd.Flags().StringVar(&accountNewPassword, "new-password", "", "New password")
	accountResetCmd.MarkFlagRequired("token")
	accountResetCmd.MarkFlagRequired("new-password")

	accountValidateRequestCmd.Flags().StringVar(&accountEmail, "email", "", "Account email")
	accountValidateRequestCmd.MarkFlagRequired("email")

	accountValidateCmd.Flags().StringVar(&accountToken, "token", "", "Validation token from the email")
	accountValidateCmd.MarkFlagRequired("token")
}

// runAccountUpdate changes the profile and returns exit code
func runAccountUpdate(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	user, err := c.UpdateAccount(ctx, accountName, accountEmail)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Akun diperbarui: %s <%s>\n", user.Name, user.Email)
	return 0
}

// runAccountPassword changes the password and returns exit code
func runAccountPassword(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	if err := c.UpdatePassword(ctx, accountOldPassword, accountNewPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Kata sandi diperbarui.")
	return 0
}

// runAccountResetRequest asks for a reset email and returns exit code
func runAccountResetRequest(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	if err := c.RequestPasswordReset(ctx, accountEmail); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Email reset kata sandi dikirim.")
	return 0
}

// runAccountReset applies a reset token and returns exit code
func runAccountReset(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	if err := c.ResetPassword(ctx, accountToken, accountNewPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Kata sandi berhasil direset.")
	return 0
}

// runAccountValidateRequest asks for a validation email and returns exit code
func runAccountValidateRequest(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	if err := c.RequestEmailValidation(ctx, accountEmail); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Email validasi dikirim.")
	return 0
}

// runAccountValidate confirms an email token and returns exit code
func runAccountValidate(ctx context.Context, w io.Writer) int {
	c, _ := newClient()
	if err := c.ValidateEmail(ctx, accountToken); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Email tervalidasi.")
	return 0
}
