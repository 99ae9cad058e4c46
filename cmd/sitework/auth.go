package main

import (
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	otpEmail      string
	resetOTP      string
	resetPassword string
	oldPassword   string
	newPassword   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print the bearer token",
	Long:  "Log in with email and password. The session name and role are cached; the token is printed and never stored.",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		res, err := e.svc.Login(e.ctx, domain.LoginRequest{Email: loginEmail, Password: loginPassword})
		if err != nil {
			return err
		}
		return e.print(res)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the cached session",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		if err := e.svc.Logout(e.ctx); err != nil {
			return err
		}
		return done(e, "Logged out")
	}),
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Reset or change passwords",
}

var passwordOTPCmd = &cobra.Command{
	Use:   "otp",
	Short: "Send a password reset code by email",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		if err := e.svc.SendOTP(e.ctx, domain.SendOTPRequest{Email: otpEmail}); err != nil {
			return err
		}
		return done(e, "OTP sent")
	}),
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a password with an emailed code",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.ResetPasswordRequest{Email: otpEmail, OTPCode: resetOTP, Password: resetPassword}
		if err := e.svc.ResetPassword(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Password reset")
	}),
}

var passwordChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Change the password of the logged in user",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
		if err := e.svc.ChangePassword(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Password changed")
	}),
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	passwordOTPCmd.Flags().StringVar(&otpEmail, "email", "", "Account email")
	passwordResetCmd.Flags().StringVar(&otpEmail, "email", "", "Account email")
	passwordResetCmd.Flags().StringVar(&resetOTP, "otp", "", "Code received by email")
	passwordResetCmd.Flags().StringVar(&resetPassword, "password", "", "New password (at least 8 characters)")
	passwordChangeCmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	passwordChangeCmd.Flags().StringVar(&newPassword, "new", "", "New password (at least 8 characters)")

	passwordCmd.AddCommand(passwordOTPCmd, passwordResetCmd, passwordChangeCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, passwordCmd)
}
