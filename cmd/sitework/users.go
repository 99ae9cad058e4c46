package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	userName      string
	userPhone     string
	userEmail     string
	userPassword  string
	userThumbnail string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch all users",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		return fetchAndPrint(e, cache.KeyAllUsers, "")
	}),
}

var usersGetCmd = &cobra.Command{
	Use:   "get <userId>",
	Short: "Fetch one user",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyUserDetailByID, args[0])
	}),
}

var usersProjectsCmd = &cobra.Command{
	Use:   "projects <userId>",
	Short: "Fetch the assignments of one user",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyUserProjects, args[0])
	}),
}

var usersRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a user with a profile picture",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.RegisterUserRequest{
			Name:      userName,
			Phone:     userPhone,
			Email:     userEmail,
			Password:  userPassword,
			Thumbnail: userThumbnail,
		}
		if err := e.svc.RegisterUser(e.ctx, req); err != nil {
			return err
		}
		return done(e, "User registered")
	}),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <userId>",
	Short: "Update the name and phone of a user",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.UpdateUser(e.ctx, args[0], domain.UpdateUserRequest{Name: userName, Phone: userPhone}); err != nil {
			return err
		}
		return done(e, "User updated")
	}),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <userId>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.DeleteUser(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "User deleted")
	}),
}

func init() {
	usersRegisterCmd.Flags().StringVar(&userName, "name", "", "Full name")
	usersRegisterCmd.Flags().StringVar(&userPhone, "phone", "", "10-digit phone number")
	usersRegisterCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	usersRegisterCmd.Flags().StringVar(&userPassword, "password", "", "Password (at least 8 characters)")
	usersRegisterCmd.Flags().StringVar(&userThumbnail, "thumbnail", "", "Path to the profile picture")

	usersUpdateCmd.Flags().StringVar(&userName, "name", "", "Full name")
	usersUpdateCmd.Flags().StringVar(&userPhone, "phone", "", "10-digit phone number")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersProjectsCmd, usersRegisterCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
