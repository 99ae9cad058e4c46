package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit the logged in user",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch the logged in user",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		return fetchAndPrint(e, cache.KeyUserDetail, "")
	}),
}

var profileThumbnailCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "Fetch the profile picture name and its URL",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		st, err := e.svc.FetchProfileThumbnail(e.ctx)
		if err != nil {
			return err
		}
		return e.print(map[string]string{
			"thumbnail": st.Data,
			"url":       e.app.Client.UploadURL("profileThumbnail", st.Data),
		})
	}),
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <name>",
	Short: "Change the display name",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.UpdateName(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Name updated")
	}),
}

var profileSetPhoneCmd = &cobra.Command{
	Use:   "set-phone <phone>",
	Short: "Change the phone number",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.UpdatePhone(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Phone updated")
	}),
}

var profileSetThumbnailCmd = &cobra.Command{
	Use:   "set-thumbnail <path>",
	Short: "Upload a new profile picture",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.UpdateThumbnail(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Profile picture updated")
	}),
}

func init() {
	profileCmd.AddCommand(profileShowCmd, profileThumbnailCmd, profileSetNameCmd, profileSetPhoneCmd, profileSetThumbnailCmd)
	rootCmd.AddCommand(profileCmd)
}
