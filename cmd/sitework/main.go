// Package main provides the sitework command line client and local bridge.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/spf13/cobra"
)

var (
	flagToken  string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "sitework",
	Short: "Work-management backend client",
	Long: "sitework talks to the work-management backend, keeps a local cache of users, projects, " +
		"assignments, materials and work logs, and can expose that cache over a local HTTP bridge.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagConfig != "" {
			return os.Setenv("SITEWORK_CONFIG_PATH", flagConfig)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token (overrides SITEWORK_API_TOKEN and api.token)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory containing config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage prefers the user-facing message of a backend failure.
func errorMessage(err error) string {
	var be *backend.Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}
