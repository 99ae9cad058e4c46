package main

import (
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state [name]",
	Short: "Print the cached store states",
	Long:  "Print every cached store state, or only the named one. Nothing is fetched.",
	Args:  cobra.MaximumNArgs(1),
	RunE: run(func(e *env, args []string) error {
		if len(args) == 1 {
			return e.printState(args[0])
		}
		states, err := e.app.Stores.States()
		if err != nil {
			return err
		}
		return e.print(states)
	}),
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch every list store",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		if err := e.svc.RefreshAll(e.ctx); err != nil {
			return err
		}
		return done(e, "Stores refreshed")
	}),
}

func init() {
	rootCmd.AddCommand(stateCmd, refreshCmd)
}
