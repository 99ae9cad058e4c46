package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	workAssignment  string
	workDescription string
	workPhotos      []string
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Log work against assignments",
}

var workListCmd = &cobra.Command{
	Use:   "list <assignProjectId>",
	Short: "Fetch the work history of an assignment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyWorkHistory, args[0])
	}),
}

var workAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log work with photos",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.WorkRequest{AssignProjectID: workAssignment, Description: workDescription, Thumbnails: workPhotos}
		if err := e.svc.AddWork(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Work added")
	}),
}

var workUpdateCmd = &cobra.Command{
	Use:   "update <workId>",
	Short: "Update a work record",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		req := domain.WorkUpdate{
			WorkID:          args[0],
			AssignProjectID: workAssignment,
			Description:     workDescription,
			Thumbnails:      workPhotos,
		}
		if err := e.svc.UpdateWork(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Work updated")
	}),
}

var workDeleteCmd = &cobra.Command{
	Use:   "delete <workId>",
	Short: "Delete a work record",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		req := domain.DeleteWorkRequest{AssignProjectID: workAssignment, WorkID: args[0]}
		if err := e.svc.DeleteWork(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Work deleted")
	}),
}

func init() {
	for _, c := range []*cobra.Command{workAddCmd, workUpdateCmd, workDeleteCmd} {
		c.Flags().StringVar(&workAssignment, "assignment", "", "Assignment id")
	}
	for _, c := range []*cobra.Command{workAddCmd, workUpdateCmd} {
		c.Flags().StringVar(&workDescription, "description", "", "Work description")
		c.Flags().StringSliceVar(&workPhotos, "photo", nil, "Path to a photo (repeatable)")
	}

	workCmd.AddCommand(workListCmd, workAddCmd, workUpdateCmd, workDeleteCmd)
	rootCmd.AddCommand(workCmd)
}
