package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	assignProject     string
	assignUsers       []string
	assignDescription string
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Assign projects to users",
}

var assignmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch all assignments",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		return fetchAndPrint(e, cache.KeyAssignedProjects, "")
	}),
}

var assignmentsByProjectCmd = &cobra.Command{
	Use:   "by-project <projectId>",
	Short: "Fetch the assignments of one project",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyAssignProjectByProjectID, args[0])
	}),
}

var assignmentsAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a project to one or more users",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.AssignRequest{ProjectID: assignProject, UserIDs: assignUsers, Description: assignDescription}
		if err := e.svc.AssignProject(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Project assigned")
	}),
}

var assignmentsCompleteCmd = &cobra.Command{
	Use:   "complete <assignProjectId>",
	Short: "Mark an assignment as completed",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.CompleteAssignment(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Assignment completed")
	}),
}

func init() {
	assignmentsAssignCmd.Flags().StringVar(&assignProject, "project", "", "Project id")
	assignmentsAssignCmd.Flags().StringSliceVar(&assignUsers, "user", nil, "User id (repeatable)")
	assignmentsAssignCmd.Flags().StringVar(&assignDescription, "description", "", "Assignment description")

	assignmentsCmd.AddCommand(assignmentsListCmd, assignmentsByProjectCmd, assignmentsAssignCmd, assignmentsCompleteCmd)
	rootCmd.AddCommand(assignmentsCmd)
}
