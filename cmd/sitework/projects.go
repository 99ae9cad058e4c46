package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	projectName        string
	projectDescription string
	projectStart       string
	projectEnd         string
	projectSize        string
	projectMaterial    string
	projectThumbnails  []string
	projectPDF         string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch all projects",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		return fetchAndPrint(e, cache.KeyProjects, "")
	}),
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <projectId>",
	Short: "Fetch one project",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyProjectByProjectID, args[0])
	}),
}

var projectsDetailsCmd = &cobra.Command{
	Use:   "details <assignProjectId>",
	Short: "Fetch a project together with its assignment",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		return fetchAndPrint(e, cache.KeyProjectDetails, args[0])
	}),
}

var projectsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.ProjectRequest{
			Name:        projectName,
			Description: projectDescription,
			StartDate:   projectStart,
			EndDate:     projectEnd,
			Size:        projectSize,
			MaterialID:  projectMaterial,
			Thumbnails:  projectThumbnails,
			PDF:         projectPDF,
		}
		if err := e.svc.AddProject(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Project added")
	}),
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <projectId>",
	Short: "Update a project and upload new thumbnails",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		req := domain.ProjectUpdate{
			Name:        projectName,
			Description: projectDescription,
			StartDate:   projectStart,
			EndDate:     projectEnd,
			Thumbnails:  projectThumbnails,
		}
		if err := e.svc.UpdateProject(e.ctx, args[0], req); err != nil {
			return err
		}
		return done(e, "Project updated")
	}),
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <projectId>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.DeleteProject(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Project deleted")
	}),
}

func init() {
	for _, c := range []*cobra.Command{projectsAddCmd, projectsUpdateCmd} {
		c.Flags().StringVar(&projectName, "name", "", "Project name")
		c.Flags().StringVar(&projectDescription, "description", "", "Project description")
		c.Flags().StringVar(&projectStart, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&projectEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().StringSliceVar(&projectThumbnails, "thumbnail", nil, "Path to a thumbnail image (repeatable)")
	}
	projectsAddCmd.Flags().StringVar(&projectSize, "size", "", "Project size")
	projectsAddCmd.Flags().StringVar(&projectMaterial, "material", "", "Material id")
	projectsAddCmd.Flags().StringVar(&projectPDF, "pdf", "", "Path to the project PDF")

	projectsCmd.AddCommand(projectsListCmd, projectsGetCmd, projectsDetailsCmd, projectsAddCmd, projectsUpdateCmd, projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
