package main

import (
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/spf13/cobra"
)

var (
	materialName        string
	materialDescription string
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Manage materials",
}

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch all materials",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		return fetchAndPrint(e, cache.KeyMaterials, "")
	}),
}

var materialsGetCmd = &cobra.Command{
	Use:   "get <materialId>",
	Short: "Fetch one material without touching the cache",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		m, err := e.svc.FetchMaterialByID(e.ctx, args[0])
		if err != nil {
			return err
		}
		return e.print(m)
	}),
}

var materialsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a material",
	Args:  cobra.NoArgs,
	RunE: run(func(e *env, _ []string) error {
		req := domain.MaterialRequest{Name: materialName, Description: materialDescription}
		if err := e.svc.AddMaterial(e.ctx, req); err != nil {
			return err
		}
		return done(e, "Material added")
	}),
}

var materialsUpdateCmd = &cobra.Command{
	Use:   "update <materialId>",
	Short: "Update a material",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		req := domain.MaterialRequest{Name: materialName, Description: materialDescription}
		if err := e.svc.UpdateMaterial(e.ctx, args[0], req); err != nil {
			return err
		}
		return done(e, "Material updated")
	}),
}

var materialsDeleteCmd = &cobra.Command{
	Use:   "delete <materialId>",
	Short: "Delete a material",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(e *env, args []string) error {
		if err := e.svc.DeleteMaterial(e.ctx, args[0]); err != nil {
			return err
		}
		return done(e, "Material deleted")
	}),
}

func init() {
	for _, c := range []*cobra.Command{materialsAddCmd, materialsUpdateCmd} {
		c.Flags().StringVar(&materialName, "name", "", "Material name")
		c.Flags().StringVar(&materialDescription, "description", "", "Material description")
	}

	materialsCmd.AddCommand(materialsListCmd, materialsGetCmd, materialsAddCmd, materialsUpdateCmd, materialsDeleteCmd)
	rootCmd.AddCommand(materialsCmd)
}
