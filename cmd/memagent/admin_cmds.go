package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/api"
)

func newAdminCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration: stats, projects, departments",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			s, err := app.client.AdminStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("users: %d\nrooms: %d\nmemories: %d\ndocuments: %d\nagents: %d\n",
				s.UserCount, s.RoomCount, s.MemoryCount, s.DocumentCount, s.AgentCount)
			return nil
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			list, err := app.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range list {
				fmt.Printf("%s  %-24s %-32s %s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return nil
		},
	}

	projects := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			list, err := app.client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Printf("%s  %s\n", p.ID, p.Name)
			}
			return nil
		},
	}

	var departmentID string
	projectCreate := &cobra.Command{
		Use:   "project-create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			p, err := app.client.CreateProject(cmd.Context(), api.CreateProjectRequest{
				Name:         args[0],
				DepartmentID: departmentID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	projectCreate.Flags().StringVar(&departmentID, "department", "", "owning department")

	departments := &cobra.Command{
		Use:   "departments",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			list, err := app.client.ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			for _, d := range list {
				fmt.Printf("%s  %s\n", d.ID, d.Name)
			}
			return nil
		},
	}

	departmentCreate := &cobra.Command{
		Use:   "department-create <name>",
		Short: "Create a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			d, err := app.client.CreateDepartment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created department %s (%s)\n", d.Name, d.ID)
			return nil
		},
	}

	projectDelete := &cobra.Command{
		Use:   "project-delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteProject(cmd.Context(), args[0])
		},
	}

	departmentDelete := &cobra.Command{
		Use:   "department-delete <department-id>",
		Short: "Delete a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteDepartment(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(stats, users, projects, projectCreate, projectDelete,
		departments, departmentCreate, departmentDelete)
	return cmd
}

func newPrefetchCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch",
		Short: "Warm the query cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.client.Prefetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("cache warmed")
			return nil
		},
	}
}
