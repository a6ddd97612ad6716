package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/api"
)

func newSharesCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares",
		Short: "List and manage access grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			shares, err := app.client.ListShares(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range shares {
				fmt.Printf("%s  %s/%s -> %s (%s)\n",
					s.ID, s.ResourceType, s.ResourceID, s.GranteeID, s.Permission)
			}
			return nil
		},
	}

	var permission string
	grant := &cobra.Command{
		Use:   "grant <resource-type> <resource-id> <grantee-id>",
		Short: "Grant a user access to a memory or document",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			share, err := app.client.CreateShare(cmd.Context(), api.CreateShareRequest{
				ResourceType: args[0],
				ResourceID:   args[1],
				GranteeID:    args[2],
				Permission:   permission,
			})
			if err != nil {
				return err
			}
			fmt.Printf("granted %s on %s/%s to %s (%s)\n",
				share.Permission, share.ResourceType, share.ResourceID, share.GranteeID, share.ID)
			return nil
		},
	}
	grant.Flags().StringVar(&permission, "permission", "read", "read or write")

	revoke := &cobra.Command{
		Use:   "revoke <share-id>",
		Short: "Revoke a grant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.RevokeShare(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(grant, revoke)
	return cmd
}
