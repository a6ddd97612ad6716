package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/api"
)

func newRoomsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List and manage chat rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			rooms, err := app.client.ListChatRooms(cmd.Context())
			if err != nil {
				return err
			}
			for _, room := range rooms {
				fmt.Printf("%s  %-24s %d members\n", room.ID, room.Name, room.MemberCount)
			}
			return nil
		},
	}

	var description, projectID string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			room, err := app.client.CreateChatRoom(cmd.Context(), api.CreateRoomRequest{
				Name:        args[0],
				Description: description,
				ProjectID:   projectID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created room %s (%s)\n", room.Name, room.ID)
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "room description")
	create.Flags().StringVar(&projectID, "project", "", "project to attach the room to")

	join := &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.JoinChatRoom(cmd.Context(), args[0])
		},
	}

	leave := &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.LeaveChatRoom(cmd.Context(), args[0])
		},
	}

	members := &cobra.Command{
		Use:   "members <room-id>",
		Short: "List a room's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			members, err := app.client.ListRoomMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, m := range members {
				fmt.Printf("%s  %-20s %s\n", m.UserID, m.Name, m.Role)
			}
			return nil
		},
	}

	info := &cobra.Command{
		Use:   "info <room-id>",
		Short: "Show a room's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			room, err := app.client.GetChatRoom(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n%s\nmembers: %d, owner: %s\n",
				room.Name, room.ID, room.Description, room.MemberCount, room.OwnerID)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteChatRoom(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(create, info, join, leave, members, del)
	return cmd
}
