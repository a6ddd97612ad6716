package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/api"
	"github.com/illing1230/ai-memory-agent-sub000/memory"
)

func newMemoriesCmd(a **app) *cobra.Command {
	var roomID, memType string

	cmd := &cobra.Command{
		Use:   "memories",
		Short: "List extracted memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			memories, err := app.client.ListMemories(cmd.Context(), roomID)
			if err != nil {
				return err
			}
			memories = memory.FilterByType(memories, memType)
			memories = memory.RankForDisplay(memories)
			fmt.Println(memory.FormatList(memories, "", 4000))
			return nil
		},
	}
	cmd.Flags().StringVar(&roomID, "room", "", "filter by chat room")
	cmd.Flags().StringVar(&memType, "type", "", "filter by memory type")

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memories (ranked by the backend)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			results, err := app.client.SearchMemories(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Println(memory.FormatList(results, args[0], 4000))
			return nil
		},
	}
	search.Flags().IntVar(&limit, "limit", 20, "max results")

	del := &cobra.Command{
		Use:   "delete <memory-id>",
		Short: "Delete a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteMemory(cmd.Context(), args[0])
		},
	}

	tag := &cobra.Command{
		Use:   "tag <memory-id> <tag>...",
		Short: "Replace a memory's tags",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			mem, err := app.client.UpdateMemory(cmd.Context(), args[0], api.UpdateMemoryRequest{
				Tags: args[1:],
			})
			if err != nil {
				return err
			}
			fmt.Println(memory.Format(*mem, memory.FormatContext{}))
			return nil
		},
	}

	cmd.AddCommand(search, del, tag)
	return cmd
}
