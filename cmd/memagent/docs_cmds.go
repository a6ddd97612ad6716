package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newDocsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "List and upload documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			docs, err := app.client.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			for _, doc := range docs {
				fmt.Printf("%s  %-32s %8d bytes  %s (%d chunks)\n",
					doc.ID, doc.Name, doc.SizeBytes, doc.Status, doc.ChunkCount)
			}
			return nil
		},
	}

	var roomID string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document, optionally linked to a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := app.client.UploadDocument(cmd.Context(), filepath.Base(args[0]), f, roomID)
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %s (%s), status %s\n", doc.Name, doc.ID, doc.Status)
			return nil
		},
	}
	upload.Flags().StringVar(&roomID, "room", "", "chat room to associate")

	link := &cobra.Command{
		Use:   "link <document-id> <room-id>",
		Short: "Link an existing document to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.LinkDocument(cmd.Context(), args[0], args[1])
		},
	}

	del := &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			return app.client.DeleteDocument(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(upload, link, del)
	return cmd
}
