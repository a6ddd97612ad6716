package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/illing1230/ai-memory-agent-sub000/api"
	"github.com/illing1230/ai-memory-agent-sub000/core"
	"github.com/illing1230/ai-memory-agent-sub000/realtime"
)

func newChatCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <room-id>",
		Short: "Open a live chat session for a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireLogin(); err != nil {
				return err
			}
			roomID := args[0]
			ctx := cmd.Context()

			// Latest page over REST first; pushed duplicates are
			// dropped by ID.
			page, err := app.client.ListMessages(ctx, roomID, 50, 0)
			if err != nil {
				return err
			}

			conn, err := realtime.Dial(ctx, app.cfg.Realtime.URL, roomID, app.session.Token(),
				realtime.WithLogger(app.logger),
				realtime.WithKeepaliveInterval(app.cfg.Realtime.Keepalive()),
				realtime.WithReconnectDelay(app.cfg.Realtime.ReconnectDelay()),
				realtime.WithMaxReconnects(app.cfg.Realtime.MaxReconnects),
				realtime.WithMemberInvalidator(app.client.InvalidateRoomMembers),
			)
			if err != nil {
				return err
			}
			defer conn.Close()

			conn.Hydrate(page.Messages)
			for _, msg := range conn.Messages() {
				printMessage(msg)
			}

			// Stdin lines become outbound messages. When the socket
			// is down the send falls back to the HTTP path.
			go func() {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					line := scanner.Text()
					if line == "" {
						continue
					}
					if _, err := conn.SendChatMessage(line); err != nil {
						if !errors.Is(err, realtime.ErrNotConnected) {
							fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
							continue
						}
						if _, err := app.client.SendMessage(ctx, roomID, api.SendMessageRequest{Content: line}); err != nil {
							fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
						}
					}
				}
				conn.Close()
			}()

			for {
				select {
				case ev := <-conn.Events():
					switch ev.Type {
					case core.EventMessageNew:
						printMessage(*ev.Message)
					case core.EventMemberJoin:
						fmt.Printf("* %s joined\n", ev.Member.Name)
					case core.EventMemberLeave:
						fmt.Printf("* %s left\n", ev.Member.Name)
					case core.EventRoomInfo:
						fmt.Printf("* room: %s (%d members)\n", ev.Room.Name, ev.Room.MemberCount)
					case core.EventMemoryExtracted:
						fmt.Printf("* memory extracted: %s\n", ev.Memory.ID)
					case realtime.EventConnected:
						fmt.Println("* connected")
					case realtime.EventDisconnected:
						fmt.Println("* disconnected, retrying...")
					}
				case <-conn.Done():
					return nil
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}

func printMessage(msg core.Message) {
	sender := msg.Sender
	if sender == "" {
		sender = msg.SenderID
	}
	fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04"), sender, msg.Content)
}
