package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Prefetch warms the query cache with the lists every view needs at
// startup: rooms, memories, documents and the agent catalog. The
// fetches run in parallel; the first error cancels the rest.
func (c *Client) Prefetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := c.ListChatRooms(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.ListMemories(ctx, "")
		return err
	})
	g.Go(func() error {
		_, err := c.ListDocuments(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.ListAgentTypes(ctx)
		return err
	})

	return g.Wait()
}
