package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// Well-known memory types the backend extracts.
const (
	TypeConversation = "conversation"
	TypeDocument     = "document"
	TypeFact         = "fact"
)

// FormatContext provides context for rendering a memory.
type FormatContext struct {
	Query     string // current search query, if any
	MaxLength int    // max characters for this memory's output
}

// RankForDisplay orders a fetched page for the list view: importance
// first, with a recency boost so fresh memories surface even at
// moderate importance. Search results come back ranked by the backend
// and should not be re-ranked.
func RankForDisplay(memories []core.Memory) []core.Memory {
	out := make([]core.Memory, len(memories))
	copy(out, memories)

	now := time.Now()
	sort.SliceStable(out, func(i, j int) bool {
		return displayScore(out[i], now) > displayScore(out[j], now)
	})
	return out
}

// displayScore combines the backend's importance with a small recency
// boost.
func displayScore(mem core.Memory, now time.Time) float64 {
	score := mem.Importance
	age := now.Sub(mem.CreatedAt)
	switch {
	case age < 24*time.Hour:
		score += 0.2
	case age < 7*24*time.Hour:
		score += 0.1
	}
	return score
}

// FilterByType narrows a page to one memory type. An empty memType
// returns the page unchanged.
func FilterByType(memories []core.Memory, memType string) []core.Memory {
	if memType == "" {
		return memories
	}
	var out []core.Memory
	for _, mem := range memories {
		if mem.Type == memType {
			out = append(out, mem)
		}
	}
	return out
}

// FilterByRoom narrows a page to memories tied to one chat room. An
// empty roomID returns the page unchanged.
func FilterByRoom(memories []core.Memory, roomID string) []core.Memory {
	if roomID == "" {
		return memories
	}
	var out []core.Memory
	for _, mem := range memories {
		if mem.RoomID == roomID {
			out = append(out, mem)
		}
	}
	return out
}

// Format renders one memory within the context's length budget.
func Format(mem core.Memory, ctx FormatContext) string {
	var parts []string

	header := fmt.Sprintf("[%s] %s", mem.Type, mem.CreatedAt.Format("2006-01-02"))
	parts = append(parts, header)

	budget := ctx.MaxLength
	if budget <= 0 {
		budget = 200
	}
	parts = append(parts, "  "+truncate(mem.Content, budget))

	if len(mem.Tags) > 0 {
		parts = append(parts, "  tags: "+strings.Join(mem.Tags, ", "))
	}
	return strings.Join(parts, "\n")
}

// FormatList renders a page of memories, splitting a total character
// budget evenly across entries.
func FormatList(memories []core.Memory, query string, totalBudget int) string {
	if len(memories) == 0 {
		return ""
	}
	if totalBudget <= 0 {
		totalBudget = 2000
	}

	perMemory := totalBudget / len(memories)
	if perMemory < 100 {
		perMemory = 100
	}

	var parts []string
	for i, mem := range memories {
		formatted := Format(mem, FormatContext{Query: query, MaxLength: perMemory})
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, formatted))
	}
	return strings.Join(parts, "\n\n")
}

// truncate trims s to maxLen characters, appending "..." when cut.
// Cuts land on rune boundaries.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
