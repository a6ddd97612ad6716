// Package memory presents backend-owned memory records for the
// client's list and search views.
//
// The backend owns the whole memory lifecycle: extraction from chat,
// embedding, search ranking, decay. The client only fetches pages of
// records and arranges them for display, so this package is limited
// to presentation concerns:
//   - RankForDisplay: importance-plus-recency ordering of a fetched page
//   - FilterByType / FilterByRoom: client-side narrowing of a page
//   - Format / FormatList: rendering within a length budget
//
// Nothing here creates, mutates or deletes memories; that goes
// through the api package.
package memory
