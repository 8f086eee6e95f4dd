package lore

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is a discovered lore record. Entries are immutable once created;
// the ledger is the sole creator and assigns ID and DiscoveredAt.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	DiscoveredAt  time.Time `json:"discovered_at"`
	ImagePrompt   string    `json:"image_prompt,omitempty"`
	RewardsGained []string  `json:"rewards_gained,omitempty"`
}

// NewEntry is the narrator-supplied shape: an Entry minus the
// engine-assigned identity fields.
type NewEntry struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	ImagePrompt   string   `json:"image_prompt,omitempty"`
	RewardsGained []string `json:"rewards_gained,omitempty"`
}

// Merge appends incoming entries to the existing ledger, assigning each a
// fresh ID and discovery time. The ledger is append-only: titles are not
// deduplicated here, since the narrator is asked not to resend known titles
// and titles are not unique across sessions anyway.
//
// The second return value holds only the entries added by this call, so the
// caller can emit discovery notifications.
func Merge(existing []Entry, incoming []NewEntry) ([]Entry, []Entry) {
	if len(incoming) == 0 {
		return existing, nil
	}

	now := time.Now().UTC()
	added := make([]Entry, 0, len(incoming))
	for _, in := range incoming {
		added = append(added, Entry{
			ID:            uuid.New(),
			Title:         in.Title,
			Content:       in.Content,
			DiscoveredAt:  now,
			ImagePrompt:   in.ImagePrompt,
			RewardsGained: in.RewardsGained,
		})
	}

	merged := make([]Entry, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return merged, added
}

// SortOrder selects how FilterAndSort orders its results.
type SortOrder string

const (
	SortByDate  SortOrder = "date"  // newest first
	SortByTitle SortOrder = "alpha" // locale-aware title ascending
)

// FilterAndSort returns a new slice of entries whose title or content
// contains term (case-insensitive), ordered per the given sort order.
// Title ordering is collated for the given language, so Thai titles sort
// correctly. The input slice is never mutated.
func FilterAndSort(entries []Entry, term string, order SortOrder, lang language.Tag) []Entry {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if term == "" ||
			strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Content), term) {
			out = append(out, e)
		}
	}

	switch order {
	case SortByTitle:
		c := collate.New(lang)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DiscoveredAt.After(out[j].DiscoveredAt)
		})
	}

	return out
}
