package lore

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

func TestMerge_AppendOnly(t *testing.T) {
	var ledger []Entry

	batches := [][]NewEntry{
		{{Title: "The Sunken Bell", Content: "A bell that rings beneath the lake."}},
		{
			{Title: "Ash Kings", Content: "The dynasty that burned its own archives."},
			{Title: "The Sunken Bell", Content: "Resent by a confused narrator."},
		},
		nil,
	}

	seen := make(map[uuid.UUID]bool)
	total := 0
	for _, batch := range batches {
		var added []Entry
		ledger, added = Merge(ledger, batch)

		if len(added) != len(batch) {
			t.Fatalf("expected %d added entries, got %d", len(batch), len(added))
		}
		total += len(batch)
		if len(ledger) != total {
			t.Fatalf("expected ledger length %d, got %d", total, len(ledger))
		}

		for _, e := range ledger {
			if e.ID == uuid.Nil {
				t.Error("entry has nil ID")
			}
			if e.DiscoveredAt.IsZero() {
				t.Error("entry has zero discovery time")
			}
		}
	}

	// Every ID must be unique, even for duplicate titles.
	for _, e := range ledger {
		if seen[e.ID] {
			t.Errorf("duplicate entry ID %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestMerge_DoesNotMutateExisting(t *testing.T) {
	first, _ := Merge(nil, []NewEntry{{Title: "A", Content: "a"}})
	snapshot := first[0]

	_, _ = Merge(first, []NewEntry{{Title: "B", Content: "b"}})

	if !reflect.DeepEqual(first[0], snapshot) {
		t.Error("existing entry mutated by Merge")
	}
}

func TestFilterAndSort_Alpha(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Title: "Zeta", Content: "last"},
		{ID: uuid.New(), Title: "Alpha", Content: "first"},
	}

	got := FilterAndSort(entries, "", SortByTitle, language.English)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Title != "Alpha" || got[1].Title != "Zeta" {
		t.Errorf("expected [Alpha Zeta], got [%s %s]", got[0].Title, got[1].Title)
	}

	// Input order untouched.
	if entries[0].Title != "Zeta" {
		t.Error("input slice was mutated")
	}
}

func TestFilterAndSort_DateNewestFirst(t *testing.T) {
	older := Entry{ID: uuid.New(), Title: "Old", DiscoveredAt: time.Unix(100, 0)}
	newer := Entry{ID: uuid.New(), Title: "New", DiscoveredAt: time.Unix(200, 0)}

	got := FilterAndSort([]Entry{older, newer}, "", SortByDate, language.English)
	if got[0].Title != "New" {
		t.Errorf("expected newest entry first, got %q", got[0].Title)
	}
}

func TestFilterAndSort_TermMatchesTitleOrContent(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Title: "The Whispering Ruins", Content: "Stones that speak."},
		{ID: uuid.New(), Title: "Ash Kings", Content: "They whisper still."},
		{ID: uuid.New(), Title: "Sunken Bell", Content: "Silent now."},
	}

	tests := []struct {
		term string
		want int
	}{
		{"whisper", 2}, // title of one, content of another
		{"WHISPER", 2}, // case-insensitive
		{"bell", 1},
		{"dragon", 0},
		{"", 3},
	}

	for _, tc := range tests {
		got := FilterAndSort(entries, tc.term, SortByDate, language.English)
		if len(got) != tc.want {
			t.Errorf("term %q: expected %d matches, got %d", tc.term, tc.want, len(got))
		}
	}
}
