package locale

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	if Parse("en") != English {
		t.Error("en must parse as English")
	}
	for _, s := range []string{"th", "", "fr", "EN"} {
		if Parse(s) != Thai {
			t.Errorf("%q must default to Thai", s)
		}
	}
}

func TestTag(t *testing.T) {
	if Thai.Tag() != language.Thai || English.Tag() != language.English {
		t.Error("language tags do not match")
	}
}

func TestTextTablesComplete(t *testing.T) {
	for _, lang := range []Language{Thai, English} {
		text := TextFor(lang)

		if text.MainTitle == "" || text.ErrQuota == "" || text.ErrGeneric == "" ||
			text.CraftingFallback == "" || text.SavedMessage == "" {
			t.Errorf("lang %s: missing system copy", lang)
		}
		if !strings.Contains(text.LoreDiscovered, "%s") {
			t.Errorf("lang %s: LoreDiscovered must carry a title placeholder", lang)
		}
		if text.InitialQuestTitle == "" || text.InitialChoice == "" || text.InitialStoryContext == "" {
			t.Errorf("lang %s: missing bootstrap copy", lang)
		}
		if len(text.InitialInventory) == 0 || len(text.InitialQuestObjectives) == 0 {
			t.Errorf("lang %s: missing starting lists", lang)
		}
	}
}

func TestTextFor_UnknownFallsBackToThai(t *testing.T) {
	if TextFor(Language("de")).MainTitle != TextFor(Thai).MainTitle {
		t.Error("unknown language must fall back to Thai copy")
	}
}
