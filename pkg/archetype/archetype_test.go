package archetype

import (
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

func TestEmbeddedArchetypes(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("no archetypes loaded")
	}

	seen := make(map[string]bool)
	for _, a := range all {
		if a.ID == "" {
			t.Error("archetype with empty id")
		}
		if seen[a.ID] {
			t.Errorf("duplicate archetype id %q", a.ID)
		}
		seen[a.ID] = true

		if a.Name.EN == "" || a.Name.TH == "" {
			t.Errorf("archetype %q missing localized name", a.ID)
		}
	}

	if _, ok := Get(DefaultID); !ok {
		t.Fatalf("default archetype %q not found", DefaultID)
	}
	if _, ok := Get("no-such-archetype"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestNewGameState(t *testing.T) {
	a, ok := Get(DefaultID)
	if !ok {
		t.Fatal("default archetype not found")
	}

	for _, lang := range []locale.Language{locale.English, locale.Thai} {
		gs := a.NewGameState("Mara", state.GenderFemale, lang)

		if gs.CharacterName != "Mara" || gs.PlayerGender != state.GenderFemale {
			t.Error("character identity not applied")
		}
		if gs.Level != 1 || gs.XP != 0 || gs.XPToNextLevel != state.XPThreshold(1) {
			t.Errorf("unexpected starting progression: %d %d/%d", gs.Level, gs.XP, gs.XPToNextLevel)
		}
		if gs.Rebirths != 0 {
			t.Errorf("expected 0 rebirths, got %d", gs.Rebirths)
		}
		if len(gs.Lorebook) != 0 {
			t.Error("lorebook must start empty")
		}

		text := locale.TextFor(lang)
		if gs.CurrentQuest.Title != text.InitialQuestTitle {
			t.Errorf("lang %s: quest title %q", lang, gs.CurrentQuest.Title)
		}
		// Template inventory first, archetype gear appended after.
		if len(gs.Inventory) != len(text.InitialInventory)+len(a.Inventory) {
			t.Errorf("lang %s: expected %d items, got %d",
				lang, len(text.InitialInventory)+len(a.Inventory), len(gs.Inventory))
		}

		for _, s := range gs.Skills {
			if s.Level != 1 || s.XP != 0 || s.XPToNextLevel != state.SkillXPThreshold(1) {
				t.Errorf("skill %q not at baseline: %+v", s.Name, s)
			}
		}
	}
}
