package state

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/lore"
)

func TestApplyProgression_LevelCarry(t *testing.T) {
	current := GameState{CharacterName: "Mara", Level: 5, XP: 10, XPToNextLevel: 500}
	delta := NarratorDelta{Level: 5, XP: 105, XPToNextLevel: 100}

	next := ApplyProgression(current, delta)

	if next.Level != 6 {
		t.Errorf("expected level 6, got %d", next.Level)
	}
	if next.XP != 5 {
		t.Errorf("expected xp 5, got %d", next.XP)
	}
	if next.XPToNextLevel != 600 {
		t.Errorf("expected xp_to_next_level 600, got %d", next.XPToNextLevel)
	}
}

func TestApplyProgression_MultiLevelCarry(t *testing.T) {
	delta := NarratorDelta{Level: 1, XP: 310, XPToNextLevel: 100}
	next := ApplyProgression(GameState{}, delta)

	// 310 xp clears level 1 (100) and level 2 (200), leaving 10 toward level 3.
	if next.Level != 3 || next.XP != 10 || next.XPToNextLevel != 300 {
		t.Errorf("expected level 3 with 10/300 xp, got level %d with %d/%d",
			next.Level, next.XP, next.XPToNextLevel)
	}
}

func TestApplyProgression_XPInvariant(t *testing.T) {
	deltas := []NarratorDelta{
		{Level: 1, XP: 99, XPToNextLevel: 100},
		{Level: 1, XP: 100, XPToNextLevel: 100},
		{Level: 42, XP: 50000, XPToNextLevel: 4200},
		{Level: 99, XP: 30000, XPToNextLevel: 9900},
	}
	for _, d := range deltas {
		next := ApplyProgression(GameState{}, d)
		if next.XP >= next.XPToNextLevel {
			t.Errorf("delta %+v: xp %d >= threshold %d", d, next.XP, next.XPToNextLevel)
		}
		if next.Level < 1 || next.Level > MaxLevel {
			t.Errorf("delta %+v: level %d out of range", d, next.Level)
		}
	}
}

func TestApplyProgression_Rebirth(t *testing.T) {
	delta := NarratorDelta{
		Level:         99,
		XP:            9950,
		XPToNextLevel: 9900,
		Rebirths:      2,
		Stats: []StatItem{
			{Name: "Health", Value: "100/100"},
			{Name: "Mana", Value: "340/500"},
			{Name: "Affliction", Value: "Cursed"},
		},
		Skills: []Skill{
			{Name: "Swordplay", Description: "Blade work", Level: 37, XP: 410, XPToNextLevel: 1850},
			{Name: "Alchemy", Description: "Brewing", Level: 12, XP: 5, XPToNextLevel: 600},
		},
	}

	next := ApplyProgression(GameState{}, delta)

	if next.Level != 1 {
		t.Errorf("expected level 1 after rebirth, got %d", next.Level)
	}
	if next.Rebirths != 3 {
		t.Errorf("expected rebirths 3, got %d", next.Rebirths)
	}
	if next.XP != 50 || next.XPToNextLevel != 100 {
		t.Errorf("expected 50/100 xp after rebirth, got %d/%d", next.XP, next.XPToNextLevel)
	}

	wantStats := map[string]string{
		"Health":     "200/200",
		"Mana":       "680/1000",
		"Affliction": "Cursed",
	}
	for _, s := range next.Stats {
		if want := wantStats[s.Name]; s.Value != want {
			t.Errorf("stat %s: expected %q, got %q", s.Name, want, s.Value)
		}
	}

	for _, s := range next.Skills {
		if s.Level != 1 || s.XP != 0 {
			t.Errorf("skill %s not reset: level %d, xp %d", s.Name, s.Level, s.XP)
		}
		if s.XPToNextLevel != SkillXPThreshold(1) {
			t.Errorf("skill %s threshold not reset: %d", s.Name, s.XPToNextLevel)
		}
		if s.Description == "" {
			t.Errorf("skill %s lost its description", s.Name)
		}
	}
}

func TestApplyProgression_SkillLeveling(t *testing.T) {
	tests := []struct {
		name      string
		skill     Skill
		wantLevel int
		wantXP    int
	}{
		{
			name:      "carry over one level",
			skill:     Skill{Name: "Tracking", Level: 2, XP: 120, XPToNextLevel: 100},
			wantLevel: 3,
			wantXP:    20,
		},
		{
			name:      "below threshold unchanged",
			skill:     Skill{Name: "Tracking", Level: 4, XP: 30, XPToNextLevel: 200},
			wantLevel: 4,
			wantXP:    30,
		},
		{
			name:      "capped at max skill level",
			skill:     Skill{Name: "Swordplay", Level: 50, XP: 99999, XPToNextLevel: 2500},
			wantLevel: 50,
			wantXP:    SkillXPThreshold(50) - 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			delta := NarratorDelta{Level: 1, XP: 0, XPToNextLevel: 100, Skills: []Skill{tc.skill}}
			next := ApplyProgression(GameState{}, delta)

			got := next.Skills[0]
			if got.Level != tc.wantLevel {
				t.Errorf("expected level %d, got %d", tc.wantLevel, got.Level)
			}
			if got.XP != tc.wantXP {
				t.Errorf("expected xp %d, got %d", tc.wantXP, got.XP)
			}
			if got.XP >= got.XPToNextLevel {
				t.Errorf("xp invariant broken: %d >= %d", got.XP, got.XPToNextLevel)
			}
		})
	}
}

func TestApplyProgression_PreservesIdentityAndLore(t *testing.T) {
	entry := lore.Entry{ID: uuid.New(), Title: "The Sunken Bell"}
	current := GameState{
		CharacterName: "Mara",
		PlayerGender:  GenderFemale,
		Level:         3,
		XP:            0,
		XPToNextLevel: 300,
		Lorebook:      []lore.Entry{entry},
	}
	delta := NarratorDelta{
		Level:         3,
		XP:            40,
		XPToNextLevel: 300,
		Inventory:     []string{"Lantern"},
		CurrentQuest:  Quest{Title: "Into the Dark", Objectives: []string{"Find the stairs"}},
		Companion:     &Companion{Name: "Pip", Mood: "Anxious"},
	}

	next := ApplyProgression(current, delta)

	if next.CharacterName != "Mara" || next.PlayerGender != GenderFemale {
		t.Error("character identity was not preserved")
	}
	if len(next.Lorebook) != 1 || next.Lorebook[0].ID != entry.ID {
		t.Error("lorebook must be untouched by progression")
	}
	if len(next.Inventory) != 1 || next.Inventory[0] != "Lantern" {
		t.Errorf("inventory not replaced from delta: %v", next.Inventory)
	}
	if next.CurrentQuest.Title != "Into the Dark" {
		t.Errorf("quest not replaced from delta: %+v", next.CurrentQuest)
	}
	if next.Companion == nil || next.Companion.Name != "Pip" {
		t.Error("companion not replaced from delta")
	}

	// The returned state must not alias the delta's slices.
	delta.Inventory[0] = "changed"
	if next.Inventory[0] != "Lantern" {
		t.Error("next state aliases delta inventory")
	}
}

func TestNarratorDelta_Validate(t *testing.T) {
	valid := NarratorDelta{Level: 1, XP: 0, XPToNextLevel: 100}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid delta, got %v", err)
	}

	tests := []struct {
		name  string
		delta NarratorDelta
	}{
		{"zero level", NarratorDelta{Level: 0, XPToNextLevel: 100}},
		{"level above cap", NarratorDelta{Level: 100, XPToNextLevel: 100}},
		{"negative xp", NarratorDelta{Level: 1, XP: -1, XPToNextLevel: 100}},
		{"missing threshold", NarratorDelta{Level: 1, XP: 0}},
		{"skill missing name", NarratorDelta{
			Level: 1, XPToNextLevel: 100,
			Skills: []Skill{{Level: 1, XPToNextLevel: 50}},
		}},
		{"skill above cap", NarratorDelta{
			Level: 1, XPToNextLevel: 100,
			Skills: []Skill{{Name: "Swordplay", Level: 51, XPToNextLevel: 50}},
		}},
		{"lore entry without title", NarratorDelta{
			Level: 1, XPToNextLevel: 100,
			Lorebook: []lore.NewEntry{{Content: "orphan"}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.delta.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	var nilDelta *NarratorDelta
	if err := nilDelta.Validate(); err == nil {
		t.Error("expected error for nil delta")
	}
}

func TestValidateStory(t *testing.T) {
	ok := &StorySegment{
		StoryText:         "The mist parts.",
		Choices:           []string{"Go north", "Go south", "Wait"},
		VisualDescription: "A misty forest path",
	}
	if err := ValidateStory(ok); err != nil {
		t.Errorf("expected valid story, got %v", err)
	}

	if err := ValidateStory(nil); err == nil {
		t.Error("expected error for nil story")
	}
	if err := ValidateStory(&StorySegment{StoryText: "x", Choices: []string{"a", "b"}}); err == nil {
		t.Error("expected error for too few choices")
	}
	if err := ValidateStory(&StorySegment{Choices: []string{"a", "b", "c"}}); err == nil {
		t.Error("expected error for empty story text")
	}
}
