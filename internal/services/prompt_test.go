package services

import (
	"strings"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/lore"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

func testGameState() *state.GameState {
	return &state.GameState{
		CharacterName: "Mara",
		PlayerGender:  state.GenderFemale,
		Level:         5,
		XP:            40,
		XPToNextLevel: 500,
		Rebirths:      1,
		Skills: []state.Skill{
			{Name: "Survival", Level: 3, XP: 20, XPToNextLevel: 150},
		},
		Inventory: []string{"Worn Map", "Flint and Steel"},
		CurrentQuest: state.Quest{
			Title:      "Into the Mist",
			Objectives: []string{"Find the old road"},
		},
		Stats: []state.StatItem{
			{Name: "Health", Value: "120/120"},
		},
		Companion: &state.Companion{
			Name:        "Pip",
			Description: "A small fox spirit",
			Mood:        "curious",
			Stats:       []state.StatItem{{Name: "Loyalty", Value: "50/100"}},
		},
		Lorebook: []lore.Entry{
			{Title: "The Sundered Gate"},
		},
	}
}

func TestBuildStoryPrompt_ContainsContext(t *testing.T) {
	gs := testGameState()
	prompt := buildStoryPrompt("You stand at a crossroads.", "Press on", gs, locale.English)

	for _, want := range []string{
		"Mara",
		"Player Level: 5 (XP: 40/500), Rebirths: 1",
		"Survival (Lvl 3, XP: 20/150)",
		`"You stand at a crossroads."`,
		`"Press on"`,
		"Worn Map, Flint and Steel",
		"Into the Mist",
		"Health: 120/120",
		"Pip",
		`"The Sundered Gate"`,
		"REBIRTH",
		"rewards_gained",
		"visual_description",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildStoryPrompt_EmptySections(t *testing.T) {
	gs := &state.GameState{
		CharacterName: "Rook",
		PlayerGender:  state.GenderMale,
		Level:         1,
		XPToNextLevel: 100,
	}
	prompt := buildStoryPrompt("", "Begin", gs, locale.English)

	for _, want := range []string{
		"Player has no skills yet.",
		"No stats yet.",
		"Player does not have a companion yet.",
		"Player has not discovered any lore yet.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing empty-section marker %q", want)
		}
	}
}

func TestBuildStoryPrompt_LanguageInstruction(t *testing.T) {
	gs := testGameState()

	th := buildStoryPrompt("story", "choice", gs, locale.Thai)
	if !strings.Contains(th, "in Thai language") {
		t.Error("thai prompt missing language instruction")
	}
	if !strings.Contains(th, "must be in English") {
		t.Error("thai prompt must still force English visual prompts")
	}

	en := buildStoryPrompt("story", "choice", gs, locale.English)
	if !strings.Contains(en, "in English language") {
		t.Error("english prompt missing language instruction")
	}
}

func TestBuildCraftingPrompt(t *testing.T) {
	prompt := buildCraftingPrompt(
		[]string{"Stick", "Rock"},
		[]string{"Stick", "Rock", "Rope"},
		locale.English,
	)

	for _, want := range []string{
		"Items Selected for Crafting: [Stick, Rock]",
		"Player's Full Inventory: [Stick, Rock, Rope]",
		"Crafting Master",
		"in English language",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("crafting prompt missing %q", want)
		}
	}

	th := buildCraftingPrompt([]string{"Stick"}, []string{"Stick"}, locale.Thai)
	if !strings.Contains(th, "in Thai language") {
		t.Error("thai crafting prompt missing language instruction")
	}
}
