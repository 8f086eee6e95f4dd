package state

import (
	"encoding/json"

	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/lore"
)

// Gender is the player's chosen gender, used only for narration context.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

const (
	MaxLevel      = 99
	MaxSkillLevel = 50
)

// StatItem is a single named character statistic. Values are free-form
// strings so the narrator can track things like "120/150" or "Cursed".
type StatItem struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Quest is the player's current objective set.
type Quest struct {
	Title      string   `json:"title"`
	Objectives []string `json:"objectives"`
}

// Skill is a named player ability that levels independently of the
// character, capped at MaxSkillLevel. Identity is the skill name.
type Skill struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
}

// Companion is the player's AI companion. It is replaced wholesale by the
// narrator each turn when present.
type Companion struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Mood        string     `json:"mood"`
	Stats       []StatItem `json:"stats"`
}

// StorySegment is the narrator's latest output. It is replaced wholesale
// each turn, never merged.
type StorySegment struct {
	StoryText         string   `json:"story_text"`
	Choices           []string `json:"choices"`
	VisualDescription string   `json:"visual_description"`
}

// GameState is the canonical state of one adventure. It is owned by the
// engine, which is its only writer; all mutation flows through the pure
// rule functions.
type GameState struct {
	CharacterName string `json:"character_name"`
	PlayerGender  Gender `json:"player_gender"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
	Rebirths      int `json:"rebirths"`

	Skills       []Skill      `json:"skills"`
	Inventory    []string     `json:"inventory"`
	CurrentQuest Quest        `json:"current_quest"`
	Stats        []StatItem   `json:"stats"`
	Lorebook     []lore.Entry `json:"lorebook"`
	Companion    *Companion   `json:"companion,omitempty"`
}

// SavedSnapshot is the full serializable unit written to the save slot.
// Image bytes are base64-encoded on the wire by encoding/json.
type SavedSnapshot struct {
	StorySegment *StorySegment   `json:"story_segment"`
	GameState    *GameState      `json:"game_state"`
	Image        []byte          `json:"image,omitempty"`
	Language     locale.Language `json:"language"`
}

// DeepCopy returns an independent copy of the game state.
func (gs *GameState) DeepCopy() (*GameState, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, err
	}
	var out GameState
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// XPThreshold is the character xp needed to clear the given level.
func XPThreshold(level int) int {
	return level * 100
}

// SkillXPThreshold is the skill xp needed to clear the given skill level.
func SkillXPThreshold(level int) int {
	return level * 50
}
