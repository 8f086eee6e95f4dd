package state

import (
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/lore"
)

// NarratorDelta is the narrator's proposed next game state. It is a full
// replacement for the progression fields; lore entries arrive as NewEntry
// values because only the engine may mint lore identities.
//
// A delta is untrusted until Validate has accepted it. The rules engine
// assumes a valid delta and performs no checks of its own.
type NarratorDelta struct {
	Level         int             `json:"level"`
	XP            int             `json:"xp"`
	XPToNextLevel int             `json:"xp_to_next_level"`
	Rebirths      int             `json:"rebirths"`
	Skills        []Skill         `json:"skills"`
	Inventory     []string        `json:"inventory"`
	CurrentQuest  Quest           `json:"current_quest"`
	Stats         []StatItem      `json:"stats"`
	Lorebook      []lore.NewEntry `json:"lorebook"`
	Companion     *Companion      `json:"companion,omitempty"`
}

// Validate performs boundary shape validation on a narrator delta.
// Malformed deltas are rejected here so the rules engine can stay a pure,
// infallible transform.
func (d *NarratorDelta) Validate() error {
	if d == nil {
		return fmt.Errorf("delta is nil")
	}
	if d.Level < 1 || d.Level > MaxLevel {
		return fmt.Errorf("level %d out of range [1,%d]", d.Level, MaxLevel)
	}
	if d.XP < 0 {
		return fmt.Errorf("xp %d is negative", d.XP)
	}
	if d.XPToNextLevel < 1 {
		return fmt.Errorf("xp_to_next_level %d must be positive", d.XPToNextLevel)
	}
	if d.Rebirths < 0 {
		return fmt.Errorf("rebirths %d is negative", d.Rebirths)
	}
	for i, s := range d.Skills {
		if s.Name == "" {
			return fmt.Errorf("skill %d has empty name", i)
		}
		if s.Level < 1 || s.Level > MaxSkillLevel {
			return fmt.Errorf("skill %q level %d out of range [1,%d]", s.Name, s.Level, MaxSkillLevel)
		}
		if s.XP < 0 {
			return fmt.Errorf("skill %q xp %d is negative", s.Name, s.XP)
		}
		if s.XPToNextLevel < 1 {
			return fmt.Errorf("skill %q xp_to_next_level %d must be positive", s.Name, s.XPToNextLevel)
		}
	}
	for i, e := range d.Lorebook {
		if e.Title == "" {
			return fmt.Errorf("lore entry %d has empty title", i)
		}
	}
	return nil
}

// ValidateStory performs boundary shape validation on a story segment.
func ValidateStory(s *StorySegment) error {
	if s == nil {
		return fmt.Errorf("story segment is nil")
	}
	if s.StoryText == "" {
		return fmt.Errorf("story text is empty")
	}
	if len(s.Choices) < 3 || len(s.Choices) > 4 {
		return fmt.Errorf("expected 3-4 choices, got %d", len(s.Choices))
	}
	return nil
}
