// Package archetype holds the character-creation templates. Templates are
// data-driven so new specializations can be added without code changes.
package archetype

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

//go:embed archetypes.yaml
var rawArchetypes []byte

// DefaultID is the archetype used when the player skips specialization.
const DefaultID = "wanderer"

// Localized is a string with one value per supported language.
type Localized struct {
	EN string `yaml:"en"`
	TH string `yaml:"th"`
}

// For returns the value for the given language.
func (l Localized) For(lang locale.Language) string {
	if lang == locale.English {
		return l.EN
	}
	return l.TH
}

type statTemplate struct {
	Name  Localized `yaml:"name"`
	Value string    `yaml:"value"`
}

type skillTemplate struct {
	Name        Localized `yaml:"name"`
	Description Localized `yaml:"description"`
}

// Archetype is one specialization template: fixed starting inventory,
// stats and skills, with an empty lorebook.
type Archetype struct {
	ID          string          `yaml:"id"`
	Name        Localized       `yaml:"name"`
	Description Localized       `yaml:"description"`
	Inventory   []Localized     `yaml:"inventory"`
	Stats       []statTemplate  `yaml:"stats"`
	Skills      []skillTemplate `yaml:"skills"`
}

var archetypes []Archetype

func init() {
	if err := yaml.Unmarshal(rawArchetypes, &archetypes); err != nil {
		panic(fmt.Sprintf("archetype: invalid embedded archetypes.yaml: %v", err))
	}
}

// All returns every available archetype in definition order.
func All() []Archetype {
	return archetypes
}

// Get looks up an archetype by id.
func Get(id string) (*Archetype, bool) {
	for i := range archetypes {
		if archetypes[i].ID == id {
			return &archetypes[i], true
		}
	}
	return nil, false
}

// NewGameState builds the initial game state for a fresh adventure: the
// locale's starting quest and inventory plus the archetype's gear, stats
// and skills, at level 1 with an empty lorebook.
func (a *Archetype) NewGameState(characterName string, gender state.Gender, lang locale.Language) state.GameState {
	text := locale.TextFor(lang)

	inventory := append([]string(nil), text.InitialInventory...)
	for _, item := range a.Inventory {
		inventory = append(inventory, item.For(lang))
	}

	stats := make([]state.StatItem, 0, len(a.Stats))
	for _, s := range a.Stats {
		stats = append(stats, state.StatItem{Name: s.Name.For(lang), Value: s.Value})
	}

	skills := make([]state.Skill, 0, len(a.Skills))
	for _, s := range a.Skills {
		skills = append(skills, state.Skill{
			Name:          s.Name.For(lang),
			Description:   s.Description.For(lang),
			Level:         1,
			XP:            0,
			XPToNextLevel: state.SkillXPThreshold(1),
		})
	}

	return state.GameState{
		CharacterName: characterName,
		PlayerGender:  gender,
		Level:         1,
		XP:            0,
		XPToNextLevel: state.XPThreshold(1),
		Rebirths:      0,
		Skills:        skills,
		Inventory:     inventory,
		CurrentQuest: state.Quest{
			Title:      text.InitialQuestTitle,
			Objectives: append([]string(nil), text.InitialQuestObjectives...),
		},
		Stats: stats,
	}
}
