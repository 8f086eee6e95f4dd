package services

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/locale"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// languageInstruction tells the narrator which language to write in.
// Visual prompts stay in English for the image backend.
func languageInstruction(lang locale.Language) string {
	if lang == locale.Thai {
		return "Generate all text output (story, choices, quest, inventory, stat names, lore title and content, companion details, skill names and descriptions, rewards) in Thai language. The only exception is visual_description and lore image_prompt, which must be in English."
	}
	return "Generate all text output (story, choices, quest, inventory, stat names, lore title and content, companion details, skill names and descriptions, rewards) in English language."
}

// buildStoryPrompt assembles the full game-master prompt for one turn:
// the player context blocks followed by the task rules, including the
// leveling and rebirth instructions the rules engine re-validates.
func buildStoryPrompt(previousStory, choice string, gs *state.GameState, lang locale.Language) string {
	var b strings.Builder

	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "Player's Name: %s\n", gs.CharacterName)
	fmt.Fprintf(&b, "Player's Gender: %s\n", gs.PlayerGender)
	fmt.Fprintf(&b, "Player Level: %d (XP: %d/%d), Rebirths: %d\n", gs.Level, gs.XP, gs.XPToNextLevel, gs.Rebirths)

	if len(gs.Skills) > 0 {
		parts := make([]string, 0, len(gs.Skills))
		for _, s := range gs.Skills {
			parts = append(parts, fmt.Sprintf("%s (Lvl %d, XP: %d/%d)", s.Name, s.Level, s.XP, s.XPToNextLevel))
		}
		fmt.Fprintf(&b, "Player Skills: [%s]\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("Player has no skills yet.\n")
	}

	fmt.Fprintf(&b, "Previous Story: %q\n", previousStory)
	fmt.Fprintf(&b, "Player's Choice: %q\n", choice)
	fmt.Fprintf(&b, "Current Inventory: [%s]\n", strings.Join(gs.Inventory, ", "))
	fmt.Fprintf(&b, "Current Quest: \"Title: %s, Objectives: [%s]\"\n",
		gs.CurrentQuest.Title, strings.Join(gs.CurrentQuest.Objectives, ", "))

	if len(gs.Stats) > 0 {
		parts := make([]string, 0, len(gs.Stats))
		for _, s := range gs.Stats {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Name, s.Value))
		}
		fmt.Fprintf(&b, "Player's Stats: [%s]\n", strings.Join(parts, ", "))
	} else {
		b.WriteString("Player's Stats: [No stats yet.]\n")
	}

	if gs.Companion != nil {
		parts := make([]string, 0, len(gs.Companion.Stats))
		for _, s := range gs.Companion.Stats {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Name, s.Value))
		}
		fmt.Fprintf(&b, "Current Companion State: { Name: %s, Description: %q, Mood: %q, Stats: [%s] }\n",
			gs.Companion.Name, gs.Companion.Description, gs.Companion.Mood, strings.Join(parts, ", "))
	} else {
		b.WriteString("Companion State: Player does not have a companion yet.\n")
	}

	if len(gs.Lorebook) > 0 {
		titles := make([]string, 0, len(gs.Lorebook))
		for _, e := range gs.Lorebook {
			titles = append(titles, fmt.Sprintf("%q", e.Title))
		}
		fmt.Fprintf(&b, "Known Lore: Player already knows about: [%s]\n", strings.Join(titles, ", "))
	} else {
		b.WriteString("Known Lore: Player has not discovered any lore yet.\n")
	}

	b.WriteString(`
Task:
You are a master storyteller and game master for a dark fantasy RPG. Continue the adventure.
1. Story Progression & XP: Based on the player's action, write the next story segment (max 150 words). Award a logical amount of character XP and skill XP for any skills used.
2. Leveling Up: If character XP >= xp_to_next_level, level them up. Increment level, carry over excess xp, and set the new xp_to_next_level to level * 100. Max level is 99.
3. REBIRTH (CRITICAL): If level is 99 and the player levels up, they Rebirth. Set level to 1, increment rebirths by 1, describe a powerful transcendent event in the story, DOUBLE their core stats (e.g. "100/100" becomes "200/200"), and RESET ALL SKILLS to level 1 and 0 XP.
4. Skill Management: Level up skills (max 50) if their XP threshold is met. Set a new xp_to_next_level for the skill. Occasionally, you can grant a NEW skill as a reward.
5. Lore Rewards: Only include NEWLY discovered lore; never resend lore the player already knows. If a lore discovery grants items or skills, list their names in that entry's rewards_gained array.
6. Companion: Ensure the companion is an active participant. Create one if the player has none.
7. State Updates: Update inventory, quest and player stats logically.
8. Next Step: Provide 3-4 new choices and a concise English visual_description for an image generator.
`)
	b.WriteString(languageInstruction(lang))
	return b.String()
}

// buildCraftingPrompt assembles the crafting-master prompt.
func buildCraftingPrompt(selected, inventory []string, lang locale.Language) string {
	var b strings.Builder

	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "Player's Full Inventory: [%s]\n", strings.Join(inventory, ", "))
	fmt.Fprintf(&b, "Items Selected for Crafting: [%s]\n", strings.Join(selected, ", "))

	b.WriteString(`
Task:
You are the Crafting Master in a dark fantasy RPG. Determine the outcome of combining the selected items. Be creative, logical, and unpredictable. Not all combinations should succeed.
1. If the combination is plausible, rule it a success. The result should be a single new item. Decide which of the selected items are consumed.
2. If the combination is illogical or fails, rule it a failure. Describe the failure (e.g. they explode, fizzle into dust, create a useless item). Decide if any items are consumed in the failure.
3. Provide a message for the player explaining the result.
`)
	if lang == locale.Thai {
		b.WriteString("Generate all text output (new_item_name, message) in Thai language.")
	} else {
		b.WriteString("Generate all text output (new_item_name, message) in English language.")
	}
	return b.String()
}
