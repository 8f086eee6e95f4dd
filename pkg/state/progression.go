package state

import (
	"fmt"
	"regexp"
	"strconv"
)

// fractionStat matches stat values of the form "<current>/<max>",
// e.g. "100/100". Anything else is left untouched on rebirth.
var fractionStat = regexp.MustCompile(`^(\d+)/(\d+)$`)

// ApplyProgression resolves a validated narrator delta against the current
// game state and returns the next state. It is a pure transform: no I/O,
// no error path. The narrator is expected to pre-resolve one level-up, but
// the proposed numbers are re-validated here so a lazy delta can never
// leave xp at or above the threshold.
//
// Lorebook and character identity are untouched; lore is merged separately
// by the lore ledger.
func ApplyProgression(current GameState, delta NarratorDelta) GameState {
	next := current
	next.Level = delta.Level
	next.XP = delta.XP
	next.XPToNextLevel = delta.XPToNextLevel
	next.Rebirths = delta.Rebirths
	next.Inventory = append([]string(nil), delta.Inventory...)
	next.CurrentQuest = Quest{
		Title:      delta.CurrentQuest.Title,
		Objectives: append([]string(nil), delta.CurrentQuest.Objectives...),
	}
	next.Stats = append([]StatItem(nil), delta.Stats...)
	next.Skills = append([]Skill(nil), delta.Skills...)
	if delta.Companion != nil {
		companion := *delta.Companion
		companion.Stats = append([]StatItem(nil), delta.Companion.Stats...)
		next.Companion = &companion
	} else {
		next.Companion = nil
	}

	rebirthed := false
	for next.XP >= next.XPToNextLevel {
		next.XP -= next.XPToNextLevel
		if next.Level >= MaxLevel {
			// A level-up past the cap is a rebirth: back to level 1 with
			// doubled core stats and all skills reset.
			next.Level = 1
			next.Rebirths++
			next.Stats = doubleFractionStats(next.Stats)
			rebirthed = true
		} else {
			next.Level++
		}
		next.XPToNextLevel = XPThreshold(next.Level)
	}

	if rebirthed {
		for i := range next.Skills {
			next.Skills[i].Level = 1
			next.Skills[i].XP = 0
			next.Skills[i].XPToNextLevel = SkillXPThreshold(1)
		}
	} else {
		for i := range next.Skills {
			next.Skills[i] = levelSkill(next.Skills[i])
		}
	}

	return next
}

// levelSkill applies the same threshold/carry logic as character leveling
// to one skill, capped at MaxSkillLevel. Surplus xp at the cap is clamped
// so the xp < threshold invariant still holds.
func levelSkill(s Skill) Skill {
	for s.XP >= s.XPToNextLevel && s.Level < MaxSkillLevel {
		s.XP -= s.XPToNextLevel
		s.Level++
		s.XPToNextLevel = SkillXPThreshold(s.Level)
	}
	if s.XP >= s.XPToNextLevel {
		s.XP = s.XPToNextLevel - 1
	}
	return s
}

// doubleFractionStats doubles both numbers of every "cur/max" stat value,
// leaving non-numeric values untouched.
func doubleFractionStats(stats []StatItem) []StatItem {
	out := make([]StatItem, len(stats))
	for i, s := range stats {
		if m := fractionStat.FindStringSubmatch(s.Value); m != nil {
			cur, errCur := strconv.Atoi(m[1])
			max, errMax := strconv.Atoi(m[2])
			if errCur == nil && errMax == nil {
				s.Value = fmt.Sprintf("%d/%d", cur*2, max*2)
			}
		}
		out[i] = s
	}
	return out
}
