package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// AverageHitPointIncrease is floor(die/2) + 1 + conMod, floored at 1
func AverageHitPointIncrease(style dnd5e.CastingStyle, constitution int) int {
	die := style.HitPoints().HitDie
	return max(1, die/2+1+AbilityModifier(constitution))
}

// RolledHitPointIncrease is roll + conMod, floored at 1. The roll is clamped
// to the die's faces.
func RolledHitPointIncrease(style dnd5e.CastingStyle, constitution, roll int) int {
	die := style.HitPoints().HitDie
	roll = min(max(roll, 1), die)
	return max(1, roll+AbilityModifier(constitution))
}

// ManualHitPointIncrease floors a player-entered value at 1
func ManualHitPointIncrease(value int) int {
	return max(1, value)
}

// HitPointIncrease computes the wizard's per-level increase for method.
// value is the die roll or the manual entry and is ignored for average.
func HitPointIncrease(style dnd5e.CastingStyle, constitution int, method HitPointMethod, value int) int {
	switch method {
	case HitPointMethodRoll:
		return RolledHitPointIncrease(style, constitution, value)
	case HitPointMethodManual:
		return ManualHitPointIncrease(value)
	default:
		return AverageHitPointIncrease(style, constitution)
	}
}

// FullHitPoints recomputes maximum hit points from scratch:
// base + conMod + (level-1) * (avgPerLevel + conMod), floored at 1
func FullHitPoints(style dnd5e.CastingStyle, level, constitution int) int {
	profile := style.HitPoints()
	conMod := AbilityModifier(constitution)
	level = max(level, dnd5e.MinLevel)

	return max(1, profile.Base+conMod+(level-1)*(profile.AvgPerLevel+conMod))
}
