package engine

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// Audit finding kinds
const (
	FindingLevelRange     = "level_range"
	FindingUnknownFeat    = "unknown_feat"
	FindingUnknownHerit   = "unknown_heritage"
	FindingLevel1Conflict = "level1_conflict"
	FindingHitPoints      = "hit_points"
	FindingAbilityMirror  = "ability_mirror"
	FindingAbilityCap     = "ability_cap"
	FindingASILevel       = "asi_level"
)

// AuditFinding is one inconsistency in a stored character
type AuditFinding struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Audit reports what a stored character holds that the rules would never
// produce. An empty result means the snapshot is consistent.
func (e *engine) Audit(character *dnd5e.Character) []AuditFinding {
	if character == nil {
		return nil
	}

	var out []AuditFinding
	add := func(kind, format string, args ...any) {
		out = append(out, AuditFinding{Kind: kind, Message: fmt.Sprintf(format, args...)})
	}

	if character.Level < dnd5e.MinLevel || character.Level > dnd5e.MaxLevel {
		add(FindingLevelRange, "level %d is outside %d-%d", character.Level, dnd5e.MinLevel, dnd5e.MaxLevel)
	}

	for _, name := range character.StandardFeats {
		if _, ok := e.catalog.Feat(name); !ok {
			add(FindingUnknownFeat, "feat %q is not in the catalog", name)
		}
	}
	if character.InnateHeritage != "" {
		if _, ok := e.catalog.Heritage(character.InnateHeritage); !ok {
			add(FindingUnknownHerit, "heritage %q is not in the catalog", character.InnateHeritage)
		}
		if level1 := level1Feats(character); len(level1) > 0 {
			add(FindingLevel1Conflict, "heritage %q held together with level 1 feats %v", character.InnateHeritage, level1)
		}
	}

	if !character.MirrorsConsistent() {
		add(FindingAbilityMirror, "ability score map and fields disagree")
	}
	for _, a := range dnd5e.Abilities {
		if score := character.AbilityScore(a); score > dnd5e.AbilityScoreMax {
			add(FindingAbilityCap, "%s is %d, above %d", a, score, dnd5e.AbilityScoreMax)
		}
	}

	expected := FullHitPoints(character.CastingStyle, character.Level, character.AbilityScore(dnd5e.AbilityConstitution))
	if character.HitPoints != expected {
		add(FindingHitPoints, "hit points are %d, expected %d", character.HitPoints, expected)
	}

	levels := make([]int, 0, len(character.ASIChoices))
	for level := range character.ASIChoices {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		if !dnd5e.IsASILevel(level) || level > character.Level {
			add(FindingASILevel, "ability score improvement recorded at level %d", level)
		}
	}

	return out
}
