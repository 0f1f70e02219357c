package dnd5e

// CastingStyle is the character archetype that picks the spellcasting ability
// and hit die
type CastingStyle string

// Casting style constants
const (
	CastingStyleGrace  CastingStyle = "Grace Caster"
	CastingStyleVigor  CastingStyle = "Vigor Caster"
	CastingStyleWit    CastingStyle = "Wit Caster"
	CastingStyleWisdom CastingStyle = "Wisdom Caster"
)

// CastingStyles lists the known casting styles
var CastingStyles = []CastingStyle{
	CastingStyleGrace,
	CastingStyleVigor,
	CastingStyleWit,
	CastingStyleWisdom,
}

// HitPointProfile holds the per-style numbers used for hit point math
type HitPointProfile struct {
	HitDie      int
	Base        int
	AvgPerLevel int
}

type castingStyleData struct {
	ability   Ability
	hitPoints HitPointProfile
}

var castingStyleTable = map[CastingStyle]castingStyleData{
	CastingStyleGrace: {
		ability:   AbilityCharisma,
		hitPoints: HitPointProfile{HitDie: 8, Base: 8, AvgPerLevel: 5},
	},
	CastingStyleVigor: {
		ability:   AbilityConstitution,
		hitPoints: HitPointProfile{HitDie: 10, Base: 10, AvgPerLevel: 6},
	},
	CastingStyleWit: {
		ability:   AbilityIntelligence,
		hitPoints: HitPointProfile{HitDie: 6, Base: 6, AvgPerLevel: 4},
	},
	CastingStyleWisdom: {
		ability:   AbilityWisdom,
		hitPoints: HitPointProfile{HitDie: 8, Base: 8, AvgPerLevel: 5},
	},
}

// Fallbacks for styles missing from the table
var (
	defaultSpellcastingAbility = AbilityIntelligence
	defaultHitPointProfile     = HitPointProfile{HitDie: 6, Base: 6, AvgPerLevel: 4}
)

// SpellcastingAbility returns the ability the style casts with.
// Unknown styles cast with intelligence.
func (s CastingStyle) SpellcastingAbility() Ability {
	if data, ok := castingStyleTable[s]; ok {
		return data.ability
	}
	return defaultSpellcastingAbility
}

// HitPoints returns the style's hit die and hit point table.
// Unknown styles use a d6.
func (s CastingStyle) HitPoints() HitPointProfile {
	if data, ok := castingStyleTable[s]; ok {
		return data.hitPoints
	}
	return defaultHitPointProfile
}

// IsKnown reports whether the style is in the table
func (s CastingStyle) IsKnown() bool {
	_, ok := castingStyleTable[s]
	return ok
}
