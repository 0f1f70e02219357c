package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// cursor hands out choice keys for one subject instance. Every kind is
// numbered independently in the order grants appear, so the aggregator, the
// gates and the resolver all agree on which key a grant reads.
type cursor struct {
	subject  string
	instance int
	next     map[dnd5e.ChoiceKind]int

	// firstAbility is the first ability the subject's increases resolved to;
	// match_ability saves read it
	firstAbility dnd5e.Ability
}

func newCursor(subject string, instance int) *cursor {
	return &cursor{
		subject:  subject,
		instance: instance,
		next:     make(map[dnd5e.ChoiceKind]int),
	}
}

func (c *cursor) take(kind dnd5e.ChoiceKind) dnd5e.ChoiceKey {
	key := dnd5e.ChoiceKey{
		Subject:  c.subject,
		Kind:     kind,
		Index:    c.next[kind],
		Instance: c.instance,
	}
	c.next[kind]++
	return key
}

func (c *cursor) takeN(kind dnd5e.ChoiceKind, n int) []dnd5e.ChoiceKey {
	keys := make([]dnd5e.ChoiceKey, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, c.take(kind))
	}
	return keys
}

// slot is one pick a benefit block needs from the player
type slot struct {
	key        dnd5e.ChoiceKey
	candidates []string
}

// requiredSlots walks a benefit block the same way the aggregator does and
// lists the picks it needs
func requiredSlots(b *catalog.Benefits, cur *cursor) []slot {
	var slots []slot

	for _, grant := range b.AbilityScoreIncreases {
		switch g := grant.(type) {
		case catalog.ChoiceAbilityIncrease:
			slots = append(slots, slot{key: cur.take(dnd5e.ChoiceKindAbility), candidates: abilityNames(g.Candidates())})
		case catalog.ChoiceAnyAbilityIncrease:
			slots = append(slots, slot{key: cur.take(dnd5e.ChoiceKindAbility), candidates: abilityNames(g.Candidates())})
		}
	}

	grantSlots := func(grants []catalog.ProficiencyGrant, kind dnd5e.ChoiceKind, defaults []string) {
		for _, grant := range grants {
			g, ok := grant.(catalog.ProficiencyChoice)
			if !ok {
				continue
			}
			candidates := g.Options
			if len(candidates) == 0 {
				candidates = defaults
			}
			for _, key := range cur.takeN(kind, g.Count) {
				slots = append(slots, slot{key: key, candidates: candidates})
			}
		}
	}
	grantSlots(b.SkillProficiencies, dnd5e.ChoiceKindSkills, dnd5e.Skills)
	grantSlots(b.Expertise, dnd5e.ChoiceKindExpertise, dnd5e.Skills)
	grantSlots(b.SavingThrowProficiencies, dnd5e.ChoiceKindSaves, abilityNames(dnd5e.Abilities))

	return slots
}

// missingSlots returns the keys whose pick is absent or not one of the candidates
func missingSlots(slots []slot, choices dnd5e.Choices) []dnd5e.ChoiceKey {
	var missing []dnd5e.ChoiceKey
	for _, s := range slots {
		v, ok := choices.Get(s.key)
		if !ok || !containsString(s.candidates, v) {
			missing = append(missing, s.key)
		}
	}
	return missing
}

// abilityResolution is the outcome of resolving one ability increase grant
type abilityResolution struct {
	ability   dnd5e.Ability
	amount    int
	defaulted *dnd5e.ChoiceKey
}

// resolveAbility picks the concrete ability for a grant. A missing or invalid
// pick falls back to the first candidate and reports the key as defaulted.
// ok is false for grants that cannot resolve to any ability.
func resolveAbility(
	grant catalog.AbilityIncrease,
	cur *cursor,
	character *dnd5e.Character,
	choices dnd5e.Choices,
) (abilityResolution, bool) {
	res := abilityResolution{amount: grant.IncreaseAmount()}

	switch g := grant.(type) {
	case catalog.FixedAbilityIncrease:
		if !g.Ability.IsValid() {
			return res, false
		}
		res.ability = g.Ability
	case catalog.ChoiceAbilityIncrease:
		key := cur.take(dnd5e.ChoiceKindAbility)
		ability, defaulted, ok := pickAbility(key, g.Candidates(), choices)
		if !ok {
			return res, false
		}
		res.ability = ability
		if defaulted {
			res.defaulted = &key
		}
	case catalog.ChoiceAnyAbilityIncrease:
		key := cur.take(dnd5e.ChoiceKindAbility)
		ability, defaulted, ok := pickAbility(key, g.Candidates(), choices)
		if !ok {
			return res, false
		}
		res.ability = ability
		if defaulted {
			res.defaulted = &key
		}
	case catalog.SpellcastingAbilityIncrease:
		res.ability = character.CastingStyle.SpellcastingAbility()
	default:
		return res, false
	}

	if cur.firstAbility == "" {
		cur.firstAbility = res.ability
	}
	return res, true
}

func pickAbility(key dnd5e.ChoiceKey, candidates []dnd5e.Ability, choices dnd5e.Choices) (dnd5e.Ability, bool, bool) {
	valid := make([]dnd5e.Ability, 0, len(candidates))
	for _, a := range candidates {
		if a.IsValid() {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return "", false, false
	}

	if v, ok := choices.Get(key); ok {
		for _, a := range valid {
			if string(a) == v {
				return a, false, true
			}
		}
	}
	return valid[0], true, true
}

// picks returns the non-empty values recorded under keys, in key order
func picks(keys []dnd5e.ChoiceKey, choices dnd5e.Choices) []string {
	var out []string
	for _, key := range keys {
		if v, ok := choices.Get(key); ok {
			out = append(out, v)
		}
	}
	return out
}

func abilityNames(abilities []dnd5e.Ability) []string {
	out := make([]string, 0, len(abilities))
	for _, a := range abilities {
		out = append(out, string(a))
	}
	return out
}

func keyStrings(keys []dnd5e.ChoiceKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// RequiredChoices lists every key the feat instance needs. Unknown feats need
// nothing.
func (e *engine) RequiredChoices(featName string, instance int) []dnd5e.ChoiceKey {
	feat, ok := e.catalog.Feat(featName)
	if !ok {
		return nil
	}

	var keys []dnd5e.ChoiceKey
	for _, s := range requiredSlots(&feat.Benefits, newCursor(featName, instance)) {
		keys = append(keys, s.key)
	}
	return keys
}

// MissingChoices lists the keys the feat instance still needs
func (e *engine) MissingChoices(featName string, instance int, choices dnd5e.Choices) []dnd5e.ChoiceKey {
	feat, ok := e.catalog.Feat(featName)
	if !ok {
		return nil
	}
	return missingSlots(requiredSlots(&feat.Benefits, newCursor(featName, instance)), choices)
}

// MissingHeritageChoices lists unresolved feature options (kind option,
// indexed by feature position) and unresolved grant picks
func (e *engine) MissingHeritageChoices(
	heritageName string,
	options map[string]string,
	choices dnd5e.Choices,
) []dnd5e.ChoiceKey {
	heritage, ok := e.catalog.Heritage(heritageName)
	if !ok {
		return nil
	}

	var missing []dnd5e.ChoiceKey
	cur := newCursor(heritageName, 0)
	slots := requiredSlots(&heritage.Benefits, cur)

	for i := range heritage.Features {
		feature := &heritage.Features[i]
		if !feature.IsChoice {
			slots = append(slots, requiredSlots(&feature.Benefits, cur)...)
			continue
		}
		option, ok := feature.Option(options[feature.Name])
		if !ok {
			missing = append(missing, dnd5e.ChoiceKey{Subject: heritageName, Kind: dnd5e.ChoiceKindOption, Index: i})
			continue
		}
		slots = append(slots, requiredSlots(&option.Benefits, cur)...)
	}

	return append(missing, missingSlots(slots, choices)...)
}
