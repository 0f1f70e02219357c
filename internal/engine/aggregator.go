package engine

import (
	"sort"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

func newDerivedBenefits() *DerivedBenefits {
	return &DerivedBenefits{
		AbilityModifiers:     make(map[dnd5e.Ability]int),
		FeatDetails:          make(map[dnd5e.Ability][]AbilitySource),
		Speeds:               make(map[string][]SourcedValue),
		CombatBonuses:        make(map[string][]SourcedValue),
		SpellcastingBenefits: make(map[string][]SourcedValue),
	}
}

// Aggregate folds the named feats into one DerivedBenefits. Unknown names are
// skipped. A name listed more than once is a separate instance each time and
// reads its own choice keys.
func (e *engine) Aggregate(featNames []string, character *dnd5e.Character, choices dnd5e.Choices) *DerivedBenefits {
	d := newDerivedBenefits()
	if character == nil {
		character = &dnd5e.Character{}
	}
	instances := make(map[string]int, len(featNames))

	for _, name := range featNames {
		feat, ok := e.catalog.Feat(name)
		if !ok {
			continue
		}
		instance := instances[name]
		instances[name]++

		d.add(name, &feat.Benefits, newCursor(name, instance), character, choices)
	}

	return d
}

// AggregateHeritage folds a heritage's own benefits, its plain features and
// the chosen option of each choice feature. A missing option falls back to
// the feature's first option.
func (e *engine) AggregateHeritage(
	heritageName string,
	character *dnd5e.Character,
	options map[string]string,
	choices dnd5e.Choices,
) *DerivedBenefits {
	d := newDerivedBenefits()
	if character == nil {
		character = &dnd5e.Character{}
	}

	heritage, ok := e.catalog.Heritage(heritageName)
	if !ok {
		return d
	}

	cur := newCursor(heritageName, 0)
	d.add(heritageName, &heritage.Benefits, cur, character, choices)

	for i := range heritage.Features {
		feature := &heritage.Features[i]
		if !feature.IsChoice {
			d.add(heritageName, &feature.Benefits, cur, character, choices)
			continue
		}
		if len(feature.Options) == 0 {
			continue
		}

		option, ok := feature.Option(options[feature.Name])
		if !ok {
			option = &feature.Options[0]
			d.DefaultedChoices = append(d.DefaultedChoices, dnd5e.ChoiceKey{
				Subject: heritageName,
				Kind:    dnd5e.ChoiceKindOption,
				Index:   i,
			})
		}
		d.add(heritageName, &option.Benefits, cur, character, choices)
	}

	return d
}

// Derive is the full view for a stored character: its standard feats followed
// by its innate heritage
func (e *engine) Derive(character *dnd5e.Character) *DerivedBenefits {
	if character == nil {
		return newDerivedBenefits()
	}
	choices := dnd5e.ChoicesFromMap(character.FeatChoices)
	d := e.Aggregate(character.StandardFeats, character, choices)

	if character.InnateHeritage != "" {
		h := e.AggregateHeritage(character.InnateHeritage, character, character.HeritageChoices[character.InnateHeritage], choices)
		d.merge(h)
	}

	return d
}

// add applies one benefit block under source
func (d *DerivedBenefits) add(
	source string,
	b *catalog.Benefits,
	cur *cursor,
	character *dnd5e.Character,
	choices dnd5e.Choices,
) {
	for _, grant := range b.AbilityScoreIncreases {
		res, ok := resolveAbility(grant, cur, character, choices)
		if !ok {
			continue
		}
		d.AbilityModifiers[res.ability] += res.amount
		d.FeatDetails[res.ability] = append(d.FeatDetails[res.ability], AbilitySource{FeatName: source, Amount: res.amount})
		if res.defaulted != nil {
			d.DefaultedChoices = append(d.DefaultedChoices, *res.defaulted)
		}
	}

	d.SkillProficiencies = append(d.SkillProficiencies, proficiencySources(source, b.SkillProficiencies, dnd5e.ChoiceKindSkills, cur, dnd5e.Skills)...)
	d.Expertise = append(d.Expertise, proficiencySources(source, b.Expertise, dnd5e.ChoiceKindExpertise, cur, dnd5e.Skills)...)
	d.SavingThrowProficiencies = append(d.SavingThrowProficiencies, proficiencySources(source, b.SavingThrowProficiencies, dnd5e.ChoiceKindSaves, cur, abilityNames(dnd5e.Abilities))...)

	for _, r := range b.Resistances {
		d.Resistances = append(d.Resistances, SourcedText{Source: source, Name: r})
	}
	for _, im := range b.Immunities {
		d.Immunities = append(d.Immunities, SourcedText{Source: source, Name: im})
	}

	addValues(d.Speeds, source, b.Speeds)
	addValues(d.CombatBonuses, source, b.CombatBonuses)
	addValues(d.SpellcastingBenefits, source, b.SpellcastingBenefits)

	for _, sa := range b.SpecialAbilities {
		d.SpecialAbilities = append(d.SpecialAbilities, SourcedAbility{Source: source, SpecialAbility: sa})
	}
}

// proficiencySources lists fixed grants by name and surfaces choice grants as
// placeholders. Match-ability saves resolve to the subject's first ability.
func proficiencySources(
	source string,
	grants []catalog.ProficiencyGrant,
	kind dnd5e.ChoiceKind,
	cur *cursor,
	defaults []string,
) []ProficiencySource {
	var out []ProficiencySource
	for _, grant := range grants {
		switch g := grant.(type) {
		case catalog.FixedProficiencies:
			for _, name := range g.Names {
				out = append(out, ProficiencySource{Source: source, Name: name})
			}
		case catalog.ProficiencyChoice:
			options := g.Options
			if len(options) == 0 {
				options = defaults
			}
			out = append(out, ProficiencySource{
				Source:  source,
				Type:    ProficiencyTypeChoice,
				Count:   g.Count,
				Options: options,
				Keys:    keyStrings(cur.takeN(kind, g.Count)),
			})
		case catalog.MatchAbilityChoice:
			if cur.firstAbility == "" {
				continue
			}
			out = append(out, ProficiencySource{Source: source, Name: string(cur.firstAbility)})
		}
	}
	return out
}

// addValues appends in key order so the output does not depend on map
// iteration order
func addValues(dst map[string][]SourcedValue, source string, values map[string]catalog.Value) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		dst[k] = append(dst[k], SourcedValue{Source: source, Value: values[k]})
	}
}

// merge appends other's contributions after d's
func (d *DerivedBenefits) merge(other *DerivedBenefits) {
	for _, a := range dnd5e.Abilities {
		if amount, ok := other.AbilityModifiers[a]; ok {
			d.AbilityModifiers[a] += amount
		}
		if details, ok := other.FeatDetails[a]; ok {
			d.FeatDetails[a] = append(d.FeatDetails[a], details...)
		}
	}

	d.SkillProficiencies = append(d.SkillProficiencies, other.SkillProficiencies...)
	d.Expertise = append(d.Expertise, other.Expertise...)
	d.SavingThrowProficiencies = append(d.SavingThrowProficiencies, other.SavingThrowProficiencies...)
	d.Resistances = append(d.Resistances, other.Resistances...)
	d.Immunities = append(d.Immunities, other.Immunities...)

	mergeValues(d.Speeds, other.Speeds)
	mergeValues(d.CombatBonuses, other.CombatBonuses)
	mergeValues(d.SpellcastingBenefits, other.SpellcastingBenefits)

	d.SpecialAbilities = append(d.SpecialAbilities, other.SpecialAbilities...)
	d.DefaultedChoices = append(d.DefaultedChoices, other.DefaultedChoices...)
}

func mergeValues(dst, src map[string][]SourcedValue) {
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
}
