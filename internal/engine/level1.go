package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// SetLevel1ChoiceType switches the character between a level 1 feat and an
// innate heritage. Switching to feat clears the heritage, its choices and the
// skills it granted. Switching to innate_heritage clears the level 1 feat, its
// choices and the skills it granted. Feats taken at ASI levels are untouched.
func (e *engine) SetLevel1ChoiceType(
	character *dnd5e.Character,
	choiceType dnd5e.Level1ChoiceType,
) (*dnd5e.Character, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	out := character.Clone()
	switch choiceType {
	case dnd5e.Level1ChoiceFeat:
		e.clearHeritage(out)
	case dnd5e.Level1ChoiceInnateHeritage:
		e.clearLevel1Feats(out)
	default:
		return nil, errors.InvalidArgumentf("unknown level 1 choice type %q", choiceType)
	}
	out.Level1ChoiceType = choiceType

	return out, nil
}

// SelectInnateHeritage takes a heritage at the level 1 boundary. Every feature
// option and grant pick the heritage needs must be supplied.
func (e *engine) SelectInnateHeritage(
	character *dnd5e.Character,
	input *SelectHeritageInput,
) (*dnd5e.Character, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("heritage name is required")
	}

	heritage, ok := e.catalog.Heritage(input.Name)
	if !ok {
		return nil, errors.NotFoundf("heritage %q not found", input.Name)
	}

	out := character.Clone()
	e.clearLevel1Feats(out)
	e.clearHeritage(out)

	if !IsEligible(heritage.Prerequisites, out) {
		return nil, errors.FailedPreconditionf("character is not eligible for heritage %q", input.Name).
			WithMeta("character_id", character.ID)
	}

	choices := subjectChoices(input.Choices, input.Name, 0)
	if missing := e.MissingHeritageChoices(input.Name, input.Options, choices); len(missing) > 0 {
		return nil, errors.FailedPreconditionf("heritage %q has unresolved choices", input.Name).
			WithMeta("missing_choices", keyStrings(missing))
	}

	options := make(map[string]string, len(input.Options))
	for _, feature := range heritage.Features {
		if feature.IsChoice {
			options[feature.Name] = input.Options[feature.Name]
		}
	}

	out.InnateHeritage = input.Name
	out.Level1ChoiceType = dnd5e.Level1ChoiceInnateHeritage
	out.HeritageChoices = map[string]map[string]string{input.Name: options}
	out.FeatChoices = mergeChoices(out.FeatChoices, choices)

	collectSkillGrants(heritageBlocks(heritage, options), newCursor(input.Name, 0), choices).apply(out)

	return out, nil
}

// SelectLevel1Feat takes a feat at the level 1 boundary in place of a
// heritage. The feat becomes the first standard feat.
func (e *engine) SelectLevel1Feat(character *dnd5e.Character, input *SelectFeatInput) (*dnd5e.Character, error) {
	if character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input == nil || input.Name == "" {
		return nil, errors.InvalidArgument("feat name is required")
	}

	feat, ok := e.catalog.Feat(input.Name)
	if !ok {
		return nil, errors.NotFoundf("feat %q not found", input.Name)
	}

	out := character.Clone()
	e.clearHeritage(out)
	e.clearLevel1Feats(out)

	if !IsEligible(feat.Prerequisites, out) {
		return nil, errors.FailedPreconditionf("character is not eligible for feat %q", input.Name).
			WithMeta("character_id", character.ID)
	}
	if out.HasFeat(input.Name) && !feat.Repeatable {
		return nil, errors.FailedPreconditionf("character already has feat %q", input.Name)
	}

	choices := subjectChoices(input.Choices, input.Name, 0)
	if missing := e.MissingChoices(input.Name, 0, choices); len(missing) > 0 {
		return nil, errors.FailedPreconditionf("feat %q has unresolved choices", input.Name).
			WithMeta("missing_choices", keyStrings(missing))
	}

	// The level 1 copy is instance 0; later copies move up one.
	out.FeatChoices = rekeyChoices(out.FeatChoices, input.Name, func(instance int) (int, bool) {
		return instance + 1, true
	})
	out.FeatChoices = mergeChoices(out.FeatChoices, choices)
	out.StandardFeats = append([]string{input.Name}, out.StandardFeats...)
	out.Level1ChoiceType = dnd5e.Level1ChoiceFeat

	collectSkillGrants([]*catalog.Benefits{&feat.Benefits}, newCursor(input.Name, 0), choices).apply(out)

	return out, nil
}

// clearHeritage removes the innate heritage, every heritage choice and the
// skills the heritage granted
func (e *engine) clearHeritage(c *dnd5e.Character) {
	name := c.InnateHeritage
	if name != "" {
		if heritage, ok := e.catalog.Heritage(name); ok {
			choices := dnd5e.ChoicesFromMap(c.FeatChoices)
			collectSkillGrants(heritageBlocks(heritage, c.HeritageChoices[name]), newCursor(name, 0), choices).remove(c)
		}
		c.FeatChoices = rekeyChoices(c.FeatChoices, name, func(int) (int, bool) { return 0, false })
	}
	c.InnateHeritage = ""
	c.HeritageChoices = nil
	e.restoreKeptGrants(c)
}

// clearLevel1Feats removes the standard feats that were not taken at an ASI
// level, their choices and the skills they granted
func (e *engine) clearLevel1Feats(c *dnd5e.Character) {
	level1 := level1Feats(c)
	if len(level1) == 0 {
		return
	}

	choices := dnd5e.ChoicesFromMap(c.FeatChoices)
	for _, name := range level1 {
		if feat, ok := e.catalog.Feat(name); ok {
			collectSkillGrants([]*catalog.Benefits{&feat.Benefits}, newCursor(name, 0), choices).remove(c)
		}
		c.FeatChoices = rekeyChoices(c.FeatChoices, name, func(instance int) (int, bool) {
			if instance == 0 {
				return 0, false
			}
			return instance - 1, true
		})
		c.StandardFeats = removeFirst(c.StandardFeats, name)
	}
	e.restoreKeptGrants(c)
}

// restoreKeptGrants re-applies the skill grants of every feat and heritage the
// character still holds. Skills carry no source, so removing a cleared
// source's grants also strips skills a kept source grants.
func (e *engine) restoreKeptGrants(c *dnd5e.Character) {
	choices := dnd5e.ChoicesFromMap(c.FeatChoices)
	instances := make(map[string]int, len(c.StandardFeats))
	for _, name := range c.StandardFeats {
		instance := instances[name]
		instances[name]++
		if feat, ok := e.catalog.Feat(name); ok {
			collectSkillGrants([]*catalog.Benefits{&feat.Benefits}, newCursor(name, instance), choices).apply(c)
		}
	}

	if name := c.InnateHeritage; name != "" {
		if heritage, ok := e.catalog.Heritage(name); ok {
			collectSkillGrants(heritageBlocks(heritage, c.HeritageChoices[name]), newCursor(name, 0), choices).apply(c)
		}
	}
}

// level1Feats is StandardFeats minus one copy of each feat recorded in
// ASIChoices
func level1Feats(c *dnd5e.Character) []string {
	fromASI := make(map[string]int)
	for _, choice := range c.ASIChoices {
		if choice != nil && choice.Type == dnd5e.ASIChoiceTypeFeat && choice.SelectedFeat != "" {
			fromASI[choice.SelectedFeat]++
		}
	}

	var out []string
	for _, name := range c.StandardFeats {
		if fromASI[name] > 0 {
			fromASI[name]--
			continue
		}
		out = append(out, name)
	}
	return out
}

// subjectChoices parses raw and keeps only the keys of one subject instance
func subjectChoices(raw map[string]string, subject string, instance int) dnd5e.Choices {
	out := make(dnd5e.Choices)
	for key, v := range dnd5e.ChoicesFromMap(raw) {
		if key.Subject == subject && key.Instance == instance {
			out[key] = v
		}
	}
	return out
}

// mergeChoices writes choices into the stored string-keyed map
func mergeChoices(stored map[string]string, choices dnd5e.Choices) map[string]string {
	if len(choices) == 0 {
		return stored
	}
	out := make(map[string]string, len(stored)+len(choices))
	for k, v := range stored {
		out[k] = v
	}
	for k, v := range choices {
		out[k.String()] = v
	}
	return out
}

// rekeyChoices rewrites the instance of every key for subject. fn returns the
// new instance, or false to drop the key. Keys that do not parse are kept.
func rekeyChoices(stored map[string]string, subject string, fn func(instance int) (int, bool)) map[string]string {
	if stored == nil {
		return nil
	}
	out := make(map[string]string, len(stored))
	for raw, v := range stored {
		key, err := dnd5e.ParseChoiceKey(raw)
		if err != nil || key.Subject != subject {
			out[raw] = v
			continue
		}
		instance, keep := fn(key.Instance)
		if !keep {
			continue
		}
		key.Instance = instance
		out[key.String()] = v
	}
	return out
}

func removeFirst(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
