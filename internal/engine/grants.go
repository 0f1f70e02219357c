package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// skillGrants is what a subject's benefit blocks put on the character sheet
type skillGrants struct {
	proficiencies []string
	expertise     []string
}

// collectSkillGrants resolves fixed grants and recorded picks across blocks.
// Blocks must be passed in catalog order so keys line up with the aggregator.
func collectSkillGrants(blocks []*catalog.Benefits, cur *cursor, choices dnd5e.Choices) skillGrants {
	var out skillGrants
	for _, b := range blocks {
		out.proficiencies = append(out.proficiencies, grantedNames(b.SkillProficiencies, dnd5e.ChoiceKindSkills, cur, choices)...)
		out.expertise = append(out.expertise, grantedNames(b.Expertise, dnd5e.ChoiceKindExpertise, cur, choices)...)
	}
	return out
}

func grantedNames(grants []catalog.ProficiencyGrant, kind dnd5e.ChoiceKind, cur *cursor, choices dnd5e.Choices) []string {
	var out []string
	for _, grant := range grants {
		switch g := grant.(type) {
		case catalog.FixedProficiencies:
			out = append(out, g.Names...)
		case catalog.ProficiencyChoice:
			out = append(out, picks(cur.takeN(kind, g.Count), choices)...)
		}
	}
	return out
}

// apply adds the grants to the character. Adding is idempotent.
func (g skillGrants) apply(character *dnd5e.Character) {
	for _, s := range g.proficiencies {
		character.AddSkillProficiency(s)
	}
	for _, s := range g.expertise {
		character.AddSkillExpertise(s)
	}
}

// remove drops the granted skills from the character
func (g skillGrants) remove(character *dnd5e.Character) {
	for _, s := range g.proficiencies {
		character.RemoveSkill(s)
	}
	for _, s := range g.expertise {
		character.RemoveSkill(s)
	}
}

// heritageBlocks lists a heritage's benefit blocks in catalog order: its own
// benefits, plain features, then the chosen option of each choice feature.
// Choice features without a valid option are left out.
func heritageBlocks(heritage *catalog.Heritage, options map[string]string) []*catalog.Benefits {
	blocks := []*catalog.Benefits{&heritage.Benefits}
	for i := range heritage.Features {
		feature := &heritage.Features[i]
		if !feature.IsChoice {
			blocks = append(blocks, &feature.Benefits)
			continue
		}
		if option, ok := feature.Option(options[feature.Name]); ok {
			blocks = append(blocks, &option.Benefits)
		}
	}
	return blocks
}
