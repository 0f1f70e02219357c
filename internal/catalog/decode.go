package catalog

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// Grant type tags used in the authored data
const (
	grantFixed               = "fixed"
	grantChoice              = "choice"
	grantChoiceAny           = "choice_any"
	grantSpellcastingAbility = "spellcasting_ability"
	grantMatchAbility        = "match_ability"
)

// benefitsDoc is the authored shape of a Benefits block. It is also what the
// block marshals to on the wire.
type benefitsDoc struct {
	AbilityScoreIncreases    []grantDoc       `yaml:"abilityScoreIncreases,omitempty" json:"ability_score_increases,omitempty"`
	SkillProficiencies       []grantDoc       `yaml:"skillProficiencies,omitempty" json:"skill_proficiencies,omitempty"`
	Expertise                []grantDoc       `yaml:"expertise,omitempty" json:"expertise,omitempty"`
	SavingThrowProficiencies []grantDoc       `yaml:"savingThrowProficiencies,omitempty" json:"saving_throw_proficiencies,omitempty"`
	Resistances              []string         `yaml:"resistances,omitempty" json:"resistances,omitempty"`
	Immunities               []string         `yaml:"immunities,omitempty" json:"immunities,omitempty"`
	Speeds                   map[string]Value `yaml:"speeds,omitempty" json:"speeds,omitempty"`
	CombatBonuses            map[string]Value `yaml:"combatBonuses,omitempty" json:"combat_bonuses,omitempty"`
	SpellcastingBenefits     map[string]Value `yaml:"spellcastingBenefits,omitempty" json:"spellcasting_benefits,omitempty"`
	SpecialAbilities         []SpecialAbility `yaml:"specialAbilities,omitempty" json:"special_abilities,omitempty"`
}

type grantDoc struct {
	Type      string          `yaml:"type,omitempty" json:"type"`
	Ability   dnd5e.Ability   `yaml:"ability,omitempty" json:"ability,omitempty"`
	Abilities []dnd5e.Ability `yaml:"abilities,omitempty" json:"abilities,omitempty"`
	Amount    int             `yaml:"amount,omitempty" json:"amount,omitempty"`
	Names     []string        `yaml:"names,omitempty" json:"names,omitempty"`
	Count     int             `yaml:"count,omitempty" json:"count,omitempty"`
	Options   []string        `yaml:"options,omitempty" json:"options,omitempty"`
}

// UnmarshalYAML decodes the authored block into typed grants. Grants with an
// unknown type are logged and skipped.
func (b *Benefits) UnmarshalYAML(node *yaml.Node) error {
	var doc benefitsDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}

	out := Benefits{
		Resistances:          doc.Resistances,
		Immunities:           doc.Immunities,
		Speeds:               doc.Speeds,
		CombatBonuses:        doc.CombatBonuses,
		SpellcastingBenefits: doc.SpellcastingBenefits,
		SpecialAbilities:     doc.SpecialAbilities,
	}

	for _, g := range doc.AbilityScoreIncreases {
		grant, ok := g.abilityIncrease()
		if !ok {
			slog.Warn("skipping unknown ability increase grant", "type", g.Type, "line", node.Line)
			continue
		}
		out.AbilityScoreIncreases = append(out.AbilityScoreIncreases, grant)
	}
	out.SkillProficiencies = decodeProficiencies(doc.SkillProficiencies, false, node.Line)
	out.Expertise = decodeProficiencies(doc.Expertise, false, node.Line)
	out.SavingThrowProficiencies = decodeProficiencies(doc.SavingThrowProficiencies, true, node.Line)

	*b = out
	return nil
}

func (g grantDoc) abilityIncrease() (AbilityIncrease, bool) {
	amount := g.Amount
	if amount == 0 {
		amount = 1
	}

	switch g.Type {
	case grantFixed, "":
		if g.Ability == "" {
			return nil, false
		}
		return FixedAbilityIncrease{Ability: g.Ability, Amount: amount}, true
	case grantChoice:
		if len(g.Abilities) == 0 {
			return ChoiceAnyAbilityIncrease{Amount: amount}, true
		}
		return ChoiceAbilityIncrease{Abilities: g.Abilities, Amount: amount}, true
	case grantChoiceAny:
		return ChoiceAnyAbilityIncrease{Amount: amount}, true
	case grantSpellcastingAbility:
		return SpellcastingAbilityIncrease{Amount: amount}, true
	default:
		return nil, false
	}
}

func decodeProficiencies(docs []grantDoc, saves bool, line int) []ProficiencyGrant {
	var out []ProficiencyGrant
	for _, g := range docs {
		switch {
		case g.Type == grantFixed || (g.Type == "" && len(g.Names) > 0):
			out = append(out, FixedProficiencies{Names: g.Names})
		case g.Type == grantChoice:
			count := g.Count
			if count == 0 {
				count = 1
			}
			out = append(out, ProficiencyChoice{Count: count, Options: g.Options})
		case g.Type == grantMatchAbility && saves:
			out = append(out, MatchAbilityChoice{})
		default:
			slog.Warn("skipping unknown proficiency grant", "type", g.Type, "line", line)
		}
	}
	return out
}

// MarshalJSON writes the tagged authored form so clients can tell grant kinds apart
func (b Benefits) MarshalJSON() ([]byte, error) {
	doc := benefitsDoc{
		Resistances:          b.Resistances,
		Immunities:           b.Immunities,
		Speeds:               b.Speeds,
		CombatBonuses:        b.CombatBonuses,
		SpellcastingBenefits: b.SpellcastingBenefits,
		SpecialAbilities:     b.SpecialAbilities,
	}

	for _, g := range b.AbilityScoreIncreases {
		switch g := g.(type) {
		case FixedAbilityIncrease:
			doc.AbilityScoreIncreases = append(doc.AbilityScoreIncreases, grantDoc{Type: grantFixed, Ability: g.Ability, Amount: g.Amount})
		case ChoiceAbilityIncrease:
			doc.AbilityScoreIncreases = append(doc.AbilityScoreIncreases, grantDoc{Type: grantChoice, Abilities: g.Abilities, Amount: g.Amount})
		case ChoiceAnyAbilityIncrease:
			doc.AbilityScoreIncreases = append(doc.AbilityScoreIncreases, grantDoc{Type: grantChoiceAny, Amount: g.Amount})
		case SpellcastingAbilityIncrease:
			doc.AbilityScoreIncreases = append(doc.AbilityScoreIncreases, grantDoc{Type: grantSpellcastingAbility, Amount: g.Amount})
		}
	}
	doc.SkillProficiencies = encodeProficiencies(b.SkillProficiencies)
	doc.Expertise = encodeProficiencies(b.Expertise)
	doc.SavingThrowProficiencies = encodeProficiencies(b.SavingThrowProficiencies)

	return json.Marshal(doc)
}

func encodeProficiencies(grants []ProficiencyGrant) []grantDoc {
	var out []grantDoc
	for _, g := range grants {
		switch g := g.(type) {
		case FixedProficiencies:
			out = append(out, grantDoc{Type: grantFixed, Names: g.Names})
		case ProficiencyChoice:
			out = append(out, grantDoc{Type: grantChoice, Count: g.Count, Options: g.Options})
		case MatchAbilityChoice:
			out = append(out, grantDoc{Type: grantMatchAbility})
		}
	}
	return out
}
