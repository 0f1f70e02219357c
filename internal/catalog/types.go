package catalog

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// RequirementType names what a prerequisite requirement checks
type RequirementType string

// Requirement types understood by the evaluator
const (
	RequirementCastingStyle   RequirementType = "castingStyle"
	RequirementInnateHeritage RequirementType = "innateHeritage"
	RequirementLevel          RequirementType = "level"
	RequirementFeat           RequirementType = "feat"
	RequirementSubclass       RequirementType = "subclass"
	RequirementAbilityScore   RequirementType = "abilityScore"
)

// Requirement is one typed gate. Amount is only read by abilityScore.
type Requirement struct {
	Type   RequirementType `yaml:"type" json:"type"`
	Value  string          `yaml:"value" json:"value"`
	Amount int             `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Prerequisites gates selection of a feat or heritage
type Prerequisites struct {
	AnyOf []Requirement `yaml:"anyOf,omitempty" json:"any_of,omitempty"`
	AllOf []Requirement `yaml:"allOf,omitempty" json:"all_of,omitempty"`
}

// Feat is one catalog feat entry
type Feat struct {
	Name          string         `yaml:"name" json:"name"`
	Preview       string         `yaml:"preview" json:"preview"`
	Description   []string       `yaml:"description" json:"description"`
	Benefits      Benefits       `yaml:"benefits" json:"benefits"`
	Prerequisites *Prerequisites `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	Repeatable    bool           `yaml:"repeatable,omitempty" json:"repeatable,omitempty"`
}

// Heritage is one catalog heritage entry
type Heritage struct {
	Name          string            `yaml:"name" json:"name"`
	Description   string            `yaml:"description" json:"description"`
	Benefits      Benefits          `yaml:"benefits" json:"benefits"`
	Prerequisites *Prerequisites    `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	Features      []HeritageFeature `yaml:"features,omitempty" json:"features,omitempty"`
}

// HeritageFeature is either a plain grant or, when IsChoice is set, a pick
// among Options that the player must resolve
type HeritageFeature struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Benefits    Benefits         `yaml:"benefits" json:"benefits"`
	IsChoice    bool             `yaml:"isChoice,omitempty" json:"is_choice,omitempty"`
	Options     []HeritageOption `yaml:"options,omitempty" json:"options,omitempty"`
}

// HeritageOption is one selectable branch of a choice feature
type HeritageOption struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Benefits    Benefits `yaml:"benefits" json:"benefits"`
}

// Option returns the named option of a choice feature
func (f *HeritageFeature) Option(name string) (*HeritageOption, bool) {
	for i := range f.Options {
		if f.Options[i].Name == name {
			return &f.Options[i], true
		}
	}
	return nil, false
}

// SpecialAbility is a named ability a feat or heritage grants
type SpecialAbility struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Uses        string `yaml:"uses,omitempty" json:"uses,omitempty"`
}

// Benefits is the typed benefit block shared by feats, heritages and heritage
// features
type Benefits struct {
	AbilityScoreIncreases    []AbilityIncrease
	SkillProficiencies       []ProficiencyGrant
	Expertise                []ProficiencyGrant
	SavingThrowProficiencies []ProficiencyGrant
	Resistances              []string
	Immunities               []string
	Speeds                   map[string]Value
	CombatBonuses            map[string]Value
	SpellcastingBenefits     map[string]Value
	SpecialAbilities         []SpecialAbility
}

// AbilityIncrease is a sealed set of ability score grants:
// FixedAbilityIncrease, ChoiceAbilityIncrease, ChoiceAnyAbilityIncrease and
// SpellcastingAbilityIncrease.
type AbilityIncrease interface {
	IncreaseAmount() int
	isAbilityIncrease()
}

// FixedAbilityIncrease raises a named ability
type FixedAbilityIncrease struct {
	Ability dnd5e.Ability
	Amount  int
}

// ChoiceAbilityIncrease raises one ability the player picks from a list
type ChoiceAbilityIncrease struct {
	Abilities []dnd5e.Ability
	Amount    int
}

// ChoiceAnyAbilityIncrease raises any one ability the player picks
type ChoiceAnyAbilityIncrease struct {
	Amount int
}

// SpellcastingAbilityIncrease raises whatever ability the casting style casts with
type SpellcastingAbilityIncrease struct {
	Amount int
}

func (g FixedAbilityIncrease) IncreaseAmount() int        { return g.Amount }
func (g ChoiceAbilityIncrease) IncreaseAmount() int       { return g.Amount }
func (g ChoiceAnyAbilityIncrease) IncreaseAmount() int    { return g.Amount }
func (g SpellcastingAbilityIncrease) IncreaseAmount() int { return g.Amount }

func (FixedAbilityIncrease) isAbilityIncrease()        {}
func (ChoiceAbilityIncrease) isAbilityIncrease()       {}
func (ChoiceAnyAbilityIncrease) isAbilityIncrease()    {}
func (SpellcastingAbilityIncrease) isAbilityIncrease() {}

// Candidates lists the abilities the player may pick, in catalog order
func (g ChoiceAbilityIncrease) Candidates() []dnd5e.Ability {
	return g.Abilities
}

// Candidates lists every ability
func (g ChoiceAnyAbilityIncrease) Candidates() []dnd5e.Ability {
	return dnd5e.Abilities
}

// ProficiencyGrant is a sealed set of skill, expertise and saving throw
// grants: FixedProficiencies, ProficiencyChoice and MatchAbilityChoice.
type ProficiencyGrant interface {
	isProficiencyGrant()
}

// FixedProficiencies grants the listed names outright
type FixedProficiencies struct {
	Names []string
}

// ProficiencyChoice asks the player for Count picks out of Options.
// Empty Options means any skill.
type ProficiencyChoice struct {
	Count   int
	Options []string
}

// MatchAbilityChoice grants the saving throw of the ability chosen for the
// same feat's ability increase
type MatchAbilityChoice struct{}

func (FixedProficiencies) isProficiencyGrant() {}
func (ProficiencyChoice) isProficiencyGrant()  {}
func (MatchAbilityChoice) isProficiencyGrant() {}

// Candidates returns the pickable names, defaulting to every skill
func (g ProficiencyChoice) Candidates() []string {
	if len(g.Options) == 0 {
		return dnd5e.Skills
	}
	return g.Options
}

// HasAnyBenefits reports whether the block grants anything at all
func (b *Benefits) HasAnyBenefits() bool {
	return len(b.AbilityScoreIncreases) > 0 ||
		len(b.SkillProficiencies) > 0 ||
		len(b.Expertise) > 0 ||
		len(b.SavingThrowProficiencies) > 0 ||
		len(b.Resistances) > 0 ||
		len(b.Immunities) > 0 ||
		len(b.Speeds) > 0 ||
		len(b.CombatBonuses) > 0 ||
		len(b.SpellcastingBenefits) > 0 ||
		len(b.SpecialAbilities) > 0
}
