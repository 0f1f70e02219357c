package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// ProficiencyTypeChoice marks an unresolved placeholder in a proficiency list
const ProficiencyTypeChoice = "choice"

// AbilitySource is one contribution to an ability total
type AbilitySource struct {
	FeatName string `json:"feat_name"`
	Amount   int    `json:"amount"`
}

// ProficiencySource is a skill, expertise or save grant. Resolved grants carry
// Name; choice placeholders carry Type "choice" plus Count, Options and the
// keys the picks are stored under.
type ProficiencySource struct {
	Source  string   `json:"source"`
	Name    string   `json:"name,omitempty"`
	Type    string   `json:"type,omitempty"`
	Count   int      `json:"count,omitempty"`
	Options []string `json:"options,omitempty"`
	Keys    []string `json:"keys,omitempty"`
}

// IsChoice reports whether the entry is an unresolved placeholder
func (p ProficiencySource) IsChoice() bool {
	return p.Type == ProficiencyTypeChoice
}

// SourcedText is a resistance or immunity with its origin
type SourcedText struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

// SourcedValue is one contribution under a speed, combat or spellcasting heading
type SourcedValue struct {
	Source string        `json:"source"`
	Value  catalog.Value `json:"value"`
}

// SourcedAbility is a special ability with its origin
type SourcedAbility struct {
	Source string `json:"source"`
	catalog.SpecialAbility
}

// DerivedBenefits is the consolidated view of everything the selected feats
// and heritage grant. It is rebuilt on every read and never stored.
type DerivedBenefits struct {
	AbilityModifiers         map[dnd5e.Ability]int             `json:"ability_modifiers"`
	FeatDetails              map[dnd5e.Ability][]AbilitySource `json:"feat_details"`
	SkillProficiencies       []ProficiencySource               `json:"skill_proficiencies"`
	Expertise                []ProficiencySource               `json:"expertise"`
	SavingThrowProficiencies []ProficiencySource               `json:"saving_throw_proficiencies"`
	Resistances              []SourcedText                     `json:"resistances"`
	Immunities               []SourcedText                     `json:"immunities"`
	Speeds                   map[string][]SourcedValue         `json:"speeds"`
	CombatBonuses            map[string][]SourcedValue         `json:"combat_bonuses"`
	SpellcastingBenefits     map[string][]SourcedValue         `json:"spellcasting_benefits"`
	SpecialAbilities         []SourcedAbility                  `json:"special_abilities"`

	// DefaultedChoices lists single-slot choices that were missing and fell
	// back to their first candidate
	DefaultedChoices []dnd5e.ChoiceKey `json:"defaulted_choices,omitempty"`
}

// HasAnyBenefits is true iff any list or map above is non-empty
func (d *DerivedBenefits) HasAnyBenefits() bool {
	return len(d.AbilityModifiers) > 0 ||
		len(d.FeatDetails) > 0 ||
		len(d.SkillProficiencies) > 0 ||
		len(d.Expertise) > 0 ||
		len(d.SavingThrowProficiencies) > 0 ||
		len(d.Resistances) > 0 ||
		len(d.Immunities) > 0 ||
		len(d.Speeds) > 0 ||
		len(d.CombatBonuses) > 0 ||
		len(d.SpellcastingBenefits) > 0 ||
		len(d.SpecialAbilities) > 0
}

// SelectFeatInput names a feat and the picks it needs, keyed in the stored
// Subject_kind_index[_instance] form
type SelectFeatInput struct {
	Name    string
	Choices map[string]string
}

// SelectHeritageInput names a heritage, its feature options and any grant picks
type SelectHeritageInput struct {
	Name    string
	Options map[string]string
	Choices map[string]string
}

// HitPointMethod is how the wizard's hit point increase was produced
type HitPointMethod string

// Hit point methods
const (
	HitPointMethodAverage HitPointMethod = "average"
	HitPointMethodRoll    HitPointMethod = "roll"
	HitPointMethodManual  HitPointMethod = "manual"
)

// IsValid reports whether m is a known method
func (m HitPointMethod) IsValid() bool {
	switch m {
	case HitPointMethodAverage, HitPointMethodRoll, HitPointMethodManual:
		return true
	default:
		return false
	}
}

// LevelUpStep is a wizard state
type LevelUpStep string

// Wizard steps in order
const (
	LevelUpStepHitPoints LevelUpStep = "hit_points"
	LevelUpStepASIOrFeat LevelUpStep = "asi_or_feat"
	LevelUpStepReview    LevelUpStep = "review"
	LevelUpStepCommitted LevelUpStep = "committed"
)

// LevelUpSession is the state of one level-up wizard
type LevelUpSession struct {
	ID          string      `json:"id"`
	CharacterID string      `json:"character_id"`
	FromLevel   int         `json:"from_level"`
	ToLevel     int         `json:"to_level"`
	Step        LevelUpStep `json:"step"`

	HitPointMethod HitPointMethod `json:"hit_point_method,omitempty"`
	// HitPointInput is the raw die roll or the manually entered value
	HitPointInput    int `json:"hit_point_input,omitempty"`
	HitPointIncrease int `json:"hit_point_increase"`

	ASIChoiceType    string            `json:"asi_choice_type,omitempty"`
	AbilityIncreases []dnd5e.Ability   `json:"ability_increases,omitempty"`
	SelectedFeat     string            `json:"selected_feat,omitempty"`
	FeatInstance     int               `json:"feat_instance,omitempty"`
	FeatChoices      map[string]string `json:"feat_choices,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// IsASILevel reports whether the wizard includes the ASI-or-feat step
func (s *LevelUpSession) IsASILevel() bool {
	return dnd5e.IsASILevel(s.ToLevel)
}

// Steps lists the wizard's steps up to review
func (s *LevelUpSession) Steps() []LevelUpStep {
	if s.IsASILevel() {
		return []LevelUpStep{LevelUpStepHitPoints, LevelUpStepASIOrFeat, LevelUpStepReview}
	}
	return []LevelUpStep{LevelUpStepHitPoints, LevelUpStepReview}
}

// IsCommitted reports whether the session has been committed
func (s *LevelUpSession) IsCommitted() bool {
	return s.Step == LevelUpStepCommitted
}
