package character

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// CharacterUpdate is a partial update of the fields progression writes.
// Nil fields are left unchanged. Slices and maps replace the stored value
// wholesale; pass an empty, non-nil value to clear one.
type CharacterUpdate struct {
	Level            *int
	HitPoints        *int
	CurrentHitPoints *int
	AbilityScores    map[dnd5e.Ability]int

	StandardFeats    []string
	InnateHeritage   *string
	Level1ChoiceType *dnd5e.Level1ChoiceType
	FeatChoices      map[string]string
	HeritageChoices  map[string]map[string]string
	ASIChoices       map[int]*dnd5e.ASIChoice

	SkillProficiencies []string
	SkillExpertise     []string
}

// UpdateFrom captures every mutable progression field of c
func UpdateFrom(c *dnd5e.Character) *CharacterUpdate {
	c = c.Clone()
	c.SyncAbilityMirrors()

	level := c.Level
	hp := c.HitPoints
	current := c.CurrentHitPoints
	heritage := c.InnateHeritage
	choiceType := c.Level1ChoiceType

	return &CharacterUpdate{
		Level:              &level,
		HitPoints:          &hp,
		CurrentHitPoints:   &current,
		AbilityScores:      c.AbilityScores,
		StandardFeats:      nonNilStrings(c.StandardFeats),
		InnateHeritage:     &heritage,
		Level1ChoiceType:   &choiceType,
		FeatChoices:        nonNilMap(c.FeatChoices),
		HeritageChoices:    nonNilNestedMap(c.HeritageChoices),
		ASIChoices:         nonNilASIChoices(c.ASIChoices),
		SkillProficiencies: nonNilStrings(c.SkillProficiencies),
		SkillExpertise:     nonNilStrings(c.SkillExpertise),
	}
}

// Validate rejects values no stored character may hold
func (u *CharacterUpdate) Validate() error {
	vb := errors.NewValidationBuilder()

	if u.Level != nil {
		errors.ValidateRange("level", *u.Level, dnd5e.MinLevel, dnd5e.MaxLevel, vb)
	}
	if u.HitPoints != nil && *u.HitPoints < 1 {
		vb.Field("hit_points", "must be at least 1")
	}
	for ability, score := range u.AbilityScores {
		if !ability.IsValid() {
			vb.InvalidField("ability_scores", "unknown ability "+string(ability))
			continue
		}
		errors.ValidateRange("ability_scores."+string(ability), score, dnd5e.AbilityScoreMin, dnd5e.AbilityScoreMax, vb)
	}
	if u.Level1ChoiceType != nil {
		errors.ValidateEnum("level1_choice_type", string(*u.Level1ChoiceType), []string{
			string(dnd5e.Level1ChoiceNone),
			string(dnd5e.Level1ChoiceFeat),
			string(dnd5e.Level1ChoiceInnateHeritage),
		}, vb)
	}

	return vb.Build()
}

// Apply writes the set fields onto c and resyncs the ability mirrors
func (u *CharacterUpdate) Apply(c *dnd5e.Character) {
	if u.Level != nil {
		c.Level = *u.Level
	}
	if u.HitPoints != nil {
		c.HitPoints = *u.HitPoints
	}
	if u.CurrentHitPoints != nil {
		c.CurrentHitPoints = *u.CurrentHitPoints
	}
	for ability, score := range u.AbilityScores {
		if c.AbilityScores == nil {
			c.AbilityScores = make(map[dnd5e.Ability]int, len(dnd5e.Abilities))
		}
		c.AbilityScores[ability] = score
	}
	if u.StandardFeats != nil {
		c.StandardFeats = append([]string(nil), u.StandardFeats...)
	}
	if u.InnateHeritage != nil {
		c.InnateHeritage = *u.InnateHeritage
	}
	if u.Level1ChoiceType != nil {
		c.Level1ChoiceType = *u.Level1ChoiceType
	}
	if u.FeatChoices != nil {
		c.FeatChoices = u.FeatChoices
	}
	if u.HeritageChoices != nil {
		c.HeritageChoices = u.HeritageChoices
	}
	if u.ASIChoices != nil {
		c.ASIChoices = u.ASIChoices
	}
	if u.SkillProficiencies != nil {
		c.SkillProficiencies = append([]string(nil), u.SkillProficiencies...)
	}
	if u.SkillExpertise != nil {
		c.SkillExpertise = append([]string(nil), u.SkillExpertise...)
	}

	c.SyncAbilityMirrors()
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func nonNilMap(in map[string]string) map[string]string {
	if in == nil {
		return map[string]string{}
	}
	return in
}

func nonNilNestedMap(in map[string]map[string]string) map[string]map[string]string {
	if in == nil {
		return map[string]map[string]string{}
	}
	return in
}

func nonNilASIChoices(in map[int]*dnd5e.ASIChoice) map[int]*dnd5e.ASIChoice {
	if in == nil {
		return map[int]*dnd5e.ASIChoice{}
	}
	return in
}
