// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	character *dnd5e.Character
}

// NewCharacterBuilder creates a new builder with a level 1 Wit Caster whose
// ability scores are all 10
func NewCharacterBuilder() *CharacterBuilder {
	now := time.Now().Unix()
	c := &dnd5e.Character{
		ID:           "char-test-123",
		PlayerID:     "player-test-123",
		Name:         "Test Character",
		Level:        1,
		CastingStyle: dnd5e.CastingStyleWit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, a := range dnd5e.Abilities {
		c.SetAbilityScore(a, 10)
	}
	c.HitPoints = 6
	c.CurrentHitPoints = 6

	return &CharacterBuilder{character: c}
}

// WithID sets the character ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.character.ID = id
	return b
}

// WithPlayerID sets the player ID
func (b *CharacterBuilder) WithPlayerID(playerID string) *CharacterBuilder {
	b.character.PlayerID = playerID
	return b
}

// WithRevision sets the stored revision
func (b *CharacterBuilder) WithRevision(revision int64) *CharacterBuilder {
	b.character.Revision = revision
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// WithLevel sets the level
func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	b.character.Level = level
	return b
}

// WithCastingStyle sets the casting style
func (b *CharacterBuilder) WithCastingStyle(style dnd5e.CastingStyle) *CharacterBuilder {
	b.character.CastingStyle = style
	return b
}

// WithSubclass sets the subclass
func (b *CharacterBuilder) WithSubclass(subclass string) *CharacterBuilder {
	b.character.Subclass = subclass
	return b
}

// WithAbilityScore sets one ability score and its mirror
func (b *CharacterBuilder) WithAbilityScore(ability dnd5e.Ability, score int) *CharacterBuilder {
	b.character.SetAbilityScore(ability, score)
	return b
}

// WithFeats appends standard feats
func (b *CharacterBuilder) WithFeats(feats ...string) *CharacterBuilder {
	b.character.StandardFeats = append(b.character.StandardFeats, feats...)
	return b
}

// WithFeatChoice records one feat choice in its stored form
func (b *CharacterBuilder) WithFeatChoice(key, value string) *CharacterBuilder {
	if b.character.FeatChoices == nil {
		b.character.FeatChoices = make(map[string]string)
	}
	b.character.FeatChoices[key] = value
	return b
}

// WithLevel1Feat makes feat the level 1 pick
func (b *CharacterBuilder) WithLevel1Feat(feat string) *CharacterBuilder {
	b.character.Level1ChoiceType = dnd5e.Level1ChoiceFeat
	b.character.StandardFeats = append([]string{feat}, b.character.StandardFeats...)
	return b
}

// WithInnateHeritage makes heritage the level 1 pick with the given feature options
func (b *CharacterBuilder) WithInnateHeritage(heritage string, options map[string]string) *CharacterBuilder {
	b.character.Level1ChoiceType = dnd5e.Level1ChoiceInnateHeritage
	b.character.InnateHeritage = heritage
	if options != nil {
		b.character.HeritageChoices = map[string]map[string]string{heritage: options}
	}
	return b
}

// WithASIChoice records what was taken at an ASI level
func (b *CharacterBuilder) WithASIChoice(level int, choice *dnd5e.ASIChoice) *CharacterBuilder {
	if b.character.ASIChoices == nil {
		b.character.ASIChoices = make(map[int]*dnd5e.ASIChoice)
	}
	b.character.ASIChoices[level] = choice
	return b
}

// WithSkills sets skill proficiencies
func (b *CharacterBuilder) WithSkills(skills ...string) *CharacterBuilder {
	for _, s := range skills {
		b.character.AddSkillProficiency(s)
	}
	return b
}

// WithExpertise sets skill expertise, which implies proficiency
func (b *CharacterBuilder) WithExpertise(skills ...string) *CharacterBuilder {
	for _, s := range skills {
		b.character.AddSkillExpertise(s)
	}
	return b
}

// WithHitPoints sets both maximum and current hit points
func (b *CharacterBuilder) WithHitPoints(hp int) *CharacterBuilder {
	b.character.HitPoints = hp
	b.character.CurrentHitPoints = hp
	return b
}

// WithCurrentHitPoints sets current hit points only
func (b *CharacterBuilder) WithCurrentHitPoints(hp int) *CharacterBuilder {
	b.character.CurrentHitPoints = hp
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *dnd5e.Character {
	return b.character
}
