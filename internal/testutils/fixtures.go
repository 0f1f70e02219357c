package testutils

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/testutils/builders"
)

// Character stages for testing
const (
	StageFresh          = "fresh"
	StageLevel1Feat     = "level1_feat"
	StageHeritage       = "heritage"
	StageBeforeFirstASI = "before_first_asi"

	// TestCharacterName is the default character name for test fixtures
	TestCharacterName = "Nymphadora Tonks"
)

// CreateTestCharacter creates a level 1 Grace Caster with a typical array
func CreateTestCharacter(playerID string) *dnd5e.Character {
	return builders.NewCharacterBuilder().
		WithID("char-test-001").
		WithPlayerID(playerID).
		WithName(TestCharacterName).
		WithCastingStyle(dnd5e.CastingStyleGrace).
		WithAbilityScore(dnd5e.AbilityStrength, 8).
		WithAbilityScore(dnd5e.AbilityDexterity, 14).
		WithAbilityScore(dnd5e.AbilityConstitution, 14).
		WithAbilityScore(dnd5e.AbilityIntelligence, 12).
		WithAbilityScore(dnd5e.AbilityWisdom, 10).
		WithAbilityScore(dnd5e.AbilityCharisma, 15).
		WithHitPoints(10).
		Build()
}

// CreateTestCharacterAtStage creates a test character at various points of progression
func CreateTestCharacterAtStage(playerID string, stage string) *dnd5e.Character {
	c := CreateTestCharacter(playerID)

	switch stage {
	case StageLevel1Feat:
		c.Level1ChoiceType = dnd5e.Level1ChoiceFeat
		c.StandardFeats = []string{"Actor"}

	case StageHeritage:
		c.Level1ChoiceType = dnd5e.Level1ChoiceInnateHeritage
		c.InnateHeritage = "Part-Veela"
		c.HeritageChoices = map[string]map[string]string{
			"Part-Veela": {"Veela Fire": "Enchanting Song"},
		}
		c.SkillProficiencies = []string{dnd5e.SkillPersuasion, dnd5e.SkillPerformance}

	case StageBeforeFirstASI:
		c.Level = 3
		c.Level1ChoiceType = dnd5e.Level1ChoiceFeat
		c.StandardFeats = []string{"Actor"}
		// 8 + 2 + 2*(5+2)
		c.HitPoints = 24
		c.CurrentHitPoints = 24
	}

	return c
}
