// Package engine holds the character progression rules: prerequisites,
// benefit aggregation, the level 1 feat/heritage boundary and the level-up
// wizard.
//
// Everything here is synchronous and side-effect free with respect to its
// inputs. Characters are never mutated in place; operations that change a
// character return a new snapshot.
package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// Engine provides the progression rules
type Engine interface {
	// Prerequisites
	IsFeatEligible(featName string, character *dnd5e.Character) bool
	IsHeritageEligible(heritageName string, character *dnd5e.Character) bool
	AvailableFeats(character *dnd5e.Character) []*catalog.Feat
	AvailableHeritages(character *dnd5e.Character) []*catalog.Heritage

	// Benefit aggregation
	Aggregate(featNames []string, character *dnd5e.Character, choices dnd5e.Choices) *DerivedBenefits
	AggregateHeritage(
		heritageName string,
		character *dnd5e.Character,
		options map[string]string,
		choices dnd5e.Choices,
	) *DerivedBenefits
	Derive(character *dnd5e.Character) *DerivedBenefits

	// Choice bookkeeping
	RequiredChoices(featName string, instance int) []dnd5e.ChoiceKey
	MissingChoices(featName string, instance int, choices dnd5e.Choices) []dnd5e.ChoiceKey
	MissingHeritageChoices(heritageName string, options map[string]string, choices dnd5e.Choices) []dnd5e.ChoiceKey

	// Level 1 boundary
	SetLevel1ChoiceType(character *dnd5e.Character, choiceType dnd5e.Level1ChoiceType) (*dnd5e.Character, error)
	SelectInnateHeritage(character *dnd5e.Character, input *SelectHeritageInput) (*dnd5e.Character, error)
	SelectLevel1Feat(character *dnd5e.Character, input *SelectFeatInput) (*dnd5e.Character, error)

	// Level-up wizard
	StartLevelUp(character *dnd5e.Character) (*LevelUpSession, error)
	SetHitPoints(session *LevelUpSession, character *dnd5e.Character, method HitPointMethod, value int) error
	SetAbilityIncreases(session *LevelUpSession, abilities []dnd5e.Ability) error
	SelectFeat(session *LevelUpSession, character *dnd5e.Character, input *SelectFeatInput) error
	CanProceed(session *LevelUpSession, character *dnd5e.Character) bool
	Advance(session *LevelUpSession, character *dnd5e.Character) error
	Back(session *LevelUpSession) error
	ResolveLevelUp(character *dnd5e.Character, session *LevelUpSession) (*dnd5e.Character, error)

	// Stored data checks
	Audit(character *dnd5e.Character) []AuditFinding
}
