// Package progression defines the interface for character progression operations
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/KirkDiggler/rpg-progression/internal/services/progression Service

import (
	"context"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// Service defines the interface for character progression operations
type Service interface {
	// Character views
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	GetDerivedBenefits(ctx context.Context, input *GetDerivedBenefitsInput) (*GetDerivedBenefitsOutput, error)
	ListAvailableFeats(ctx context.Context, input *ListAvailableFeatsInput) (*ListAvailableFeatsOutput, error)

	// Level 1 boundary
	SetLevel1Choice(ctx context.Context, input *SetLevel1ChoiceInput) (*SetLevel1ChoiceOutput, error)

	// Level-up wizard
	StartLevelUp(ctx context.Context, input *StartLevelUpInput) (*StartLevelUpOutput, error)
	GetLevelUp(ctx context.Context, input *GetLevelUpInput) (*GetLevelUpOutput, error)
	UpdateLevelUp(ctx context.Context, input *UpdateLevelUpInput) (*UpdateLevelUpOutput, error)
	CommitLevelUp(ctx context.Context, input *CommitLevelUpInput) (*CommitLevelUpOutput, error)
}

// Character views

// GetCharacterInput defines the request for loading a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput carries the stored snapshot and its derived view
type GetCharacterOutput struct {
	Character *dnd5e.Character
	Benefits  *engine.DerivedBenefits
}

// GetDerivedBenefitsInput defines the request for a character's benefit view
type GetDerivedBenefitsInput struct {
	CharacterID string
}

// GetDerivedBenefitsOutput defines the response for a character's benefit view
type GetDerivedBenefitsOutput struct {
	Benefits *engine.DerivedBenefits
}

// ListAvailableFeatsInput defines the request for listing selectable feats.
// Level is the level prerequisites are checked at; zero means the
// character's current level.
type ListAvailableFeatsInput struct {
	CharacterID string
	Level       int
}

// ListAvailableFeatsOutput lists what the character may select
type ListAvailableFeatsOutput struct {
	Feats     []*catalog.Feat
	Heritages []*catalog.Heritage
}

// Level 1 boundary

// SetLevel1ChoiceInput switches or fills the level 1 pick. With Feat set the
// feat is selected; with Heritage set the heritage is selected; with neither
// the choice type is switched and the other side cleared.
type SetLevel1ChoiceInput struct {
	CharacterID string
	ChoiceType  dnd5e.Level1ChoiceType
	Feat        *engine.SelectFeatInput
	Heritage    *engine.SelectHeritageInput
}

// SetLevel1ChoiceOutput carries the saved character
type SetLevel1ChoiceOutput struct {
	Character *dnd5e.Character
	Benefits  *engine.DerivedBenefits
}

// Level-up wizard

// LevelUpAction is one edit to a wizard session
type LevelUpAction string

// Wizard actions
const (
	LevelUpActionSetHitPoints        LevelUpAction = "set_hit_points"
	LevelUpActionSetAbilityIncreases LevelUpAction = "set_ability_increases"
	LevelUpActionSelectFeat          LevelUpAction = "select_feat"
	LevelUpActionAdvance             LevelUpAction = "advance"
	LevelUpActionBack                LevelUpAction = "back"
)

// StartLevelUpInput defines the request for opening a wizard
type StartLevelUpInput struct {
	CharacterID string
}

// StartLevelUpOutput carries the open wizard. Resumed is set when an open
// session for the same level already existed.
type StartLevelUpOutput struct {
	Session    *engine.LevelUpSession
	CanProceed bool
	Resumed    bool
}

// GetLevelUpInput defines the request for reading a wizard
type GetLevelUpInput struct {
	SessionID string
}

// GetLevelUpOutput carries a wizard and its gate
type GetLevelUpOutput struct {
	Session    *engine.LevelUpSession
	CanProceed bool
}

// UpdateLevelUpInput applies one action to a wizard. HitPointValue is the
// die face or manual entry; a roll with no value is rolled server side.
type UpdateLevelUpInput struct {
	SessionID        string
	Action           LevelUpAction
	HitPointMethod   engine.HitPointMethod
	HitPointValue    int
	AbilityIncreases []dnd5e.Ability
	Feat             *engine.SelectFeatInput
}

// UpdateLevelUpOutput carries the wizard after the action
type UpdateLevelUpOutput struct {
	Session    *engine.LevelUpSession
	CanProceed bool
	// Rolled is the hit die face when the server rolled it
	Rolled int
}

// CommitLevelUpInput defines the request for committing a wizard
type CommitLevelUpInput struct {
	SessionID string
}

// CommitLevelUpOutput carries the saved character and the closed wizard
type CommitLevelUpOutput struct {
	Character *dnd5e.Character
	Session   *engine.LevelUpSession
}
