// Package levelupsession stores in-progress level-up wizards
package levelupsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=levelupsessionmock github.com/KirkDiggler/rpg-progression/internal/repositories/levelup_session Repository

// SaveInput contains parameters for saving a wizard session
type SaveInput struct {
	Session *engine.LevelUpSession
	TTL     time.Duration // How long the session lives after this save
}

// SaveOutput contains the result of saving a wizard session
type SaveOutput struct {
	Session *engine.LevelUpSession
}

// GetInput contains parameters for retrieving a wizard session
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a wizard session
type GetOutput struct {
	Session *engine.LevelUpSession
}

// GetActiveForCharacterInput contains parameters for finding a character's open wizard
type GetActiveForCharacterInput struct {
	CharacterID string
}

// GetActiveForCharacterOutput contains the open wizard for a character
type GetActiveForCharacterOutput struct {
	Session *engine.LevelUpSession
}

// DeleteInput contains parameters for deleting a wizard session
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a wizard session
type DeleteOutput struct{}

// Repository defines the interface for level-up session storage
type Repository interface {
	// Save stores the session and refreshes its expiry. A character has at
	// most one open session; saving a committed session closes it.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a session by ID, committed or not
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActiveForCharacter returns the character's open session
	GetActiveForCharacter(ctx context.Context, input GetActiveForCharacterInput) (*GetActiveForCharacterOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
