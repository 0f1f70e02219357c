// Package dicesession provides repository interface and types for dice roll sessions
package dicesession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-progression/internal/repositories/dice_session Repository

// DiceSession groups the rolls one entity made for one purpose
type DiceSession struct {
	// Entity that owns these rolls (e.g. "char_789")
	EntityID string `json:"entity_id"`

	// Context groups related rolls (e.g. "level_up:lvl_123")
	Context string `json:"context"`

	Rolls []DiceRoll `json:"rolls"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DiceRoll is a single roll result
type DiceRoll struct {
	RollID string `json:"roll_id"`

	// Notation that was rolled, e.g. "1d10"
	Notation string `json:"notation"`

	// Dice holds each die's face
	Dice  []int `json:"dice"`
	Total int   `json:"total"`

	Description string `json:"description,omitempty"`
}

// CreateInput contains parameters for creating a dice session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration // How long the session should live
}

// CreateOutput contains the result of creating a dice session
type CreateOutput struct {
	Session *DiceSession
}

// GetInput contains parameters for retrieving a dice session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput contains the result of retrieving a dice session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput contains parameters for deleting a dice session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput contains the result of deleting a dice session
type DeleteOutput struct {
	RollsDeleted int
}

// Repository defines the interface for dice session storage operations
type Repository interface {
	// Create stores a new dice session with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dice session by entity ID and context
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dice session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *DiceSession) error
}
