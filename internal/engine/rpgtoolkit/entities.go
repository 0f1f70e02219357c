// Package rpgtoolkit adapts progression entities to rpg-toolkit interfaces
package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// Entity types reported to rpg-toolkit
const (
	EntityTypeCharacter      = "character"
	EntityTypeLevelUpSession = "level_up_session"
)

// Compile-time check that our entity wrappers implement core.Entity
var (
	_ core.Entity = (*CharacterEntity)(nil)
	_ core.Entity = (*LevelUpSessionEntity)(nil)
)

// CharacterEntity wraps dnd5e.Character to implement core.Entity interface
type CharacterEntity struct {
	*dnd5e.Character
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return EntityTypeCharacter
}

// LevelUpSessionEntity wraps engine.LevelUpSession to implement core.Entity
type LevelUpSessionEntity struct {
	*engine.LevelUpSession
}

// GetID returns the session's ID
func (s *LevelUpSessionEntity) GetID() string {
	return s.ID
}

// GetType returns the entity type for rpg-toolkit
func (s *LevelUpSessionEntity) GetType() string {
	return EntityTypeLevelUpSession
}

// WrapCharacter converts a dnd5e.Character to a CharacterEntity
func WrapCharacter(character *dnd5e.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// WrapLevelUpSession converts an engine.LevelUpSession to a LevelUpSessionEntity
func WrapLevelUpSession(session *engine.LevelUpSession) *LevelUpSessionEntity {
	return &LevelUpSessionEntity{LevelUpSession: session}
}
