package character

import (
	"sort"

	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// prepareForCreate returns the copy that gets stored: mirrors synced and
// timestamps filled in
func prepareForCreate(c *dnd5e.Character, now int64) *dnd5e.Character {
	out := c.Clone()
	out.SyncAbilityMirrors()
	if out.Level < dnd5e.MinLevel {
		out.Level = dnd5e.MinLevel
	}
	if out.CreatedAt == 0 {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	out.Revision = 1
	return out
}

// applyUpdate checks the expected revision against stored and applies input
// to it. A zero ExpectedRevision skips the check.
func applyUpdate(stored *dnd5e.Character, input UpdateInput, now int64) error {
	if input.ExpectedRevision != 0 && input.ExpectedRevision != stored.Revision {
		return errors.Abortedf("character %s was modified concurrently", stored.ID).
			WithMeta("expected_revision", input.ExpectedRevision).
			WithMeta("stored_revision", stored.Revision)
	}
	input.Update.Apply(stored)
	stored.UpdatedAt = now
	stored.Revision++
	return nil
}

// sortCharacters orders by creation time, then ID
func sortCharacters(chars []*dnd5e.Character) {
	sort.Slice(chars, func(i, j int) bool {
		if chars[i].CreatedAt != chars[j].CreatedAt {
			return chars[i].CreatedAt < chars[j].CreatedAt
		}
		return chars[i].ID < chars[j].ID
	})
}
