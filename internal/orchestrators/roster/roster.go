// Package roster loads characters into the store and checks stored
// characters against the progression rules
package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-progression/internal/repositories/character"
)

// Config holds the roster's dependencies
type Config struct {
	CharacterRepo characterrepo.Repository
	Engine        engine.Engine
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	return vb.Build()
}

// Roster imports and audits characters
type Roster struct {
	characterRepo characterrepo.Repository
	engine        engine.Engine
}

// New creates a roster
func New(cfg *Config) (*Roster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Roster{characterRepo: cfg.CharacterRepo, engine: cfg.Engine}, nil
}

// ImportInput lists the characters to write. With Strict set, a character
// with audit findings is not written.
type ImportInput struct {
	Characters []*dnd5e.Character
	Strict     bool
}

// ImportResult is what happened to one character
type ImportResult struct {
	CharacterID string                `json:"character_id"`
	Created     bool                  `json:"created"`
	Updated     bool                  `json:"updated"`
	Skipped     bool                  `json:"skipped"`
	Findings    []engine.AuditFinding `json:"findings,omitempty"`
}

// ImportOutput reports each character in input order
type ImportOutput struct {
	Results []ImportResult
}

// Import creates each character, or overwrites the progression fields of
// one that already exists
func (r *Roster) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &ImportOutput{Results: make([]ImportResult, 0, len(input.Characters))}
	for i, c := range input.Characters {
		if c == nil || c.ID == "" {
			return nil, errors.InvalidArgumentf("character %d has no id", i)
		}
		c = c.Clone()
		c.SyncAbilityMirrors()

		result := ImportResult{CharacterID: c.ID, Findings: r.engine.Audit(c)}
		if input.Strict && len(result.Findings) > 0 {
			result.Skipped = true
			out.Results = append(out.Results, result)
			slog.WarnContext(ctx, "skipping inconsistent character",
				"character_id", c.ID,
				"findings", len(result.Findings))
			continue
		}

		_, err := r.characterRepo.Create(ctx, characterrepo.CreateInput{Character: c})
		switch {
		case err == nil:
			result.Created = true
		case errors.IsAlreadyExists(err):
			if _, err := r.characterRepo.Update(ctx, characterrepo.UpdateInput{
				ID:     c.ID,
				Update: characterrepo.UpdateFrom(c),
			}); err != nil {
				return nil, errors.Wrapf(err, "failed to update character %s", c.ID)
			}
			result.Updated = true
		default:
			return nil, errors.Wrapf(err, "failed to create character %s", c.ID)
		}

		slog.InfoContext(ctx, "imported character",
			"character_id", c.ID,
			"created", result.Created)
		out.Results = append(out.Results, result)
	}

	return out, nil
}

// AuditInput selects characters by ID, by player, or both
type AuditInput struct {
	CharacterIDs []string
	PlayerID     string
}

// AuditReport is the findings for one stored character
type AuditReport struct {
	CharacterID string                `json:"character_id"`
	Findings    []engine.AuditFinding `json:"findings"`
}

// AuditOutput lists only characters with findings
type AuditOutput struct {
	Checked int
	Reports []AuditReport
}

// Audit loads the selected characters and checks each one
func (r *Roster) Audit(ctx context.Context, input *AuditInput) (*AuditOutput, error) {
	if input == nil || (len(input.CharacterIDs) == 0 && input.PlayerID == "") {
		return nil, errors.InvalidArgument("character ids or a player id are required")
	}

	var characters []*dnd5e.Character
	for _, id := range input.CharacterIDs {
		got, err := r.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load character %s", id)
		}
		characters = append(characters, got.Character)
	}
	if input.PlayerID != "" {
		listed, err := r.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
		}
		characters = append(characters, listed.Characters...)
	}

	out := &AuditOutput{}
	seen := make(map[string]bool, len(characters))
	for _, c := range characters {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out.Checked++

		if findings := r.engine.Audit(c); len(findings) > 0 {
			out.Reports = append(out.Reports, AuditReport{CharacterID: c.ID, Findings: findings})
		}
	}
	return out, nil
}

// characterFile is the import document: a top-level characters list
type characterFile struct {
	Characters []any `yaml:"characters"`
}

// ParseCharacters reads a YAML (or JSON) import document. Fields use the
// same snake_case names the characters are stored under.
func ParseCharacters(r io.Reader) ([]*dnd5e.Character, error) {
	var doc characterFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.InvalidArgumentf("failed to parse character file: %v", err)
	}

	out := make([]*dnd5e.Character, 0, len(doc.Characters))
	for i, raw := range doc.Characters {
		data, err := json.Marshal(stringKeys(raw))
		if err != nil {
			return nil, errors.InvalidArgumentf("character %d: %v", i, err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		var c dnd5e.Character
		if err := dec.Decode(&c); err != nil {
			return nil, errors.InvalidArgumentf("character %d: %v", i, err)
		}
		out = append(out, &c)
	}
	return out, nil
}

// stringKeys rewrites YAML mappings with non-string keys, such as the level
// keys of asi_choices, so the value can be marshaled as JSON
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = stringKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = stringKeys(val)
		}
		return out
	default:
		return v
	}
}
