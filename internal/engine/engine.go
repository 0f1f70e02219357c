package engine

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

type engine struct {
	catalog *catalog.Catalog
}

// Config holds the engine's dependencies
type Config struct {
	Catalog *catalog.Catalog
}

// Validate ensures the config is complete
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

// New creates the rules engine over a loaded catalog
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	return &engine{catalog: cfg.Catalog}, nil
}

// AbilityModifier is floor((score-10)/2)
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}
