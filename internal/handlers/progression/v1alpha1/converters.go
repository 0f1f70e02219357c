package v1alpha1

import (
	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/engine"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/services/progression"
)

func convertFeats(feats []*catalog.Feat) []*FeatSummary {
	out := make([]*FeatSummary, 0, len(feats))
	for _, f := range feats {
		out = append(out, &FeatSummary{
			Name:          f.Name,
			Preview:       f.Preview,
			Description:   f.Description,
			Repeatable:    f.Repeatable,
			Prerequisites: f.Prerequisites,
		})
	}
	return out
}

func convertHeritages(heritages []*catalog.Heritage) []*HeritageSummary {
	out := make([]*HeritageSummary, 0, len(heritages))
	for _, h := range heritages {
		summary := &HeritageSummary{
			Name:          h.Name,
			Description:   h.Description,
			Prerequisites: h.Prerequisites,
		}
		for _, feature := range h.Features {
			fs := FeatureSummary{
				Name:        feature.Name,
				Description: feature.Description,
				IsChoice:    feature.IsChoice,
			}
			for _, option := range feature.Options {
				fs.Options = append(fs.Options, option.Name)
			}
			summary.Features = append(summary.Features, fs)
		}
		out = append(out, summary)
	}
	return out
}

func convertFeatSelection(in *FeatSelection) *engine.SelectFeatInput {
	if in == nil {
		return nil
	}
	return &engine.SelectFeatInput{
		Name:    in.Name,
		Choices: in.Choices,
	}
}

// convertUpdateLevelUp checks the fields each action needs
func convertUpdateLevelUp(req *UpdateLevelUpRequest) (*progression.UpdateLevelUpInput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", req.SessionID, vb)

	input := &progression.UpdateLevelUpInput{
		SessionID: req.SessionID,
		Action:    progression.LevelUpAction(req.Action),
	}

	switch input.Action {
	case progression.LevelUpActionSetHitPoints:
		input.HitPointMethod = engine.HitPointMethod(req.HitPointMethod)
		input.HitPointValue = req.HitPointValue
		if !input.HitPointMethod.IsValid() {
			vb.InvalidField("hit_point_method", "must be average, roll or manual")
		}
	case progression.LevelUpActionSetAbilityIncreases:
		for _, name := range req.AbilityIncreases {
			ability := dnd5e.Ability(name)
			if !ability.IsValid() {
				vb.InvalidField("ability_increases", "unknown ability "+name)
				continue
			}
			input.AbilityIncreases = append(input.AbilityIncreases, ability)
		}
	case progression.LevelUpActionSelectFeat:
		if req.Feat == nil || req.Feat.Name == "" {
			vb.RequiredField("feat.name")
		}
		input.Feat = convertFeatSelection(req.Feat)
	case progression.LevelUpActionAdvance, progression.LevelUpActionBack:
	case "":
		vb.RequiredField("action")
	default:
		vb.InvalidField("action", "unknown action "+req.Action)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return input, nil
}
