package engine

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-progression/internal/catalog"
	"github.com/KirkDiggler/rpg-progression/internal/entities/dnd5e"
)

// IsEligible reports whether the character meets prereqs. No prerequisites
// means eligible. When both lists are present both must hold. Unknown
// requirement kinds and unparsable values never hold.
func IsEligible(prereqs *catalog.Prerequisites, character *dnd5e.Character) bool {
	if prereqs == nil {
		return true
	}
	if character == nil {
		return false
	}

	for _, req := range prereqs.AllOf {
		if !requirementMet(req, character) {
			return false
		}
	}

	if len(prereqs.AnyOf) == 0 {
		return true
	}
	for _, req := range prereqs.AnyOf {
		if requirementMet(req, character) {
			return true
		}
	}
	return false
}

func requirementMet(req catalog.Requirement, character *dnd5e.Character) bool {
	switch req.Type {
	case catalog.RequirementCastingStyle:
		return string(character.CastingStyle) == req.Value
	case catalog.RequirementInnateHeritage:
		return character.InnateHeritage != "" && character.InnateHeritage == req.Value
	case catalog.RequirementLevel:
		level, err := strconv.Atoi(strings.TrimSpace(req.Value))
		if err != nil {
			return false
		}
		return character.Level >= level
	case catalog.RequirementFeat:
		return character.HasFeat(req.Value)
	case catalog.RequirementSubclass:
		return character.Subclass != "" && character.Subclass == req.Value
	case catalog.RequirementAbilityScore:
		ability := dnd5e.Ability(strings.ToLower(req.Value))
		if !ability.IsValid() {
			return false
		}
		return character.AbilityScore(ability) >= req.Amount
	default:
		return false
	}
}

func (e *engine) IsFeatEligible(featName string, character *dnd5e.Character) bool {
	feat, ok := e.catalog.Feat(featName)
	if !ok {
		return false
	}
	return IsEligible(feat.Prerequisites, character)
}

func (e *engine) IsHeritageEligible(heritageName string, character *dnd5e.Character) bool {
	heritage, ok := e.catalog.Heritage(heritageName)
	if !ok {
		return false
	}
	return IsEligible(heritage.Prerequisites, character)
}

// AvailableFeats lists eligible feats the character can still take, sorted by
// name. Repeatable feats stay available after being taken.
func (e *engine) AvailableFeats(character *dnd5e.Character) []*catalog.Feat {
	if character == nil {
		return nil
	}
	var out []*catalog.Feat
	for _, feat := range e.catalog.Feats() {
		if character.HasFeat(feat.Name) && !feat.Repeatable {
			continue
		}
		if !IsEligible(feat.Prerequisites, character) {
			continue
		}
		out = append(out, feat)
	}
	return out
}

// AvailableHeritages lists the heritages the character is eligible for
func (e *engine) AvailableHeritages(character *dnd5e.Character) []*catalog.Heritage {
	var out []*catalog.Heritage
	for _, heritage := range e.catalog.Heritages() {
		if IsEligible(heritage.Prerequisites, character) {
			out = append(out, heritage)
		}
	}
	return out
}
