// Package dnd5e holds the character entities shared by the engine, the stores
// and the handlers
package dnd5e

// Character is the character snapshot every rule calculation reads.
// NOTE: This is a data-only struct. Derived values (benefits, hit point math)
// are computed by the engine, not stored here.
type Character struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name"`

	Level        int          `json:"level"`
	CastingStyle CastingStyle `json:"casting_style"`
	Subclass     string       `json:"subclass,omitempty"`

	// AbilityScores is canonical; the flattened fields below mirror it for
	// older readers and are rewritten by SyncAbilityMirrors.
	AbilityScores map[Ability]int `json:"ability_scores"`
	Strength      int             `json:"strength"`
	Dexterity     int             `json:"dexterity"`
	Constitution  int             `json:"constitution"`
	Intelligence  int             `json:"intelligence"`
	Wisdom        int             `json:"wisdom"`
	Charisma      int             `json:"charisma"`

	StandardFeats    []string                     `json:"standard_feats"`
	InnateHeritage   string                       `json:"innate_heritage,omitempty"`
	Level1ChoiceType Level1ChoiceType             `json:"level1_choice_type,omitempty"`
	FeatChoices      map[string]string            `json:"feat_choices"`
	HeritageChoices  map[string]map[string]string `json:"heritage_choices"`
	ASIChoices       map[int]*ASIChoice           `json:"asi_choices"`

	SkillProficiencies []string `json:"skill_proficiencies"`
	SkillExpertise     []string `json:"skill_expertise"`

	HitPoints        int `json:"hit_points"`
	CurrentHitPoints int `json:"current_hit_points"`

	// Revision counts stored writes; the stores bump it on every update
	Revision  int64 `json:"revision"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ASIChoice records what was taken at an ASI level
type ASIChoice struct {
	Type                  string            `json:"type"`
	AbilityScoreIncreases []AbilityIncrease `json:"ability_score_increases,omitempty"`
	SelectedFeat          string            `json:"selected_feat,omitempty"`
	FeatChoices           map[string]string `json:"feat_choices,omitempty"`
}

// AbilityIncrease is one recorded ASI point assignment
type AbilityIncrease struct {
	Ability  Ability `json:"ability"`
	Increase int     `json:"increase"`
}

// AbilityScore returns the canonical score for a, falling back to the mirror
// field when the map is missing the entry
func (c *Character) AbilityScore(a Ability) int {
	if score, ok := c.AbilityScores[a]; ok {
		return score
	}
	switch a {
	case AbilityStrength:
		return c.Strength
	case AbilityDexterity:
		return c.Dexterity
	case AbilityConstitution:
		return c.Constitution
	case AbilityIntelligence:
		return c.Intelligence
	case AbilityWisdom:
		return c.Wisdom
	case AbilityCharisma:
		return c.Charisma
	default:
		return 0
	}
}

// SetAbilityScore writes the canonical score and its mirror
func (c *Character) SetAbilityScore(a Ability, score int) {
	if c.AbilityScores == nil {
		c.AbilityScores = make(map[Ability]int, len(Abilities))
	}
	c.AbilityScores[a] = score
	c.SyncAbilityMirrors()
}

// SyncAbilityMirrors rewrites all six flattened fields from the canonical map.
// Abilities absent from the map are filled in from their mirror first.
func (c *Character) SyncAbilityMirrors() {
	if c.AbilityScores == nil {
		c.AbilityScores = make(map[Ability]int, len(Abilities))
	}
	for _, a := range Abilities {
		if _, ok := c.AbilityScores[a]; !ok {
			c.AbilityScores[a] = c.AbilityScore(a)
		}
	}
	c.Strength = c.AbilityScores[AbilityStrength]
	c.Dexterity = c.AbilityScores[AbilityDexterity]
	c.Constitution = c.AbilityScores[AbilityConstitution]
	c.Intelligence = c.AbilityScores[AbilityIntelligence]
	c.Wisdom = c.AbilityScores[AbilityWisdom]
	c.Charisma = c.AbilityScores[AbilityCharisma]
}

// MirrorsConsistent reports whether every flattened field matches the map
func (c *Character) MirrorsConsistent() bool {
	mirrors := map[Ability]int{
		AbilityStrength:     c.Strength,
		AbilityDexterity:    c.Dexterity,
		AbilityConstitution: c.Constitution,
		AbilityIntelligence: c.Intelligence,
		AbilityWisdom:       c.Wisdom,
		AbilityCharisma:     c.Charisma,
	}
	for a, v := range mirrors {
		if score, ok := c.AbilityScores[a]; !ok || score != v {
			return false
		}
	}
	return true
}

// HasFeat reports whether the feat is among the standard feats
func (c *Character) HasFeat(name string) bool {
	return c.FeatCount(name) > 0
}

// FeatCount returns how many times the feat was taken
func (c *Character) FeatCount(name string) int {
	n := 0
	for _, f := range c.StandardFeats {
		if f == name {
			n++
		}
	}
	return n
}

// HasSkillProficiency reports whether the character is proficient in skill
func (c *Character) HasSkillProficiency(skill string) bool {
	return containsString(c.SkillProficiencies, skill)
}

// HasSkillExpertise reports whether the character has expertise in skill
func (c *Character) HasSkillExpertise(skill string) bool {
	return containsString(c.SkillExpertise, skill)
}

// AddSkillProficiency appends skill unless already present
func (c *Character) AddSkillProficiency(skill string) {
	if skill == "" || c.HasSkillProficiency(skill) {
		return
	}
	c.SkillProficiencies = append(c.SkillProficiencies, skill)
}

// AddSkillExpertise appends skill to expertise and, since expertise implies
// proficiency, to proficiencies as well
func (c *Character) AddSkillExpertise(skill string) {
	if skill == "" {
		return
	}
	c.AddSkillProficiency(skill)
	if !c.HasSkillExpertise(skill) {
		c.SkillExpertise = append(c.SkillExpertise, skill)
	}
}

// RemoveSkill drops skill from both proficiencies and expertise
func (c *Character) RemoveSkill(skill string) {
	c.SkillProficiencies = removeString(c.SkillProficiencies, skill)
	c.SkillExpertise = removeString(c.SkillExpertise, skill)
}

// Clone returns a deep copy so callers can build a new snapshot without
// touching the one they were given
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c

	if c.AbilityScores != nil {
		out.AbilityScores = make(map[Ability]int, len(c.AbilityScores))
		for k, v := range c.AbilityScores {
			out.AbilityScores[k] = v
		}
	}
	out.StandardFeats = cloneStrings(c.StandardFeats)
	out.SkillProficiencies = cloneStrings(c.SkillProficiencies)
	out.SkillExpertise = cloneStrings(c.SkillExpertise)
	out.FeatChoices = cloneStringMap(c.FeatChoices)

	if c.HeritageChoices != nil {
		out.HeritageChoices = make(map[string]map[string]string, len(c.HeritageChoices))
		for k, v := range c.HeritageChoices {
			out.HeritageChoices[k] = cloneStringMap(v)
		}
	}
	if c.ASIChoices != nil {
		out.ASIChoices = make(map[int]*ASIChoice, len(c.ASIChoices))
		for lvl, choice := range c.ASIChoices {
			out.ASIChoices[lvl] = choice.Clone()
		}
	}

	return &out
}

// Clone returns a deep copy of the ASI choice
func (a *ASIChoice) Clone() *ASIChoice {
	if a == nil {
		return nil
	}
	out := *a
	if a.AbilityScoreIncreases != nil {
		out.AbilityScoreIncreases = make([]AbilityIncrease, len(a.AbilityScoreIncreases))
		copy(out.AbilityScoreIncreases, a.AbilityScoreIncreases)
	}
	out.FeatChoices = cloneStringMap(a.FeatChoices)
	return &out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	if list == nil {
		return nil
	}
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
