package dnd5e

// Ability names a core ability score
type Ability string

// Ability constants
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the six abilities in sheet order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsValid reports whether a is one of the six abilities
func (a Ability) IsValid() bool {
	for _, known := range Abilities {
		if a == known {
			return true
		}
	}
	return false
}

// String returns the ability name
func (a Ability) String() string {
	return string(a)
}

// Ability score bounds
const (
	AbilityScoreMin = 1
	AbilityScoreMax = 30

	// AbilityScoreAdvancementCap is the cap for ASIs and feat increases
	AbilityScoreAdvancementCap = 20
)

// Level bounds
const (
	MinLevel = 1
	MaxLevel = 20
)

// ASILevels are the levels that offer an ability score improvement or a feat
var ASILevels = []int{4, 8, 12, 16, 19}

// IsASILevel reports whether reaching level grants an ASI-or-feat choice
func IsASILevel(level int) bool {
	for _, l := range ASILevels {
		if l == level {
			return true
		}
	}
	return false
}

// Level1ChoiceType is the mutually exclusive first-level pick
type Level1ChoiceType string

// Level 1 choice constants
const (
	Level1ChoiceNone           Level1ChoiceType = ""
	Level1ChoiceFeat           Level1ChoiceType = "feat"
	Level1ChoiceInnateHeritage Level1ChoiceType = "innate_heritage"
)

// ASI choice types recorded per ASI level
const (
	ASIChoiceTypeASI  = "asi"
	ASIChoiceTypeFeat = "feat"
)

// Skill constants
const (
	SkillAcrobatics       = "Acrobatics"
	SkillAthletics        = "Athletics"
	SkillDeception        = "Deception"
	SkillHerbology        = "Herbology"
	SkillHistoryOfMagic   = "History of Magic"
	SkillInsight          = "Insight"
	SkillIntimidation     = "Intimidation"
	SkillInvestigation    = "Investigation"
	SkillMagicalCreatures = "Magical Creatures"
	SkillMagicalTheory    = "Magical Theory"
	SkillMedicine         = "Medicine"
	SkillMuggleStudies    = "Muggle Studies"
	SkillPerception       = "Perception"
	SkillPerformance      = "Performance"
	SkillPersuasion       = "Persuasion"
	SkillPotionMaking     = "Potion-Making"
	SkillSleightOfHand    = "Sleight of Hand"
	SkillStealth          = "Stealth"
	SkillSurvival         = "Survival"
)

// Skills lists every skill on the sheet
var Skills = []string{
	SkillAcrobatics,
	SkillAthletics,
	SkillDeception,
	SkillHerbology,
	SkillHistoryOfMagic,
	SkillInsight,
	SkillIntimidation,
	SkillInvestigation,
	SkillMagicalCreatures,
	SkillMagicalTheory,
	SkillMedicine,
	SkillMuggleStudies,
	SkillPerception,
	SkillPerformance,
	SkillPersuasion,
	SkillPotionMaking,
	SkillSleightOfHand,
	SkillStealth,
	SkillSurvival,
}
