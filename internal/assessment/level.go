package assessment

import "fmt"

// Difficulty is the ordinal question difficulty, 1 (easy) to 3 (hard).
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is within [1,3].
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// String returns Easy, Medium or Hard.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Harder steps one level up, clamped at hard.
func (d Difficulty) Harder() Difficulty {
	if d >= DifficultyHard {
		return DifficultyHard
	}
	return d + 1
}

// Easier steps one level down, clamped at easy.
func (d Difficulty) Easier() Difficulty {
	if d <= DifficultyEasy {
		return DifficultyEasy
	}
	return d - 1
}

// LevelLabel is the qualitative label stored with a result.
type LevelLabel string

const (
	LevelFoundation   LevelLabel = "FOUNDATION"
	LevelIntermediate LevelLabel = "INTERMEDIATE"
	LevelAdvanced     LevelLabel = "ADVANCED"
)

// LevelInfo describes what a highest-reached difficulty means for the student.
type LevelInfo struct {
	Value       LevelLabel `json:"value"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

var levels = map[Difficulty]LevelInfo{
	DifficultyEasy: {
		Value:       LevelFoundation,
		Label:       "Foundation",
		Description: "Good start. Focus on basics and coding consistency.",
	},
	DifficultyMedium: {
		Value:       LevelIntermediate,
		Label:       "Intermediate",
		Description: "You can solve practical problems with confidence.",
	},
	DifficultyHard: {
		Value:       LevelAdvanced,
		Label:       "Advanced",
		Description: "Strong command of concepts and deeper problem solving.",
	},
}

// LevelFor maps a difficulty to its level. Out-of-range values map to the
// foundation level.
func LevelFor(d Difficulty) LevelInfo {
	if info, ok := levels[d]; ok {
		return info
	}
	return levels[DifficultyEasy]
}
