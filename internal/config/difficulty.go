package config

import "strings"

// DifficultyPreset represents a named difficulty level.
// Harder presets spawn more fours, which fill the board faster.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// SpawnFourForPreset returns the probability of spawning a 4.
// Unknown presets get the normal rate.
func SpawnFourForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.10
	}
}

// ParsePreset parses a preset name case-insensitively.
// An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}
