package ranking

import "math"

// ClassifyLevel maps a performance percent to its badge. Lower bounds are inclusive.
func ClassifyLevel(percent float64) Level {
	switch {
	case percent >= 80:
		return LevelElite
	case percent >= 60:
		return LevelAdvanced
	case percent >= 40:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// Rate returns wins / played * 100 rounded to one decimal.
func Rate(wins, played int) float64 {
	if played <= 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(played)*1000) / 10
}
