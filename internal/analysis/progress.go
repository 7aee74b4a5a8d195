package analysis

import (
	"math"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// Progress computes the interview completion percentage from the answer
// history: a base score from the answered count scaled by performance,
// speed, difficulty, and confidence factors. The result is capped at 99
// unless a forced-completion rule fires.
func Progress(records []Record) int {
	if len(records) == 0 {
		return 0
	}

	base := float64(min(len(records)*10, 70))
	final := base *
		performanceFactor(records) *
		speedFactor(records) *
		difficultyFactor(records) *
		confidenceFactor(records)

	progress := int(math.Round(math.Min(99.0, final)))

	// Force 100% completion for long or clearly finished interviews
	if len(records) >= 25 || (len(records) >= 10 && final >= 95) {
		progress = 100
	}

	return progress
}

// performanceFactor maps difficulty-weighted accuracy through five bands,
// piecewise-linear within bands and flat at the extremes.
func performanceFactor(records []Record) float64 {
	if len(records) < 3 {
		return 1.0
	}

	var totalWeight, weightedCorrect float64
	for _, r := range records {
		weight := r.Difficulty.Weight()
		totalWeight += weight
		if r.Correct() {
			weightedCorrect += weight
		}
	}
	accuracy := weightedCorrect / totalWeight

	switch {
	case accuracy >= 0.9:
		return 1.5
	case accuracy >= 0.8:
		return 1.2 + (accuracy-0.8)*3
	case accuracy >= 0.6:
		return 1.0 + (accuracy-0.6)*1
	case accuracy >= 0.4:
		return 0.8 + (accuracy-0.4)*1
	default:
		return 0.5 + accuracy*0.75
	}
}

// speedFactor rewards quick answering, with a fast-accuracy check so that
// fast-and-sloppy is penalized while fast-and-accurate is boosted.
func speedFactor(records []Record) float64 {
	avgSeconds := averagePositiveSeconds(records)
	if avgSeconds == 0 {
		return 1.0
	}

	fastTotal, fastCorrect := 0, 0
	for _, r := range records {
		if r.AnswerTimeMillis > 0 && r.AnswerTimeMillis < 20000 {
			fastTotal++
			if r.Correct() {
				fastCorrect++
			}
		}
	}
	fastAccuracy := 0.5
	if fastTotal > 0 {
		fastAccuracy = float64(fastCorrect) / float64(fastTotal)
	}

	switch {
	case avgSeconds < 15:
		if fastAccuracy > 0.7 {
			return 1.3
		}
		return 0.8
	case avgSeconds < 30:
		return 1.1
	case avgSeconds < 60:
		return 1.0
	case avgSeconds < 120:
		return 0.95
	default:
		return 0.8
	}
}

// difficultyFactor rewards success on the hardest bucket attempted
func difficultyFactor(records []Record) float64 {
	buckets := groupByDifficulty(records)

	hard, hasHard := buckets[model.DifficultyHard]
	medium, hasMedium := buckets[model.DifficultyMedium]
	easy, hasEasy := buckets[model.DifficultyEasy]

	switch {
	case hasHard && bucketAccuracy(hard) > 0.6:
		return 1.4
	case hasMedium && bucketAccuracy(medium) > 0.7:
		return 1.2
	case hasEasy && bucketAccuracy(easy) > 0.8:
		return 1.0
	default:
		return 0.9
	}
}

// confidenceFactor scores the recent trend: the last three answers compared
// against the three before them when available, otherwise the last three
// alone.
func confidenceFactor(records []Record) float64 {
	if len(records) < 3 {
		return 1.0
	}

	recent := records[len(records)-3:]
	recentCorrect := 0
	for _, r := range recent {
		if r.Correct() {
			recentCorrect++
		}
	}

	if len(records) >= 6 {
		earlier := records[len(records)-6 : len(records)-3]
		earlierCorrect := 0
		for _, r := range earlier {
			if r.Correct() {
				earlierCorrect++
			}
		}

		recentAccuracy := float64(recentCorrect) / 3.0
		earlierAccuracy := float64(earlierCorrect) / 3.0

		if recentAccuracy > earlierAccuracy+0.2 {
			return 1.2
		}
		if recentAccuracy < earlierAccuracy-0.2 {
			return 0.7
		}
	}

	switch recentCorrect {
	case 3:
		return 1.15
	case 2:
		return 1.0
	case 1:
		return 0.9
	default:
		return 0.8
	}
}
