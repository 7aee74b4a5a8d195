package analysis

import (
	"fmt"
	"strings"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// NoHistoryGuidance is returned when an interview has no answered questions yet
const NoHistoryGuidance = "No previously asked questions in this interview. Start with baseline difficulty questions."

// Timing holds the pace classification over an answer history
type Timing struct {
	AverageSeconds float64
	Pace           string
	Rushed         bool
	Deliberating   bool
}

// Summary holds the aggregate accuracy and timing statistics for one interview
type Summary struct {
	Answered        int
	CorrectCount    int
	AccuracyPercent float64
	Timing          Timing
}

var difficultyOrder = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

// Summarize computes aggregate accuracy and timing statistics
func Summarize(records []Record) Summary {
	correct := 0
	for _, r := range records {
		if r.Correct() {
			correct++
		}
	}
	s := Summary{
		Answered:     len(records),
		CorrectCount: correct,
		Timing:       analyzeTiming(records),
	}
	if len(records) > 0 {
		s.AccuracyPercent = float64(correct) / float64(len(records)) * 100
	}
	return s
}

// GuidanceText builds the contextual instruction block the question generator
// consumes verbatim: aggregate performance, pace classification, a difficulty
// guidance sentence, pattern breakdowns, and the full per-question history.
func GuidanceText(records []Record) string {
	if len(records) == 0 {
		return NoHistoryGuidance
	}

	summary := Summarize(records)
	timing := summary.Timing

	var b strings.Builder

	b.WriteString(fmt.Sprintf(
		"INTERVIEW PERFORMANCE: %d questions answered, %.1f%% accuracy (%d correct, %d incorrect). ",
		summary.Answered, summary.AccuracyPercent, summary.CorrectCount, summary.Answered-summary.CorrectCount))

	b.WriteString(fmt.Sprintf(
		"TIMING: Average %.1fs per question, %s pace. ",
		timing.AverageSeconds, timing.Pace))

	b.WriteString(difficultyGuidance(summary.AccuracyPercent, timing))

	if len(records) >= 3 {
		b.WriteString("\n\nDIFFICULTY PATTERNS: ")
		writeDifficultyPatterns(&b, records)
	}

	if len(records) >= 3 {
		writePerformanceTrend(&b, records)
	}

	if len(records) >= 4 {
		b.WriteString("\n\nANSWER PATTERNS: ")
		writeAnswerPatterns(&b, records)
	}

	if len(records) >= 3 {
		b.WriteString("\n\nTIMING PATTERNS: ")
		writeTimingPatterns(&b, records, timing)
	}

	b.WriteString("\n\nQUESTION HISTORY:\n")
	for i, r := range records {
		status := "INCORRECT"
		if r.Correct() {
			status = "CORRECT"
		}
		b.WriteString(fmt.Sprintf("%d. Q: %s", i+1, r.QuestionText))
		b.WriteString(fmt.Sprintf(" | Answer: %s | Correct: %s | Result: %s | Time: %s | Difficulty: %s",
			r.SubmittedOption, r.CorrectOption, status, formatAnswerTime(r.AnswerTimeMillis), r.Difficulty))
		if i < len(records)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func analyzeTiming(records []Record) Timing {
	var total float64
	count := 0
	for _, r := range records {
		if r.AnswerTimeMillis > 0 {
			total += float64(r.AnswerTimeMillis)
			count++
		}
	}
	if count == 0 {
		return Timing{AverageSeconds: 0, Pace: "unknown"}
	}

	avgSeconds := total / float64(count) / 1000.0
	t := Timing{
		AverageSeconds: avgSeconds,
		Rushed:         avgSeconds < 10,
		Deliberating:   avgSeconds >= 120,
	}

	switch {
	case t.Rushed:
		t.Pace = "very fast (possibly guessing)"
	case t.Deliberating:
		t.Pace = "very slow (thorough consideration)"
	case avgSeconds < 30:
		t.Pace = "fast (confident)"
	case avgSeconds < 60:
		t.Pace = "moderate (normal thinking)"
	default:
		t.Pace = "slow (careful analysis)"
	}
	return t
}

func difficultyGuidance(accuracyPercent float64, timing Timing) string {
	var b strings.Builder
	b.WriteString("GUIDANCE: ")

	switch {
	case accuracyPercent >= 80:
		if timing.Rushed {
			b.WriteString("Excellent accuracy with fast responses - candidate very confident, increase complexity significantly. ")
		} else if timing.Deliberating {
			b.WriteString("Excellent accuracy but slow responses - candidate careful, moderate difficulty increase. ")
		} else {
			b.WriteString("Excellent performance with good timing - increase difficulty and complexity. ")
		}
	case accuracyPercent >= 60:
		if timing.Rushed {
			b.WriteString("Good accuracy but rushing - may benefit from slightly harder questions to slow down thinking. ")
		} else {
			b.WriteString("Good performance - maintain current difficulty with slight increases. ")
		}
	case accuracyPercent >= 40:
		if timing.Deliberating {
			b.WriteString("Struggling despite careful consideration - use easier questions with clear explanations. ")
		} else {
			b.WriteString("Moderate performance - focus on core concepts, avoid advanced topics. ")
		}
	default:
		if timing.Rushed {
			b.WriteString("Poor accuracy with fast responses - candidate likely guessing, use very basic questions. ")
		} else {
			b.WriteString("Poor performance - use fundamental questions with detailed explanations. ")
		}
	}

	return b.String()
}

func writeDifficultyPatterns(b *strings.Builder, records []Record) {
	buckets := groupByDifficulty(records)

	var bestDifficulty model.Difficulty
	bestAccuracy := -1.0
	for _, d := range difficultyOrder {
		group := buckets[d]
		if len(group) == 0 {
			continue
		}

		accuracy := bucketAccuracy(group)
		avgSeconds := averagePositiveSeconds(group)
		b.WriteString(fmt.Sprintf("%s: %.0f%% accuracy (%.1fs avg) ", d, accuracy*100, avgSeconds))

		if accuracy > bestAccuracy {
			bestAccuracy = accuracy
			bestDifficulty = d
		}
	}

	b.WriteString(fmt.Sprintf("- Best performance on %s questions. ", bestDifficulty))
}

func writePerformanceTrend(b *strings.Builder, records []Record) {
	recent := records[len(records)-3:]

	recentCorrect := 0
	for _, r := range recent {
		if r.Correct() {
			recentCorrect++
		}
	}
	recentAvgSeconds := averagePositiveSeconds(recent)

	switch recentCorrect {
	case 3:
		b.WriteString("TREND: Last 3 answers all correct")
		if recentAvgSeconds < 20 {
			b.WriteString(" with fast responses - candidate very confident, ready for harder questions. ")
		} else {
			b.WriteString(" - candidate improving, ready for moderate difficulty increase. ")
		}
	case 0:
		b.WriteString("TREND: Last 3 answers all wrong")
		if recentAvgSeconds > 60 {
			b.WriteString(" despite slow consideration - reduce difficulty significantly. ")
		} else {
			b.WriteString(" - candidate struggling, reduce difficulty. ")
		}
	default:
		b.WriteString(fmt.Sprintf("TREND: Mixed recent performance (%d/3 correct) with %.1fs average time - maintain current difficulty level. ",
			recentCorrect, recentAvgSeconds))
	}
}

func writeAnswerPatterns(b *strings.Builder, records []Record) {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.SubmittedOption]++
	}

	commonOption := ""
	commonCount := 0
	for _, letter := range []string{"A", "B", "C", "D"} {
		if counts[letter] > commonCount {
			commonOption = letter
			commonCount = counts[letter]
		}
	}

	percentage := float64(commonCount) / float64(len(records)) * 100
	if percentage > 50 {
		b.WriteString(fmt.Sprintf("Candidate favors option %s (%.0f%% of answers) - avoid making this the correct answer too often. ",
			commonOption, percentage))
	} else {
		b.WriteString("Balanced answer distribution - good variety in question design. ")
	}
}

func writeTimingPatterns(b *strings.Builder, records []Record, overall Timing) {
	var correct, incorrect []Record
	for _, r := range records {
		if r.Correct() {
			correct = append(correct, r)
		} else {
			incorrect = append(incorrect, r)
		}
	}

	if len(correct) > 0 && len(incorrect) > 0 {
		avgCorrect := averagePositiveSeconds(correct)
		avgIncorrect := averagePositiveSeconds(incorrect)

		if avgCorrect > 0 && avgIncorrect > 0 {
			switch {
			case avgCorrect < avgIncorrect*0.7:
				b.WriteString(fmt.Sprintf("Correct answers are significantly faster (%.1fs vs %.1fs) - candidate confident when they know the answer. ",
					avgCorrect, avgIncorrect))
			case avgIncorrect < avgCorrect*0.7:
				b.WriteString(fmt.Sprintf("Incorrect answers are faster (%.1fs vs %.1fs) - candidate may be guessing when uncertain. ",
					avgIncorrect, avgCorrect))
			default:
				b.WriteString("Similar timing for correct and incorrect answers - consistent thinking process. ")
			}
		}
	}

	if overall.Rushed {
		b.WriteString("Overall very fast responses suggest confidence or impulsiveness. ")
	} else if overall.Deliberating {
		b.WriteString("Overall slow responses indicate careful consideration or uncertainty. ")
	}
}

func formatAnswerTime(millis int64) string {
	if millis <= 0 {
		return "unknown"
	}
	seconds := float64(millis) / 1000.0
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds) / 60
	remaining := int(seconds) % 60
	return fmt.Sprintf("%dm %ds", minutes, remaining)
}

func groupByDifficulty(records []Record) map[model.Difficulty][]Record {
	buckets := make(map[model.Difficulty][]Record)
	for _, r := range records {
		buckets[r.Difficulty] = append(buckets[r.Difficulty], r)
	}
	return buckets
}

func bucketAccuracy(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	correct := 0
	for _, r := range records {
		if r.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(records))
}

func averagePositiveSeconds(records []Record) float64 {
	var total float64
	count := 0
	for _, r := range records {
		if r.AnswerTimeMillis > 0 {
			total += float64(r.AnswerTimeMillis)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count) / 1000.0
}
