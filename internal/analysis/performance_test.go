package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

func TestGuidanceTextNoHistory(t *testing.T) {
	got := GuidanceText(nil)
	if got != NoHistoryGuidance {
		t.Errorf("GuidanceText(nil) = %q, want %q", got, NoHistoryGuidance)
	}
}

func TestGuidanceTextSingleFastIncorrect(t *testing.T) {
	records := []Record{{
		QuestionText:     "What does a mutex protect?",
		SubmittedOption:  "B",
		CorrectOption:    "A",
		Difficulty:       model.DifficultyEasy,
		AnswerTimeMillis: 5_000,
	}}

	got := GuidanceText(records)

	for _, want := range []string{
		"INTERVIEW PERFORMANCE: 1 questions answered, 0.0% accuracy (0 correct, 1 incorrect). ",
		"TIMING: Average 5.0s per question, very fast (possibly guessing) pace. ",
		"Poor accuracy with fast responses - candidate likely guessing, use very basic questions. ",
		"1. Q: What does a mutex protect? | Answer: B | Correct: A | Result: INCORRECT | Time: 5.0s | Difficulty: EASY",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("guidance missing %q\ngot:\n%s", want, got)
		}
	}

	// Pattern sections need more history
	for _, absent := range []string{"DIFFICULTY PATTERNS", "TREND", "ANSWER PATTERNS", "TIMING PATTERNS"} {
		if strings.Contains(got, absent) {
			t.Errorf("guidance for one answer should not contain %q", absent)
		}
	}
}

func TestGuidanceTextSectionOrder(t *testing.T) {
	records := []Record{
		record(model.DifficultyEasy, true, 12_000),
		record(model.DifficultyMedium, true, 18_000),
		record(model.DifficultyMedium, false, 25_000),
		record(model.DifficultyHard, true, 30_000),
	}

	got := GuidanceText(records)

	sections := []string{
		"INTERVIEW PERFORMANCE:",
		"TIMING:",
		"GUIDANCE:",
		"DIFFICULTY PATTERNS:",
		"TREND:",
		"ANSWER PATTERNS:",
		"TIMING PATTERNS:",
		"QUESTION HISTORY:",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(got, section)
		if idx < 0 {
			t.Fatalf("guidance missing section %q\ngot:\n%s", section, got)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}
}

func TestGuidanceTextAnswerBias(t *testing.T) {
	records := []Record{
		{QuestionText: "q1", SubmittedOption: "A", CorrectOption: "A", Difficulty: model.DifficultyMedium, AnswerTimeMillis: 20_000},
		{QuestionText: "q2", SubmittedOption: "A", CorrectOption: "B", Difficulty: model.DifficultyMedium, AnswerTimeMillis: 20_000},
		{QuestionText: "q3", SubmittedOption: "A", CorrectOption: "C", Difficulty: model.DifficultyMedium, AnswerTimeMillis: 20_000},
		{QuestionText: "q4", SubmittedOption: "B", CorrectOption: "B", Difficulty: model.DifficultyMedium, AnswerTimeMillis: 20_000},
	}

	got := GuidanceText(records)
	want := "Candidate favors option A (75% of answers) - avoid making this the correct answer too often. "
	if !strings.Contains(got, want) {
		t.Errorf("guidance missing %q\ngot:\n%s", want, got)
	}
}

func TestGuidanceTextTrendAllCorrectFast(t *testing.T) {
	records := repeat(record(model.DifficultyMedium, true, 15_000), 3)

	got := GuidanceText(records)
	want := "TREND: Last 3 answers all correct with fast responses - candidate very confident, ready for harder questions. "
	if !strings.Contains(got, want) {
		t.Errorf("guidance missing %q\ngot:\n%s", want, got)
	}
}

func TestGuidanceTextTimingComparison(t *testing.T) {
	// Correct answers well under 70% of the incorrect average
	records := []Record{
		record(model.DifficultyMedium, true, 10_000),
		record(model.DifficultyMedium, true, 10_000),
		record(model.DifficultyMedium, false, 60_000),
		record(model.DifficultyMedium, false, 60_000),
	}

	got := GuidanceText(records)
	want := "Correct answers are significantly faster (10.0s vs 60.0s) - candidate confident when they know the answer. "
	if !strings.Contains(got, want) {
		t.Errorf("guidance missing %q\ngot:\n%s", want, got)
	}
}

func TestSummarizeTiming(t *testing.T) {
	tests := []struct {
		name         string
		millis       []int64
		wantPace     string
		wantRushed   bool
		wantThorough bool
	}{
		{"no latencies", []int64{0, -1}, "unknown", false, false},
		{"rushed", []int64{4_000, 6_000}, "very fast (possibly guessing)", true, false},
		{"confident", []int64{15_000, 25_000}, "fast (confident)", false, false},
		{"moderate", []int64{35_000, 45_000}, "moderate (normal thinking)", false, false},
		{"careful", []int64{70_000, 90_000}, "slow (careful analysis)", false, false},
		{"boundary at two minutes", []int64{120_000, 120_000}, "very slow (thorough consideration)", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, len(tt.millis))
			for i, m := range tt.millis {
				records[i] = record(model.DifficultyMedium, true, m)
			}
			got := Summarize(records).Timing
			if got.Pace != tt.wantPace {
				t.Errorf("pace = %q, want %q", got.Pace, tt.wantPace)
			}
			if got.Rushed != tt.wantRushed {
				t.Errorf("rushed = %v, want %v", got.Rushed, tt.wantRushed)
			}
			if got.Deliberating != tt.wantThorough {
				t.Errorf("deliberating = %v, want %v", got.Deliberating, tt.wantThorough)
			}
		})
	}
}

func TestFormatAnswerTime(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{0, "unknown"},
		{-5, "unknown"},
		{5_500, "5.5s"},
		{59_900, "59.9s"},
		{90_000, "1m 30s"},
		{125_000, "2m 5s"},
	}
	for _, tt := range tests {
		if got := formatAnswerTime(tt.millis); got != tt.want {
			t.Errorf("formatAnswerTime(%d) = %q, want %q", tt.millis, got, tt.want)
		}
	}
}

func TestRecordsFromQuestionsProjection(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	answeredAt := now.Add(8 * time.Second)

	questions := []*model.Question{
		{Text: "second", Order: 2, CorrectOption: "A", SubmittedOption: "A", Difficulty: model.DifficultyEasy, CreatedAt: now, AnsweredAt: &answeredAt},
		{Text: "unanswered", Order: 3, CorrectOption: "B", Difficulty: model.DifficultyEasy, CreatedAt: now},
		{Text: "first", Order: 1, CorrectOption: "C", SubmittedOption: "D", Difficulty: model.DifficultyHard, CreatedAt: now, AnsweredAt: &answeredAt},
	}

	records := RecordsFromQuestions(questions)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (unanswered excluded)", len(records))
	}
	if records[0].QuestionText != "first" || records[1].QuestionText != "second" {
		t.Errorf("records not in question order: %q, %q", records[0].QuestionText, records[1].QuestionText)
	}
	if records[0].Correct() {
		t.Error("first record should be incorrect")
	}
	if records[1].AnswerTimeMillis != 8_000 {
		t.Errorf("latency = %d, want 8000", records[1].AnswerTimeMillis)
	}
}
