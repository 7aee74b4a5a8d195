package model

import (
	"testing"
	"time"
)

func TestApplyStatusTransitions(t *testing.T) {
	tests := []struct {
		name        string
		from        InterviewStatus
		target      InterviewStatus
		wantApplied bool
	}{
		{"start scheduled", StatusScheduled, StatusInProgress, true},
		{"restart cancelled", StatusCancelled, StatusInProgress, true},
		{"complete in progress", StatusInProgress, StatusCompleted, true},
		{"cancel scheduled", StatusScheduled, StatusCancelled, true},
		{"cancel in progress", StatusInProgress, StatusCancelled, true},
		{"reschedule cancelled", StatusCancelled, StatusScheduled, true},

		{"complete scheduled", StatusScheduled, StatusCompleted, false},
		{"complete cancelled", StatusCancelled, StatusCompleted, false},
		{"start completed", StatusCompleted, StatusInProgress, false},
		{"cancel completed", StatusCompleted, StatusCancelled, false},
		{"reschedule scheduled", StatusScheduled, StatusScheduled, false},
		{"reschedule in progress", StatusInProgress, StatusScheduled, false},
		{"restart in progress", StatusInProgress, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interview := &Interview{Status: tt.from}
			result := interview.ApplyStatus(tt.target, time.Now())

			if result.Applied != tt.wantApplied {
				t.Errorf("applied = %v, want %v (reason: %s)", result.Applied, tt.wantApplied, result.Reason)
			}
			if tt.wantApplied {
				if interview.Status != tt.target {
					t.Errorf("status = %s, want %s", interview.Status, tt.target)
				}
				if result.Reason != "" {
					t.Errorf("applied transition should not carry a reason, got %q", result.Reason)
				}
			} else {
				if interview.Status != tt.from {
					t.Errorf("ignored transition mutated status to %s", interview.Status)
				}
				if result.Reason == "" {
					t.Error("ignored transition should carry a reason")
				}
			}
			if result.Status != interview.Status {
				t.Errorf("result status %s does not match interview status %s", result.Status, interview.Status)
			}
		})
	}
}

func TestApplyStatusUnknownTarget(t *testing.T) {
	interview := &Interview{Status: StatusScheduled}
	result := interview.ApplyStatus(InterviewStatus("PAUSED"), time.Now())
	if result.Applied {
		t.Error("unknown status should be ignored")
	}
	if interview.Status != StatusScheduled {
		t.Errorf("status mutated to %s", interview.Status)
	}
}

func TestApplyStatusStampsTimes(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(18 * time.Minute)

	interview := &Interview{Status: StatusScheduled}

	interview.ApplyStatus(StatusInProgress, start)
	if interview.StartTime == nil || !interview.StartTime.Equal(start) {
		t.Fatalf("start time = %v, want %v", interview.StartTime, start)
	}
	if interview.EndTime != nil {
		t.Fatal("end time should not be set on start")
	}

	interview.ApplyStatus(StatusCompleted, end)
	if interview.EndTime == nil || !interview.EndTime.Equal(end) {
		t.Fatalf("end time = %v, want %v", interview.EndTime, end)
	}

	seconds, ok := interview.DurationSeconds()
	if !ok || seconds != 18*60 {
		t.Errorf("duration = %d (ok=%v), want %d", seconds, ok, 18*60)
	}
}

func TestDurationSecondsUndefined(t *testing.T) {
	interview := &Interview{Status: StatusInProgress}
	now := time.Now()
	interview.StartTime = &now

	if _, ok := interview.DurationSeconds(); ok {
		t.Error("duration should be undefined without an end time")
	}
}

func TestDifficultyWeight(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       float64
	}{
		{DifficultyEasy, 1.0},
		{DifficultyMedium, 1.5},
		{DifficultyHard, 2.0},
	}
	for _, tt := range tests {
		if got := tt.difficulty.Weight(); got != tt.want {
			t.Errorf("%s weight = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}
