package model

import "time"

// Difficulty is the declared complexity of an interview or question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty validates a difficulty value
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), true
	}
	return "", false
}

// Weight returns the scoring weight used by weighted-accuracy calculations
func (d Difficulty) Weight() float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyHard:
		return 2.0
	default:
		return 1.5
	}
}

// InterviewStatus is the lifecycle state of an interview
type InterviewStatus string

const (
	StatusScheduled  InterviewStatus = "SCHEDULED"
	StatusInProgress InterviewStatus = "IN_PROGRESS"
	StatusCompleted  InterviewStatus = "COMPLETED"
	StatusCancelled  InterviewStatus = "CANCELLED"
)

// ParseInterviewStatus validates a status value
func ParseInterviewStatus(s string) (InterviewStatus, bool) {
	switch InterviewStatus(s) {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return InterviewStatus(s), true
	}
	return "", false
}

// Interview is an AI-assisted multiple-choice interview over a parsed document
type Interview struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	Name            string          `json:"name" bson:"name"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	Difficulty      Difficulty      `json:"difficulty" bson:"difficulty"`
	Status          InterviewStatus `json:"status" bson:"status"`
	ScheduledDate   *time.Time      `json:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"`
	StartTime       *time.Time      `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime         *time.Time      `json:"endTime,omitempty" bson:"endTime,omitempty"`
	DocumentID      string          `json:"documentId" bson:"documentId"`
	CreatedByID     string          `json:"createdById" bson:"createdById"`
	AssignedToID    string          `json:"assignedToId,omitempty" bson:"assignedToId,omitempty"`
	CandidateReview string          `json:"candidateReview,omitempty" bson:"candidateReview,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// TransitionResult reports whether a requested status change was applied.
// Guarded-off requests are ignored, not errors, so callers can observe the
// outcome instead of guessing from an unchanged status.
type TransitionResult struct {
	Applied bool            `json:"applied"`
	Status  InterviewStatus `json:"status"`
	Reason  string          `json:"reason,omitempty"`
}

// ApplyStatus runs the interview state machine transition table.
// SCHEDULED -> IN_PROGRESS -> COMPLETED, with CANCELLED reachable from
// SCHEDULED or IN_PROGRESS and SCHEDULED reachable again from CANCELLED.
// Start time is stamped only on entering IN_PROGRESS, end time only on
// entering COMPLETED.
func (i *Interview) ApplyStatus(target InterviewStatus, now time.Time) TransitionResult {
	ignored := func(reason string) TransitionResult {
		return TransitionResult{Applied: false, Status: i.Status, Reason: reason}
	}

	switch target {
	case StatusScheduled:
		if i.Status != StatusCancelled {
			return ignored("interview can only be rescheduled from CANCELLED")
		}
		i.Status = StatusScheduled
	case StatusInProgress:
		if i.Status != StatusScheduled && i.Status != StatusCancelled {
			return ignored("interview can only be started from SCHEDULED or CANCELLED")
		}
		i.Status = StatusInProgress
		i.StartTime = &now
	case StatusCompleted:
		if i.Status != StatusInProgress {
			return ignored("interview can only be completed from IN_PROGRESS")
		}
		i.Status = StatusCompleted
		i.EndTime = &now
	case StatusCancelled:
		if i.Status != StatusScheduled && i.Status != StatusInProgress {
			return ignored("interview can only be cancelled from SCHEDULED or IN_PROGRESS")
		}
		i.Status = StatusCancelled
	default:
		return ignored("unknown status " + string(target))
	}

	return TransitionResult{Applied: true, Status: i.Status}
}

// IsActive reports whether the interview is currently running
func (i *Interview) IsActive() bool {
	return i.Status == StatusInProgress
}

// IsCompleted reports whether the interview has finished
func (i *Interview) IsCompleted() bool {
	return i.Status == StatusCompleted
}

// DurationSeconds returns the interview duration in whole seconds.
// Defined only once both start and end timestamps are set.
func (i *Interview) DurationSeconds() (int64, bool) {
	if i.StartTime == nil || i.EndTime == nil {
		return 0, false
	}
	return int64(i.EndTime.Sub(*i.StartTime).Seconds()), true
}
