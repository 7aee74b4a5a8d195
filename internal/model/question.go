package model

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidOption is returned when a submitted answer is not one of A-D
	ErrInvalidOption = errors.New("answer must be A, B, C, or D")

	// ErrAlreadyAnswered is returned on an attempt to re-answer a question
	ErrAlreadyAnswered = errors.New("question has already been answered")
)

// Question is a generated multiple-choice question within an interview
type Question struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	InterviewID     string     `json:"interviewId" bson:"interviewId"`
	Text            string     `json:"text" bson:"text"`
	Difficulty      Difficulty `json:"difficulty" bson:"difficulty"`
	OptionA         string     `json:"optionA" bson:"optionA"`
	OptionB         string     `json:"optionB" bson:"optionB"`
	OptionC         string     `json:"optionC" bson:"optionC"`
	OptionD         string     `json:"optionD" bson:"optionD"`
	CorrectOption   string     `json:"correctOption" bson:"correctOption"`
	Explanation     string     `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Order           int        `json:"order" bson:"order"`
	SubmittedOption string     `json:"submittedOption,omitempty" bson:"submittedOption,omitempty"`
	AnsweredAt      *time.Time `json:"answeredAt,omitempty" bson:"answeredAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NormalizeOption validates an option letter (case-insensitive) and returns
// its canonical upper-case form.
func NormalizeOption(letter string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(letter))
	switch upper {
	case "A", "B", "C", "D":
		return upper, nil
	}
	return "", ErrInvalidOption
}

// Submit records the candidate's answer and the submission time.
// A question is answered at most once; the submitted option and answer
// timestamp are immutable afterwards.
func (q *Question) Submit(letter string, now time.Time) error {
	normalized, err := NormalizeOption(letter)
	if err != nil {
		return err
	}
	if q.IsAnswered() {
		return ErrAlreadyAnswered
	}
	q.SubmittedOption = normalized
	q.AnsweredAt = &now
	return nil
}

// IsAnswered reports whether the question has been answered.
// Both the submitted option and the answered timestamp must be present.
func (q *Question) IsAnswered() bool {
	return q.SubmittedOption != "" && q.AnsweredAt != nil
}

// IsCorrect reports whether the submitted answer matches the correct option.
// Only meaningful for answered questions; the second return is false otherwise.
func (q *Question) IsCorrect() (bool, bool) {
	if !q.IsAnswered() {
		return false, false
	}
	return strings.EqualFold(q.CorrectOption, q.SubmittedOption), true
}

// AnswerTimeMillis returns the latency between question creation and answer
// submission in milliseconds, or false if the question is unanswered.
func (q *Question) AnswerTimeMillis() (int64, bool) {
	if !q.IsAnswered() {
		return 0, false
	}
	return q.AnsweredAt.Sub(q.CreatedAt).Milliseconds(), true
}

// Option returns the text of the given option letter
func (q *Question) Option(letter string) string {
	switch strings.ToUpper(letter) {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}
