// Package analysis turns an interview's answer history into aggregate
// statistics, a difficulty-guidance block for the question generator, and a
// completion-progress percentage. Records are a pure projection over
// persisted questions and are never stored.
package analysis

import (
	"sort"
	"strings"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// Record is the immutable per-answered-question fact set the analyzers
// operate on. AnswerTimeMillis <= 0 means the latency is unknown.
type Record struct {
	QuestionText     string
	SubmittedOption  string
	CorrectOption    string
	Difficulty       model.Difficulty
	AnswerTimeMillis int64
}

// Correct reports whether the submitted option matches the correct one
func (r Record) Correct() bool {
	return strings.EqualFold(r.CorrectOption, r.SubmittedOption)
}

// RecordsFromQuestions projects the answered subset of an interview's
// questions into records, in question order.
func RecordsFromQuestions(questions []*model.Question) []Record {
	answered := make([]*model.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsAnswered() {
			answered = append(answered, q)
		}
	}
	sort.Slice(answered, func(i, j int) bool {
		return answered[i].Order < answered[j].Order
	})

	records := make([]Record, 0, len(answered))
	for _, q := range answered {
		millis, _ := q.AnswerTimeMillis()
		records = append(records, Record{
			QuestionText:     q.Text,
			SubmittedOption:  q.SubmittedOption,
			CorrectOption:    q.CorrectOption,
			Difficulty:       q.Difficulty,
			AnswerTimeMillis: millis,
		})
	}
	return records
}
