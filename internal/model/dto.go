package model

import "time"

// CreateInterviewRequest is the interview creation request body
type CreateInterviewRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	DocumentID    string     `json:"documentId"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	AssignedToID  string     `json:"assignedToId,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// CreateInterviewResponse carries the new interview's ID
type CreateInterviewResponse struct {
	InterviewID string `json:"interviewId"`
}

// ChangeStatusResponse reports the outcome of a status change request.
// Guard-rejected transitions are reported as ignored, not errors.
type ChangeStatusResponse struct {
	InterviewID string          `json:"interviewId"`
	Status      InterviewStatus `json:"status"`
	Applied     bool            `json:"applied"`
	Reason      string          `json:"reason,omitempty"`
}

// QuestionToAsk is the caller-facing view of a freshly generated question.
// The correct option and explanation are deliberately withheld.
type QuestionToAsk struct {
	QuestionID string `json:"questionId"`
	Title      string `json:"title"`
	OptionA    string `json:"optionA"`
	OptionB    string `json:"optionB"`
	OptionC    string `json:"optionC"`
	OptionD    string `json:"optionD"`
	Order      int    `json:"order"`
}

// SubmitAnswerRequest is the answer submission request body
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswerResponse reveals correctness and explanation after submission
type SubmitAnswerResponse struct {
	QuestionID      string `json:"questionId"`
	SubmittedOption string `json:"submittedOption"`
	CorrectOption   string `json:"correctOption"`
	Correct         bool   `json:"correct"`
	Explanation     string `json:"explanation,omitempty"`
	CurrentProgress int    `json:"currentProgress"`
}

// AssignedInterviewResponse is the candidate's view of one assignment
type AssignedInterviewResponse struct {
	InterviewID   string          `json:"interviewId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Difficulty    Difficulty      `json:"difficulty"`
	Status        InterviewStatus `json:"status"`
	ScheduledDate *time.Time      `json:"scheduledDate,omitempty"`
	CreatedBy     string          `json:"createdBy,omitempty"`
}

// UserOverview is the compact user reference embedded in interview views
type UserOverview struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// QuestionDetails is the full per-question transcript entry
type QuestionDetails struct {
	QuestionText     string     `json:"questionText"`
	Difficulty       Difficulty `json:"difficulty"`
	OptionA          string     `json:"optionA"`
	OptionB          string     `json:"optionB"`
	OptionC          string     `json:"optionC"`
	OptionD          string     `json:"optionD"`
	CorrectOption    string     `json:"correctOption"`
	Order            int        `json:"questionOrder"`
	SubmittedOption  string     `json:"submittedAnswer,omitempty"`
	IsCorrect        *bool      `json:"isCorrect,omitempty"`
	AnswerTimeMillis *int64     `json:"answerTimeInMillis,omitempty"`
}

// InterviewDetailsResponse is the full interview transcript view
type InterviewDetailsResponse struct {
	InterviewID       string            `json:"interviewId"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Difficulty        Difficulty        `json:"difficulty"`
	Status            InterviewStatus   `json:"status"`
	DocumentTitle     string            `json:"documentTitle,omitempty"`
	CandidateReview   string            `json:"candidateReview,omitempty"`
	CreatedBy         *UserOverview     `json:"createdBy,omitempty"`
	AssignedTo        *UserOverview     `json:"assignedTo,omitempty"`
	Questions         []QuestionDetails `json:"questions"`
	TotalQuestions    int               `json:"totalQuestions"`
	DurationInSeconds *int64            `json:"durationInSeconds,omitempty"`
}

// GeneratedQuestion is the question generator's output
type GeneratedQuestion struct {
	Question      string     `json:"question"`
	OptionA       string     `json:"optionA"`
	OptionB       string     `json:"optionB"`
	OptionC       string     `json:"optionC"`
	OptionD       string     `json:"optionD"`
	CorrectAnswer string     `json:"correctAnswer"`
	Difficulty    Difficulty `json:"difficulty"`
	Explanation   string     `json:"explanation,omitempty"`
}

// SectionChoice is the section selector's output
type SectionChoice struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation,omitempty"`
}

// CreateDocumentRequest seeds a pre-parsed document
type CreateDocumentRequest struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// CreateDocumentResponse carries the new document's ID
type CreateDocumentResponse struct {
	DocumentID string `json:"documentId"`
}

// RegisterUserRequest adds a user to the directory
type RegisterUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role,omitempty"`
}
