package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
)

// Review generation can outlive the request that completed the interview,
// so it gets its own deadline instead of the request context's.
const reviewTimeout = 2 * time.Minute

var markdownFence = regexp.MustCompile("(?s)```markdown.*?```")

// ReviewService generates the post-interview candidate review in the
// background. Review failures are logged and swallowed; a completed
// interview without a review is a valid terminal state.
type ReviewService struct {
	interviewRepo repository.InterviewRepo
	questionRepo  repository.QuestionRepo
	documentRepo  repository.DocumentRepo
	userRepo      repository.UserRepo
	generator     Generator
	broadcaster   Broadcaster
}

// NewReviewService creates a new review service
func NewReviewService(
	interviewRepo repository.InterviewRepo,
	questionRepo repository.QuestionRepo,
	documentRepo repository.DocumentRepo,
	userRepo repository.UserRepo,
	generator Generator,
) *ReviewService {
	return &ReviewService{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		documentRepo:  documentRepo,
		userRepo:      userRepo,
		generator:     generator,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ReviewService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// TriggerAsync kicks off review generation for a completed interview and
// returns immediately. The caller's request is never blocked or failed by
// review problems.
func (s *ReviewService) TriggerAsync(interviewID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reviewTimeout)
		defer cancel()

		slog.Info("starting review generation", "interview_id", interviewID)
		if err := s.GenerateAndStore(ctx, interviewID); err != nil {
			slog.Error("review generation failed", "interview_id", interviewID, "error", err)
			return
		}
		slog.Info("review generated", "interview_id", interviewID)

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToInterview(interviewID, "review_ready", map[string]interface{}{
				"interviewId": interviewID,
			})
		}
	}()
}

// GenerateAndStore builds the interview transcript, asks the deep model for
// a review, and persists it on the interview
func (s *ReviewService) GenerateAndStore(ctx context.Context, interviewID string) error {
	interview, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return fmt.Errorf("failed to load interview: %w", err)
	}
	if interview == nil {
		return fmt.Errorf("interview %s: %w", interviewID, ErrNotFound)
	}

	questions, err := s.questionRepo.ListByInterviewID(ctx, interviewID)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	prompt := s.buildReviewPrompt(ctx, interview, questions)
	review, err := s.generator.Review(ctx, prompt)
	if err != nil {
		return err
	}
	review = strings.TrimSpace(markdownFence.ReplaceAllString(review, ""))

	interview.CandidateReview = review
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return fmt.Errorf("failed to persist review: %w", err)
	}
	return nil
}

func (s *ReviewService) buildReviewPrompt(ctx context.Context, interview *model.Interview, questions []*model.Question) string {
	documentTitle := ""
	if document, err := s.documentRepo.GetByID(ctx, interview.DocumentID); err == nil && document != nil {
		documentTitle = document.Title
	}

	candidateName := "the candidate"
	if interview.AssignedToID != "" {
		if user, err := s.userRepo.GetByID(ctx, interview.AssignedToID); err == nil && user != nil {
			candidateName = user.FullName()
		}
	}

	durationMinutes := int64(0)
	if seconds, ok := interview.DurationSeconds(); ok {
		durationMinutes = seconds / 60
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Interview: %s\n", interview.Name)
	fmt.Fprintf(&sb, "Document: %s\n", documentTitle)
	fmt.Fprintf(&sb, "Difficulty: %s\n", interview.Difficulty)
	fmt.Fprintf(&sb, "Candidate: %s\n", candidateName)
	fmt.Fprintf(&sb, "Total questions: %d\n", len(questions))
	fmt.Fprintf(&sb, "Duration: %d minutes\n\n", durationMinutes)
	sb.WriteString(transcript(questions))
	return sb.String()
}

// transcript renders the answered questions in asking order
func transcript(questions []*model.Question) string {
	var answered []*model.Question
	for _, q := range questions {
		if q.IsAnswered() {
			answered = append(answered, q)
		}
	}
	if len(answered) == 0 {
		return "No questions were answered in this interview."
	}

	var sb strings.Builder
	for _, q := range answered {
		fmt.Fprintf(&sb, "Question %d:\n", q.Order)
		fmt.Fprintf(&sb, "Text: %s\n", q.Text)
		fmt.Fprintf(&sb, "Difficulty: %s\n", q.Difficulty)
		sb.WriteString("Options:\n")
		fmt.Fprintf(&sb, "  A) %s\n", q.OptionA)
		fmt.Fprintf(&sb, "  B) %s\n", q.OptionB)
		fmt.Fprintf(&sb, "  C) %s\n", q.OptionC)
		fmt.Fprintf(&sb, "  D) %s\n", q.OptionD)
		fmt.Fprintf(&sb, "Candidate's Answer: %s\n", q.SubmittedOption)
		fmt.Fprintf(&sb, "Correct Answer: %s\n", q.CorrectOption)
		result := "INCORRECT"
		if correct, _ := q.IsCorrect(); correct {
			result = "CORRECT"
		}
		fmt.Fprintf(&sb, "Result: %s\n", result)
		if millis, ok := q.AnswerTimeMillis(); ok {
			fmt.Fprintf(&sb, "Response Time: %.1f seconds\n", float64(millis)/1000.0)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
