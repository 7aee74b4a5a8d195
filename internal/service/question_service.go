package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/QualifAIze/qualifaize-backend-api/internal/analysis"
	"github.com/QualifAIze/qualifaize-backend-api/internal/cache"
	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
)

// completionThreshold is the progress score at which the interview
// finishes automatically
const completionThreshold = 100

// QuestionService drives adaptive question generation and answer scoring
type QuestionService struct {
	questionRepo  repository.QuestionRepo
	interviewSvc  *InterviewService
	documentSvc   *DocumentService
	generator     Generator
	orderCache    cache.OrderCache
	progressCache cache.ProgressCache
	broadcaster   Broadcaster
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo repository.QuestionRepo,
	interviewSvc *InterviewService,
	documentSvc *DocumentService,
	generator Generator,
	orderCache cache.OrderCache,
	progressCache cache.ProgressCache,
) *QuestionService {
	return &QuestionService{
		questionRepo:  questionRepo,
		interviewSvc:  interviewSvc,
		documentSvc:   documentSvc,
		generator:     generator,
		orderCache:    orderCache,
		progressCache: progressCache,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QuestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// NextQuestion generates the next adaptive question for an in-progress
// interview: summarize performance so far, pick a document section, generate
// the question, reserve an order slot, and persist. Generator failures
// propagate to the caller.
func (s *QuestionService) NextQuestion(ctx context.Context, interviewID string) (*model.QuestionToAsk, error) {
	interview, err := s.interviewSvc.Get(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !interview.IsActive() {
		return nil, fmt.Errorf("interview %s has status %s: %w", interviewID, interview.Status, ErrInterviewNotActive)
	}

	questions, err := s.questionRepo.ListByInterviewID(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question history: %w", err)
	}
	records := analysis.RecordsFromQuestions(questions)
	guidance := analysis.GuidanceText(records)

	toc, err := s.documentSvc.TableOfContents(ctx, interview.DocumentID)
	if err != nil {
		return nil, err
	}

	choice, err := s.generator.SelectSection(ctx, toc, guidance, interview.Difficulty)
	if err != nil {
		return nil, err
	}

	content, err := s.documentSvc.SectionContent(ctx, interview.DocumentID, choice.Title)
	if err != nil {
		return nil, err
	}

	previousTexts := make([]string, 0, len(questions))
	for _, q := range questions {
		previousTexts = append(previousTexts, q.Text)
	}

	generated, err := s.generator.GenerateQuestion(ctx, content, guidance, interview.Difficulty, previousTexts)
	if err != nil {
		return nil, err
	}

	order, err := s.orderCache.ReserveNext(ctx, interviewID, int64(len(questions)))
	if err != nil {
		return nil, fmt.Errorf("failed to reserve question slot: %w", err)
	}

	question := &model.Question{
		InterviewID:   interviewID,
		Text:          generated.Question,
		Difficulty:    generated.Difficulty,
		OptionA:       generated.OptionA,
		OptionB:       generated.OptionB,
		OptionC:       generated.OptionC,
		OptionD:       generated.OptionD,
		CorrectOption: generated.CorrectAnswer,
		Explanation:   generated.Explanation,
		Order:         order,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to persist question: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToInterview(interviewID, "question_asked", map[string]interface{}{
			"interviewId": interviewID,
			"questionId":  question.ID,
			"order":       question.Order,
		})
	}

	return &model.QuestionToAsk{
		QuestionID: question.ID,
		Title:      question.Text,
		OptionA:    question.OptionA,
		OptionB:    question.OptionB,
		OptionC:    question.OptionC,
		OptionD:    question.OptionD,
		Order:      question.Order,
	}, nil
}

// SubmitAnswer records the candidate's answer, reveals correctness, and
// recomputes interview progress. Hitting the finish line completes the
// interview and starts its review in the background.
func (s *QuestionService) SubmitAnswer(ctx context.Context, questionID, answer string) (*model.SubmitAnswerResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("question %s: %w", questionID, ErrNotFound)
	}

	interview, err := s.interviewSvc.Get(ctx, question.InterviewID)
	if err != nil {
		return nil, err
	}
	if !interview.IsActive() {
		return nil, fmt.Errorf("interview %s has status %s: %w", interview.ID, interview.Status, ErrInterviewNotActive)
	}

	if err := question.Submit(answer, time.Now()); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to persist answer: %w", err)
	}

	questions, err := s.questionRepo.ListByInterviewID(ctx, question.InterviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question history: %w", err)
	}
	records := analysis.RecordsFromQuestions(questions)
	progress := analysis.Progress(records)

	// Cache failures only cost a future recompute
	if err := s.progressCache.SetProgress(ctx, question.InterviewID, progress); err != nil {
		slog.Warn("failed to cache progress", "interview_id", question.InterviewID, "error", err)
	}

	correct, _ := question.IsCorrect()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToInterview(question.InterviewID, "answer_submitted", map[string]interface{}{
			"interviewId": question.InterviewID,
			"questionId":  question.ID,
			"correct":     correct,
			"progress":    progress,
		})
	}

	if progress >= completionThreshold {
		if err := s.interviewSvc.Complete(ctx, question.InterviewID); err != nil {
			return nil, err
		}
	}

	return &model.SubmitAnswerResponse{
		QuestionID:      question.ID,
		SubmittedOption: question.SubmittedOption,
		CorrectOption:   question.CorrectOption,
		Correct:         correct,
		Explanation:     question.Explanation,
		CurrentProgress: progress,
	}, nil
}

// Progress returns the cached progress for an interview, recomputing from
// stored answers on a cache miss
func (s *QuestionService) Progress(ctx context.Context, interviewID string) (int, error) {
	if progress, ok, err := s.progressCache.GetProgress(ctx, interviewID); err == nil && ok {
		return progress, nil
	}

	questions, err := s.questionRepo.ListByInterviewID(ctx, interviewID)
	if err != nil {
		return 0, fmt.Errorf("failed to load question history: %w", err)
	}
	progress := analysis.Progress(analysis.RecordsFromQuestions(questions))
	if err := s.progressCache.SetProgress(ctx, interviewID, progress); err != nil {
		slog.Warn("failed to cache progress", "interview_id", interviewID, "error", err)
	}
	return progress, nil
}
