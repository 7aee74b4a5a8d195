package service

import (
	"context"
	"fmt"
	"time"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
)

// InterviewService handles interview lifecycle, assignment views, and the
// transcript detail view
type InterviewService struct {
	interviewRepo repository.InterviewRepo
	questionRepo  repository.QuestionRepo
	documentRepo  repository.DocumentRepo
	userSvc       *UserService
	reviewSvc     *ReviewService
	broadcaster   Broadcaster
}

// NewInterviewService creates a new interview service
func NewInterviewService(
	interviewRepo repository.InterviewRepo,
	questionRepo repository.QuestionRepo,
	documentRepo repository.DocumentRepo,
	userSvc *UserService,
	reviewSvc *ReviewService,
) *InterviewService {
	return &InterviewService{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		documentRepo:  documentRepo,
		userSvc:       userSvc,
		reviewSvc:     reviewSvc,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *InterviewService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create schedules a new interview over an existing document. Names are
// unique per document.
func (s *InterviewService) Create(ctx context.Context, req *model.CreateInterviewRequest, createdByID string) (*model.CreateInterviewResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("interview name is required")
	}

	document, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document: %w", err)
	}
	if document == nil {
		return nil, fmt.Errorf("document %s: %w", req.DocumentID, ErrNotFound)
	}

	exists, err := s.interviewRepo.ExistsByDocumentAndName(ctx, req.DocumentID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check interview name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("interview %q on document %s: %w", req.Name, req.DocumentID, ErrDuplicateName)
	}

	if req.AssignedToID != "" {
		if _, err := s.userSvc.Get(ctx, req.AssignedToID); err != nil {
			return nil, fmt.Errorf("failed to resolve assignee: %w", err)
		}
	}

	difficulty := req.Difficulty
	if _, ok := model.ParseDifficulty(string(difficulty)); !ok {
		difficulty = model.DifficultyMedium
	}

	interview := &model.Interview{
		Name:          req.Name,
		Description:   req.Description,
		Difficulty:    difficulty,
		Status:        model.StatusScheduled,
		ScheduledDate: req.ScheduledDate,
		DocumentID:    req.DocumentID,
		CreatedByID:   createdByID,
		AssignedToID:  req.AssignedToID,
	}
	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return &model.CreateInterviewResponse{InterviewID: interview.ID}, nil
}

// Get returns an interview by ID
func (s *InterviewService) Get(ctx context.Context, id string) (*model.Interview, error) {
	interview, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	return interview, nil
}

// ListAssigned returns the interviews assigned to a candidate, optionally
// filtered by status
func (s *InterviewService) ListAssigned(ctx context.Context, userID string, status *model.InterviewStatus) ([]model.AssignedInterviewResponse, error) {
	interviews, err := s.interviewRepo.ListAssignedTo(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned interviews: %w", err)
	}

	responses := make([]model.AssignedInterviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		resp := model.AssignedInterviewResponse{
			InterviewID:   interview.ID,
			Name:          interview.Name,
			Description:   interview.Description,
			Difficulty:    interview.Difficulty,
			Status:        interview.Status,
			ScheduledDate: interview.ScheduledDate,
		}
		if creator := s.userSvc.Overview(ctx, interview.CreatedByID); creator != nil {
			resp.CreatedBy = creator.Username
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListAll returns every interview, for detail view listings without a
// specific ID
func (s *InterviewService) ListAll(ctx context.Context) ([]*model.Interview, error) {
	return s.interviewRepo.ListAll(ctx)
}

// Details builds the full transcript view of one interview. Questions are a
// pure projection of stored state; nothing is recomputed or mutated here.
func (s *InterviewService) Details(ctx context.Context, id string) (*model.InterviewDetailsResponse, error) {
	interview, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByInterviewID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	details := make([]model.QuestionDetails, 0, len(questions))
	for _, q := range questions {
		entry := model.QuestionDetails{
			QuestionText:    q.Text,
			Difficulty:      q.Difficulty,
			OptionA:         q.OptionA,
			OptionB:         q.OptionB,
			OptionC:         q.OptionC,
			OptionD:         q.OptionD,
			CorrectOption:   q.CorrectOption,
			Order:           q.Order,
			SubmittedOption: q.SubmittedOption,
		}
		if correct, ok := q.IsCorrect(); ok {
			entry.IsCorrect = &correct
		}
		if millis, ok := q.AnswerTimeMillis(); ok {
			entry.AnswerTimeMillis = &millis
		}
		details = append(details, entry)
	}

	resp := &model.InterviewDetailsResponse{
		InterviewID:     interview.ID,
		Name:            interview.Name,
		Description:     interview.Description,
		Difficulty:      interview.Difficulty,
		Status:          interview.Status,
		CandidateReview: interview.CandidateReview,
		CreatedBy:       s.userSvc.Overview(ctx, interview.CreatedByID),
		AssignedTo:      s.userSvc.Overview(ctx, interview.AssignedToID),
		Questions:       details,
		TotalQuestions:  len(details),
	}
	if document, err := s.documentRepo.GetByID(ctx, interview.DocumentID); err == nil && document != nil {
		resp.DocumentTitle = document.Title
	}
	if seconds, ok := interview.DurationSeconds(); ok {
		resp.DurationInSeconds = &seconds
	}
	return resp, nil
}

// DetailsForUser builds detail views of the interviews assigned to one
// candidate. With an interviewID it narrows to that single interview and
// reports not found when the interview is not among the candidate's
// assignments.
func (s *InterviewService) DetailsForUser(ctx context.Context, userID, interviewID string) ([]*model.InterviewDetailsResponse, error) {
	interviews, err := s.interviewRepo.ListAssignedTo(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned interviews: %w", err)
	}

	responses := make([]*model.InterviewDetailsResponse, 0, len(interviews))
	for _, interview := range interviews {
		if interviewID != "" && interview.ID != interviewID {
			continue
		}
		details, err := s.Details(ctx, interview.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, details)
	}
	if interviewID != "" && len(responses) == 0 {
		return nil, fmt.Errorf("interview %s: %w", interviewID, ErrNotFound)
	}
	return responses, nil
}

// ChangeStatus runs the lifecycle transition table against the requested
// target. Guard-rejected transitions come back as ignored, not errors, and
// leave the interview untouched. Completing an interview kicks off review
// generation in the background.
func (s *InterviewService) ChangeStatus(ctx context.Context, id string, target model.InterviewStatus) (*model.ChangeStatusResponse, error) {
	interview, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := interview.ApplyStatus(target, time.Now())
	if result.Applied {
		if err := s.interviewRepo.Update(ctx, interview); err != nil {
			return nil, fmt.Errorf("failed to persist status change: %w", err)
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToInterview(interview.ID, "status_changed", map[string]interface{}{
				"interviewId": interview.ID,
				"status":      interview.Status,
			})
		}
		if interview.Status == model.StatusCompleted {
			s.reviewSvc.TriggerAsync(interview.ID)
		}
	}

	return &model.ChangeStatusResponse{
		InterviewID: interview.ID,
		Status:      result.Status,
		Applied:     result.Applied,
		Reason:      result.Reason,
	}, nil
}

// Complete finishes an in-progress interview and starts its review. Used by
// the answer flow once progress reaches the finish line.
func (s *InterviewService) Complete(ctx context.Context, id string) error {
	resp, err := s.ChangeStatus(ctx, id, model.StatusCompleted)
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("could not complete interview %s: %s", id, resp.Reason)
	}
	return nil
}
