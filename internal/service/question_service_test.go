package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// In-memory fakes for the repository and cache interfaces

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[string]*model.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[string]*model.Interview)}
}

func (r *fakeInterviewRepo) Create(_ context.Context, interview *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if interview.ID == "" {
		interview.ID = "iv_" + strconv.Itoa(len(r.interviews)+1)
	}
	cp := *interview
	r.interviews[interview.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id string) (*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	interview, ok := r.interviews[id]
	if !ok {
		return nil, nil
	}
	cp := *interview
	return &cp, nil
}

func (r *fakeInterviewRepo) Update(_ context.Context, interview *model.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *interview
	r.interviews[interview.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) ListAssignedTo(_ context.Context, userID string, status *model.InterviewStatus) ([]*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Interview
	for _, interview := range r.interviews {
		if interview.AssignedToID != userID {
			continue
		}
		if status != nil && interview.Status != *status {
			continue
		}
		cp := *interview
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInterviewRepo) ListAll(_ context.Context) ([]*model.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Interview
	for _, interview := range r.interviews {
		cp := *interview
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInterviewRepo) ExistsByDocumentAndName(_ context.Context, documentID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, interview := range r.interviews {
		if interview.DocumentID == documentID && interview.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
	nextID    int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[string]*model.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if question.ID == "" {
		r.nextID++
		question.ID = "q_" + strconv.Itoa(r.nextID)
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *question
	return &cp, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) ListByInterviewID(_ context.Context, interviewID string) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Question
	for _, question := range r.questions {
		if question.InterviewID == interviewID {
			cp := *question
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CountByInterviewID(_ context.Context, interviewID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, question := range r.questions {
		if question.InterviewID == interviewID {
			n++
		}
	}
	return n, nil
}

type fakeDocumentRepo struct {
	documents map[string]*model.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[string]*model.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, document *model.Document) error {
	if document.ID == "" {
		document.ID = "doc_" + strconv.Itoa(len(r.documents)+1)
	}
	r.documents[document.ID] = document
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	return r.documents[id], nil
}

func (r *fakeDocumentRepo) List(_ context.Context) ([]*model.Document, error) {
	var out []*model.Document
	for _, document := range r.documents {
		out = append(out, document)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = "user_" + strconv.Itoa(len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeOrderCache struct {
	mu   sync.Mutex
	next map[string]int
}

func newFakeOrderCache() *fakeOrderCache {
	return &fakeOrderCache{next: make(map[string]int)}
}

func (c *fakeOrderCache) ReserveNext(_ context.Context, interviewID string, persistedCount int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.next[interviewID]; !ok {
		c.next[interviewID] = int(persistedCount)
	}
	c.next[interviewID]++
	return c.next[interviewID], nil
}

func (c *fakeOrderCache) Reset(_ context.Context, interviewID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.next, interviewID)
	return nil
}

type fakeProgressCache struct {
	mu       sync.Mutex
	progress map[string]int
}

func newFakeProgressCache() *fakeProgressCache {
	return &fakeProgressCache{progress: make(map[string]int)}
}

func (c *fakeProgressCache) SetProgress(_ context.Context, interviewID string, progress int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress[interviewID] = progress
	return nil
}

func (c *fakeProgressCache) GetProgress(_ context.Context, interviewID string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	progress, ok := c.progress[interviewID]
	return progress, ok, nil
}

func (c *fakeProgressCache) Delete(_ context.Context, interviewID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.progress, interviewID)
	return nil
}

// fakeGenerator produces deterministic questions; failing toggles the whole
// surface into an outage
type fakeGenerator struct {
	mu      sync.Mutex
	failing bool
	calls   int
}

func (g *fakeGenerator) SelectSection(_ context.Context, _, _ string, _ model.Difficulty) (*model.SectionChoice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing {
		return nil, fmt.Errorf("upstream outage: %w", ErrGeneratorUnavailable)
	}
	return &model.SectionChoice{Title: "Consensus"}, nil
}

func (g *fakeGenerator) GenerateQuestion(_ context.Context, _, _ string, difficulty model.Difficulty, _ []string) (*model.GeneratedQuestion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing {
		return nil, fmt.Errorf("upstream outage: %w", ErrGeneratorUnavailable)
	}
	g.calls++
	return &model.GeneratedQuestion{
		Question:      fmt.Sprintf("generated question %d", g.calls),
		OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectAnswer: "A",
		Difficulty:    difficulty,
		Explanation:   "because",
	}, nil
}

func (g *fakeGenerator) Review(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failing {
		return "", fmt.Errorf("upstream outage: %w", ErrGeneratorUnavailable)
	}
	return "solid candidate", nil
}

type fixture struct {
	interviewRepo *fakeInterviewRepo
	questionRepo  *fakeQuestionRepo
	generator     *fakeGenerator
	interviewSvc  *InterviewService
	questionSvc   *QuestionService
	interviewID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	interviewRepo := newFakeInterviewRepo()
	questionRepo := newFakeQuestionRepo()
	documentRepo := newFakeDocumentRepo()
	userRepo := newFakeUserRepo()
	generator := &fakeGenerator{}
	orderCache := newFakeOrderCache()
	progressCache := newFakeProgressCache()

	documentRepo.documents["doc_1"] = &model.Document{
		ID:    "doc_1",
		Title: "Distributed Systems Primer",
		Sections: []model.Section{
			{Title: "Consensus", Content: "consensus content", Level: 1, Order: 0},
		},
	}

	userSvc := NewUserService(userRepo)
	documentSvc := NewDocumentService(documentRepo)
	reviewSvc := NewReviewService(interviewRepo, questionRepo, documentRepo, userRepo, generator)
	interviewSvc := NewInterviewService(interviewRepo, questionRepo, documentRepo, userSvc, reviewSvc)
	questionSvc := NewQuestionService(questionRepo, interviewSvc, documentSvc, generator, orderCache, progressCache)

	interview := &model.Interview{
		ID:         "iv_1",
		Name:       "backend screen",
		Difficulty: model.DifficultyMedium,
		Status:     model.StatusInProgress,
		DocumentID: "doc_1",
	}
	now := time.Now()
	interview.StartTime = &now
	if err := interviewRepo.Create(context.Background(), interview); err != nil {
		t.Fatal(err)
	}

	return &fixture{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
		generator:     generator,
		interviewSvc:  interviewSvc,
		questionSvc:   questionSvc,
		interviewID:   "iv_1",
	}
}

func TestNextQuestionGeneratesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asked, err := f.questionSvc.NextQuestion(ctx, f.interviewID)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}

	if asked.QuestionID == "" {
		t.Error("question ID missing")
	}
	if asked.Order != 1 {
		t.Errorf("first question order = %d, want 1", asked.Order)
	}

	stored, err := f.questionRepo.GetByID(ctx, asked.QuestionID)
	if err != nil || stored == nil {
		t.Fatalf("question not persisted: %v", err)
	}
	if stored.CorrectOption != "A" || stored.Explanation == "" {
		t.Error("persisted question should keep the withheld fields")
	}
}

func TestNextQuestionWithholdsAnswer(t *testing.T) {
	f := newFixture(t)

	asked, err := f.questionSvc.NextQuestion(context.Background(), f.interviewID)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}

	// The caller-facing view carries only the question and its options
	if asked.Title == "" || asked.OptionA == "" || asked.OptionD == "" {
		t.Error("asked question is missing display fields")
	}
}

func TestNextQuestionRequiresActiveInterview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	interview, _ := f.interviewRepo.GetByID(ctx, f.interviewID)
	interview.Status = model.StatusScheduled
	f.interviewRepo.Update(ctx, interview)

	_, err := f.questionSvc.NextQuestion(ctx, f.interviewID)
	if !errors.Is(err, ErrInterviewNotActive) {
		t.Errorf("error = %v, want ErrInterviewNotActive", err)
	}
}

func TestNextQuestionPropagatesGeneratorOutage(t *testing.T) {
	f := newFixture(t)
	f.generator.failing = true
	ctx := context.Background()

	_, err := f.questionSvc.NextQuestion(ctx, f.interviewID)
	if !errors.Is(err, ErrGeneratorUnavailable) {
		t.Fatalf("error = %v, want ErrGeneratorUnavailable", err)
	}

	if n, _ := f.questionRepo.CountByInterviewID(ctx, f.interviewID); n != 0 {
		t.Errorf("outage persisted %d questions, want 0", n)
	}
}

func TestNextQuestionConcurrentOrderUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 16
	orders := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			asked, err := f.questionSvc.NextQuestion(ctx, f.interviewID)
			if err != nil {
				t.Errorf("NextQuestion: %v", err)
				return
			}
			orders <- asked.Order
		}()
	}
	wg.Wait()
	close(orders)

	seen := make(map[int]bool)
	for order := range orders {
		if order < 1 || order > workers {
			t.Fatalf("order %d outside 1..%d", order, workers)
		}
		if seen[order] {
			t.Fatalf("order %d issued twice", order)
		}
		seen[order] = true
	}
	if len(seen) != workers {
		t.Errorf("got %d distinct orders, want %d", len(seen), workers)
	}
}

func TestSubmitAnswerRevealsResultAndProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asked, err := f.questionSvc.NextQuestion(ctx, f.interviewID)
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}

	resp, err := f.questionSvc.SubmitAnswer(ctx, asked.QuestionID, "a")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if !resp.Correct || resp.CorrectOption != "A" || resp.SubmittedOption != "A" {
		t.Errorf("unexpected result: %+v", resp)
	}
	if resp.Explanation == "" {
		t.Error("explanation should be revealed after answering")
	}
	if resp.CurrentProgress <= 0 {
		t.Errorf("progress = %d, want > 0", resp.CurrentProgress)
	}
}

func TestSubmitAnswerRejectsReAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asked, _ := f.questionSvc.NextQuestion(ctx, f.interviewID)
	if _, err := f.questionSvc.SubmitAnswer(ctx, asked.QuestionID, "B"); err != nil {
		t.Fatalf("first SubmitAnswer: %v", err)
	}

	_, err := f.questionSvc.SubmitAnswer(ctx, asked.QuestionID, "A")
	if !errors.Is(err, model.ErrAlreadyAnswered) {
		t.Errorf("error = %v, want ErrAlreadyAnswered", err)
	}
}

func TestSubmitAnswerRejectsInvalidOption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	asked, _ := f.questionSvc.NextQuestion(ctx, f.interviewID)
	_, err := f.questionSvc.SubmitAnswer(ctx, asked.QuestionID, "E")
	if !errors.Is(err, model.ErrInvalidOption) {
		t.Fatalf("error = %v, want ErrInvalidOption", err)
	}

	// The rejected submission must not consume the question
	if _, err := f.questionSvc.SubmitAnswer(ctx, asked.QuestionID, "A"); err != nil {
		t.Errorf("valid submission after rejection failed: %v", err)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	f := newFixture(t)

	_, err := f.questionSvc.SubmitAnswer(context.Background(), "nope", "A")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSubmitAnswerCompletesInterviewAtFullProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 24 answered questions on record; the 25th forces full progress
	created := time.Now().Add(-time.Hour)
	for i := 0; i < 24; i++ {
		answeredAt := created.Add(30 * time.Second)
		f.questionRepo.Create(ctx, &model.Question{
			InterviewID:     f.interviewID,
			Text:            fmt.Sprintf("q%d", i),
			Difficulty:      model.DifficultyMedium,
			CorrectOption:   "A",
			SubmittedOption: "A",
			Order:           i + 1,
			CreatedAt:       created,
			AnsweredAt:      &answeredAt,
		})
	}

	final := &model.Question{
		InterviewID:   f.interviewID,
		Text:          "final",
		Difficulty:    model.DifficultyMedium,
		CorrectOption: "B",
		Order:         25,
		CreatedAt:     time.Now(),
	}
	f.questionRepo.Create(ctx, final)

	resp, err := f.questionSvc.SubmitAnswer(ctx, final.ID, "B")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if resp.CurrentProgress != 100 {
		t.Errorf("progress = %d, want 100", resp.CurrentProgress)
	}

	interview, _ := f.interviewRepo.GetByID(ctx, f.interviewID)
	if interview.Status != model.StatusCompleted {
		t.Errorf("interview status = %s, want COMPLETED", interview.Status)
	}
	if interview.EndTime == nil {
		t.Error("completed interview should have an end time")
	}
}

func TestChangeStatusIgnoredTransitionReportsReason(t *testing.T) {
	f := newFixture(t)

	resp, err := f.interviewSvc.ChangeStatus(context.Background(), f.interviewID, model.StatusScheduled)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if resp.Applied {
		t.Error("IN_PROGRESS -> SCHEDULED should be ignored")
	}
	if resp.Reason == "" {
		t.Error("ignored transition should carry a reason")
	}
	if resp.Status != model.StatusInProgress {
		t.Errorf("status = %s, want unchanged IN_PROGRESS", resp.Status)
	}
}

func TestCreateInterviewDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &model.CreateInterviewRequest{
		Name:       "backend screen",
		DocumentID: "doc_1",
	}
	_, err := f.interviewSvc.Create(ctx, req, "admin_1")
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error = %v, want ErrDuplicateName", err)
	}

	req.Name = "backend screen round 2"
	if _, err := f.interviewSvc.Create(ctx, req, "admin_1"); err != nil {
		t.Errorf("distinct name rejected: %v", err)
	}
}

func TestCreateInterviewUnknownDocument(t *testing.T) {
	f := newFixture(t)

	_, err := f.interviewSvc.Create(context.Background(), &model.CreateInterviewRequest{
		Name:       "orphan",
		DocumentID: "doc_missing",
	}, "admin_1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
