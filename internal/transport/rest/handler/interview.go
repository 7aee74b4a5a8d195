package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/service"
	"github.com/QualifAIze/qualifaize-backend-api/internal/transport/rest/middleware"
)

// InterviewHandler handles interview lifecycle and question endpoints
type InterviewHandler struct {
	interviewSvc *service.InterviewService
	questionSvc  *service.QuestionService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewSvc *service.InterviewService, questionSvc *service.QuestionService) *InterviewHandler {
	return &InterviewHandler{
		interviewSvc: interviewSvc,
		questionSvc:  questionSvc,
	}
}

// Create handles POST /v1/interviews
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.interviewSvc.Create(r.Context(), &req, middleware.GetAdminID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Assigned handles GET /v1/interviews/assigned with an optional status filter
func (h *InterviewHandler) Assigned(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusForbidden, "candidate token required")
		return
	}

	var status *model.InterviewStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := model.ParseInterviewStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status "+raw)
			return
		}
		status = &parsed
	}

	interviews, err := h.interviewSvc.ListAssigned(r.Context(), userID, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, interviews)
}

// Details handles GET /v1/interviews/details. Without an interviewId query
// param it returns the detail view of every visible interview: all of them
// for admins, only the caller's assignments for candidates.
func (h *InterviewHandler) Details(w http.ResponseWriter, r *http.Request) {
	interviewID := r.URL.Query().Get("interviewId")

	if middleware.GetAdminID(r.Context()) == "" {
		responses, err := h.interviewSvc.DetailsForUser(r.Context(), middleware.GetUserID(r.Context()), interviewID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, responses)
		return
	}

	if interviewID != "" {
		details, err := h.interviewSvc.Details(r.Context(), interviewID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []*model.InterviewDetailsResponse{details})
		return
	}

	interviews, err := h.interviewSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	responses := make([]*model.InterviewDetailsResponse, 0, len(interviews))
	for _, interview := range interviews {
		details, err := h.interviewSvc.Details(r.Context(), interview.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		responses = append(responses, details)
	}
	writeJSON(w, http.StatusOK, responses)
}

// ChangeStatus handles PATCH /v1/interviews/{interviewId}/status?newStatus=
func (h *InterviewHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	interviewID := mux.Vars(r)["interviewId"]

	raw := r.URL.Query().Get("newStatus")
	target, ok := model.ParseInterviewStatus(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status "+raw)
		return
	}

	resp, err := h.interviewSvc.ChangeStatus(r.Context(), interviewID, target)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// NextQuestion handles GET /v1/interviews/{interviewId}/next
func (h *InterviewHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	interviewID := mux.Vars(r)["interviewId"]

	question, err := h.questionSvc.NextQuestion(r.Context(), interviewID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// SubmitAnswer handles POST /v1/interviews/answers/{questionId}
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.questionSvc.SubmitAnswer(r.Context(), questionID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
