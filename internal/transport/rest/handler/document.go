package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/service"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentSvc *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentSvc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// Create handles POST /v1/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	document, err := h.documentSvc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateDocumentResponse{DocumentID: document.ID})
}

// List handles GET /v1/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	documents, err := h.documentSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if documents == nil {
		documents = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

// TableOfContents handles GET /v1/documents/{documentId}/toc
func (h *DocumentHandler) TableOfContents(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["documentId"]

	toc, err := h.documentSvc.TableOfContents(r.Context(), documentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"documentId":      documentID,
		"tableOfContents": toc,
	})
}
