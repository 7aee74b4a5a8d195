package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
)

// DocumentService manages pre-parsed documents and their section content
type DocumentService struct {
	documentRepo repository.DocumentRepo
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repository.DocumentRepo) *DocumentService {
	return &DocumentService{documentRepo: documentRepo}
}

// Create stores a pre-parsed document. Sections are normalized into
// reading order before persisting.
func (s *DocumentService) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("document title is required")
	}
	if len(req.Sections) == 0 {
		return nil, fmt.Errorf("document must have at least one section")
	}

	sections := make([]model.Section, len(req.Sections))
	copy(sections, req.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	document := &model.Document{
		Title:    req.Title,
		Sections: sections,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}

// Get returns a document by ID
func (s *DocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return document, nil
}

// List returns all documents
func (s *DocumentService) List(ctx context.Context) ([]*model.Document, error) {
	return s.documentRepo.List(ctx)
}

// TableOfContents renders a document's section outline
func (s *DocumentService) TableOfContents(ctx context.Context, id string) (string, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return document.TableOfContents(), nil
}

// SectionContent returns the named section's content including all of its
// nested subsections
func (s *DocumentService) SectionContent(ctx context.Context, id, sectionTitle string) (string, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	content, ok := document.ConcatenatedContent(sectionTitle)
	if !ok {
		return "", fmt.Errorf("section %q in document %s: %w", sectionTitle, id, ErrNotFound)
	}
	return content, nil
}
