package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// DocumentRepo persists uploaded documents and their parsed sections
type DocumentRepo interface {
	Create(ctx context.Context, document *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context) ([]*model.Document, error)
}

type documentRepo struct {
	collection *mongo.Collection
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *mongo.Database) DocumentRepo {
	return &documentRepo{
		collection: db.Collection("documents"),
	}
}

func (r *documentRepo) Create(ctx context.Context, document *model.Document) error {
	if document.ID == "" {
		document.ID = uuid.New().String()
	}
	if document.CreatedAt.IsZero() {
		document.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, document)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var document model.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepo) List(ctx context.Context) ([]*model.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var documents []*model.Document
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}
