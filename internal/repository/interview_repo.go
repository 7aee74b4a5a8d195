package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// InterviewRepo persists interviews
type InterviewRepo interface {
	Create(ctx context.Context, interview *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	Update(ctx context.Context, interview *model.Interview) error

	// ListAssignedTo returns interviews assigned to a user, optionally
	// filtered by status
	ListAssignedTo(ctx context.Context, userID string, status *model.InterviewStatus) ([]*model.Interview, error)
	ListAll(ctx context.Context) ([]*model.Interview, error)

	// ExistsByDocumentAndName reports whether the document already has an
	// interview with this name (duplicate-name guard on creation)
	ExistsByDocumentAndName(ctx context.Context, documentID, name string) (bool, error)
}

type interviewRepo struct {
	collection *mongo.Collection
}

// NewInterviewRepo creates a new interview repository
func NewInterviewRepo(db *mongo.Database) InterviewRepo {
	return &interviewRepo{
		collection: db.Collection("interviews"),
	}
}

func (r *interviewRepo) Create(ctx context.Context, interview *model.Interview) error {
	if interview.ID == "" {
		interview.ID = uuid.New().String()
	}
	now := time.Now()
	interview.CreatedAt = now
	interview.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, interview)
	return err
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepo) Update(ctx context.Context, interview *model.Interview) error {
	interview.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": interview.ID}, interview)
	return err
}

func (r *interviewRepo) ListAssignedTo(ctx context.Context, userID string, status *model.InterviewStatus) ([]*model.Interview, error) {
	filter := bson.M{"assignedToId": userID}
	if status != nil {
		filter["status"] = *status
	}
	return r.list(ctx, filter)
}

func (r *interviewRepo) ListAll(ctx context.Context) ([]*model.Interview, error) {
	return r.list(ctx, bson.M{})
}

func (r *interviewRepo) ExistsByDocumentAndName(ctx context.Context, documentID, name string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"documentId": documentID, "name": name})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interviewRepo) list(ctx context.Context, filter bson.M) ([]*model.Interview, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interviews []*model.Interview
	if err = cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}
