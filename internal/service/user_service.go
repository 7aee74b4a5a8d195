package service

import (
	"context"
	"fmt"

	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
	"github.com/QualifAIze/qualifaize-backend-api/internal/repository"
)

// UserService manages the user directory
type UserService struct {
	userRepo repository.UserRepo
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register adds a user to the directory. Usernames are unique.
func (s *UserService) Register(ctx context.Context, req *model.RegisterUserRequest) (*model.User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q: %w", req.Username, ErrDuplicateName)
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

// List returns all directory users
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// Overview resolves a user ID to its compact view, or nil when the ID is
// empty or unknown
func (s *UserService) Overview(ctx context.Context, id string) *model.UserOverview {
	if id == "" {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil
	}
	return &model.UserOverview{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
