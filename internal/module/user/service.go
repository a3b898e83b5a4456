package user

import (
	"context"

	"github.com/simp-lee/userdir/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers validates the query and returns one page of users.
// Validation is repeated here so callers that bypass the HTTP binding layer
// get the same contract.
func (s *userService) ListUsers(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.User], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}
