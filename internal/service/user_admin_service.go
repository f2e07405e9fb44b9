package service

import (
	"context"
	"time"

	"github.com/jemo-market/api/internal/cache"
	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"
)

// UserAdminService back-office user management
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService creates the user admin service
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// List pages users with filters
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get loads a user
func (s *UserAdminService) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Disable locks an account and revokes its outstanding tokens
func (s *UserAdminService) Disable(userID uint) (*models.User, error) {
	return s.setStatus(userID, constants.UserStatusDisabled)
}

// Enable reopens a disabled account
func (s *UserAdminService) Enable(userID uint) (*models.User, error) {
	return s.setStatus(userID, constants.UserStatusActive)
}

func (s *UserAdminService) setStatus(userID uint, status string) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}

	user.Status = status
	if status == constants.UserStatusDisabled {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}
