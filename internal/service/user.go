package service

import (
	"context"
	"errors"

	"github.com/accountly/accountly-go/internal/crypto"
	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
)

var ErrWrongPassword = errors.New("old password is not correct")

// UserService handles profile reads, partial profile updates and password
// rotation for authenticated users.
type UserService struct {
	store repository.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store repository.UserStore) *UserService {
	return &UserService{store: store}
}

// GetUser retrieves a user's profile summary by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// UpdateUser applies a partial profile update. Fields left empty in the
// request keep their stored values; the email address is never touched.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Photo != "" {
		user.Photo = req.Photo
	}

	if err := s.store.UpdateProfile(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// ChangePassword verifies the old password and replaces the stored hash
// with a hash of the new one. Tokens issued earlier stay valid until they
// expire; sessions are stateless.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req model.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrFieldsRequired
	}
	if err := validatePasswordLength(req.NewPassword); err != nil {
		return err
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := crypto.VerifyPassword(req.OldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !match {
		return ErrWrongPassword
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, userID, hash)
}
