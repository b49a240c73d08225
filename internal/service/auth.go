package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/accountly/accountly-go/internal/crypto"
	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
)

var (
	ErrFieldsRequired     = errors.New("please fill in all required fields")
	ErrPasswordLength     = errors.New("password must be between 6 and 20 characters")
	ErrEmailTaken         = errors.New("email has already been registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	passwordMinLength = 6
	passwordMaxLength = 20
)

// AuthService handles registration, login and session checks.
type AuthService struct {
	store     repository.UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns the user summary with a
// session token. The password is hashed before the record is persisted.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrFieldsRequired
	}
	if err := validatePasswordLength(req.Password); err != nil {
		return model.AuthResponse{}, err
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Photo:        model.DefaultPhoto,
	}

	if err := s.store.Create(ctx, user); err != nil {
		// The store's unique index closes the check-then-create race.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{UserResponse: toUserResponse(user), Token: token}, nil
}

// Login authenticates a user by email and password and returns the user
// summary with a fresh session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrFieldsRequired
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{UserResponse: toUserResponse(user), Token: token}, nil
}

// CheckSession reports whether the given token is a valid, unexpired
// session token. Any verification failure yields false, never an error.
func (s *AuthService) CheckSession(token string) bool {
	if token == "" {
		return false
	}
	_, err := crypto.ValidateToken(token, s.jwtSecret)
	return err == nil
}

func validatePasswordLength(password string) error {
	// Bounds are in characters, not bytes.
	n := utf8.RuneCountInString(password)
	if n < passwordMinLength || n > passwordMaxLength {
		return ErrPasswordLength
	}
	return nil
}

func toUserResponse(u *model.User) model.UserResponse {
	return model.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Phone: u.Phone,
		Bio:   u.Bio,
	}
}
