package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
)

func newTestAuthService() (*AuthService, *repository.MemoryUserStore) {
	store := repository.NewMemoryUserStore()
	return NewAuthService(store, "test-secret", time.Hour), store
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if resp.ID == "" {
		t.Error("Register() response has empty ID")
	}
	if resp.Name != "Ann" || resp.Email != "ann@x.com" {
		t.Errorf("Register() summary = %+v", resp.UserResponse)
	}
	if resp.Photo != model.DefaultPhoto {
		t.Errorf("Register() photo = %q, want default", resp.Photo)
	}
	if resp.Token == "" {
		t.Error("Register() returned no token")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, store := newTestAuthService()

	cases := []model.RegisterRequest{
		{Name: "", Email: "ann@x.com", Password: "secret1"},
		{Name: "Ann", Email: "", Password: "secret1"},
		{Name: "Ann", Email: "ann@x.com", Password: ""},
		{Name: "   ", Email: "ann@x.com", Password: "secret1"},
	}
	for _, req := range cases {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrFieldsRequired) {
			t.Errorf("Register(%+v) error = %v, want ErrFieldsRequired", req, err)
		}
	}
	if store.Len() != 0 {
		t.Errorf("store has %d records, want 0", store.Len())
	}
}

func TestRegisterPasswordLength(t *testing.T) {
	svc, store := newTestAuthService()

	for _, password := range []string{"five5", strings.Repeat("x", 21)} {
		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Name:     "Ann",
			Email:    "ann@x.com",
			Password: password,
		})
		if !errors.Is(err, ErrPasswordLength) {
			t.Errorf("Register(password len %d) error = %v, want ErrPasswordLength", len(password), err)
		}
	}
	if store.Len() != 0 {
		t.Errorf("store has %d records, want 0", store.Len())
	}

	// 6 and 20 characters are both inside the valid range.
	for i, password := range []string{"sixsix", strings.Repeat("x", 20)} {
		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Name:     "Ann",
			Email:    []string{"a6@x.com", "a20@x.com"}[i],
			Password: password,
		})
		if err != nil {
			t.Errorf("Register(password len %d) unexpected error: %v", len(password), err)
		}
	}
}

func TestRegisterPasswordLengthCountsCharacters(t *testing.T) {
	svc, store := newTestAuthService()

	// 5 characters is too short even when the UTF-8 encoding is longer
	// than 6 bytes.
	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "ααααα", // 5 runes, 10 bytes
	})
	if !errors.Is(err, ErrPasswordLength) {
		t.Errorf("Register(5-rune password) error = %v, want ErrPasswordLength", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d records, want 0", store.Len())
	}

	// 20 characters is valid even when the encoding exceeds 20 bytes.
	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: strings.Repeat("α", 20), // 20 runes, 40 bytes
	})
	if err != nil {
		t.Errorf("Register(20-rune password) unexpected error: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newTestAuthService()

	req := model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register() error = %v, want ErrEmailTaken", err)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d records, want 1", store.Len())
	}
}

func TestLoginAfterRegister(t *testing.T) {
	svc, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if resp.ID != reg.ID {
		t.Errorf("Login() ID = %q, want %q", resp.ID, reg.ID)
	}
	if !svc.CheckSession(resp.Token) {
		t.Error("CheckSession() = false for freshly issued token")
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Login(context.Background(), model.LoginRequest{Email: "", Password: "secret1"}); !errors.Is(err, ErrFieldsRequired) {
		t.Errorf("Login() error = %v, want ErrFieldsRequired", err)
	}
	if _, err := svc.Login(context.Background(), model.LoginRequest{Email: "ann@x.com", Password: ""}); !errors.Is(err, ErrFieldsRequired) {
		t.Errorf("Login() error = %v, want ErrFieldsRequired", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ghost@x.com",
		Password: "secret1",
	})
	if !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ann@x.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestCheckSessionInvalidTokens(t *testing.T) {
	svc, _ := newTestAuthService()

	if svc.CheckSession("") {
		t.Error("CheckSession(\"\") = true, want false")
	}
	if svc.CheckSession("garbage") {
		t.Error("CheckSession(garbage) = true, want false")
	}

	other := NewAuthService(repository.NewMemoryUserStore(), "other-secret", time.Hour)
	resp, err := other.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if svc.CheckSession(resp.Token) {
		t.Error("CheckSession() = true for token signed with a different secret")
	}
}

func TestCheckSessionExpired(t *testing.T) {
	store := repository.NewMemoryUserStore()
	svc := NewAuthService(store, "test-secret", -time.Minute)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if svc.CheckSession(resp.Token) {
		t.Error("CheckSession() = true for expired token")
	}
}
