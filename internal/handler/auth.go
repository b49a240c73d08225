package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/accountly/accountly-go/internal/middleware"
	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
	"github.com/accountly/accountly-go/internal/service"
)

// AuthHandler handles HTTP requests for registration, login, logout and
// session checks.
type AuthHandler struct {
	service    *service.AuthService
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler. sessionTTL controls the
// session cookie lifetime and should match the token expiry.
func NewAuthHandler(svc *service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: svc, sessionTTL: sessionTTL}
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired),
			errors.Is(err, service.ErrPasswordLength),
			errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	h.setSessionCookie(w, resp.Token)
	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired),
			errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("user not found, please sign up"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	h.setSessionCookie(w, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles GET /logout requests. It only clears the cookie;
// tokens already handed out stay valid until they expire.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

// HandleLoggedIn handles GET /loggedin requests and responds with a bare
// JSON boolean. Verification failures are reported as false, never as an
// error status.
func (h *AuthHandler) HandleLoggedIn(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		token = cookie.Value
	}

	writeJSON(w, http.StatusOK, h.service.CheckSession(token))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
