package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/accountly/accountly-go/internal/middleware"
	"github.com/accountly/accountly-go/internal/model"
	"github.com/accountly/accountly-go/internal/repository"
	"github.com/accountly/accountly-go/internal/service"
)

// UserHandler handles HTTP requests for profile operations. All routes
// sit behind the auth middleware, which puts the user in the context.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleGetUser handles GET /getuser requests.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	resp, err := h.service.GetUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateUser handles GET /updateuser requests. Fields may arrive in
// a JSON body or as query parameters; anything omitted keeps its stored
// value. A supplied email is ignored.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	var req model.UpdateProfileRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	q := r.URL.Query()
	if req.Name == "" {
		req.Name = q.Get("name")
	}
	if req.Phone == "" {
		req.Phone = q.Get("phone")
	}
	if req.Bio == "" {
		req.Bio = q.Get("bio")
	}
	if req.Photo == "" {
		req.Photo = q.Get("photo")
	}

	resp, err := h.service.UpdateUser(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleChangePassword handles GET /changepassword requests.
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	var req model.ChangePasswordRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), user.ID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrFieldsRequired),
			errors.Is(err, service.ErrPasswordLength),
			errors.Is(err, service.ErrWrongPassword):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// decodeOptionalBody decodes a JSON body into v when one is present. An
// empty body is fine; these routes are GETs and may carry their fields in
// the query string instead. Reports false after writing an error response.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}

	return true
}
