package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkshelf/inkshelf-go/internal/middleware"
	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/service"
	"github.com/inkshelf/inkshelf-go/internal/validate"
)

// AuthHandler handles HTTP requests for sign-up, sign-in and sign-out.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignUp handles POST /api/user/signUp requests.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageBody("Request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		var fe validate.FieldErrors
		switch {
		case errors.As(err, &fe):
			writeJSON(w, http.StatusBadRequest, validationBody("Error when creating the user", fe))
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, messageBody("Username already exists"))
		default:
			writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleSignIn handles POST /api/user/signIn requests.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageBody("Request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid request body"))
		return
	}

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			writeJSON(w, http.StatusBadRequest, messageBody("Username and password are required fields"))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, messageBody("User not found"))
		case errors.Is(err, service.ErrInvalidPassword):
			writeJSON(w, http.StatusBadRequest, messageBody("Invalid password"))
		default:
			writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSignOut handles GET /api/user/signOut requests.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	if err := h.service.SignOut(r.Context(), user.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, messageBody("User signed out successfully"))
}
