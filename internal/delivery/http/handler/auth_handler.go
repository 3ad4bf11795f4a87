package handler

import (
	"errors"
	"net/http"

	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/usecase"
	"health-connect-api/pkg/response"

	"github.com/spf13/cast"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Signup registers a patient or doctor chosen by user_type and returns the
// new account with its token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeInvalidInput(w)
		return
	}

	resp, err := h.authUsecase.Register(r.Context(), cast.ToString(fields["user_type"]), fields)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, resp)
}

// Login accepts either the email or the username in the username field.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeInvalidInput(w)
		return
	}

	req := dto.LoginRequest{
		Username: cast.ToString(fields["username"]),
		Password: cast.ToString(fields["password"]),
	}

	resp, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingCredentials):
			response.BadRequest(w, "Username/email and password are required")
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid credentials")
		case errors.Is(err, usecase.ErrAccountDisabled):
			response.Unauthorized(w, "User account is disabled")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, resp)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, user)
}
