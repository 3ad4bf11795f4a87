package handler

import (
	"errors"
	"net/http"

	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/usecase"
	"health-connect-api/pkg/response"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// ListUsers serves the paginated account directory.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetUserFromContext(r.Context())

	q := r.URL.Query()
	req := dto.UserListRequest{
		UserType: q.Get("user_type"),
		Search:   q.Get("search"),
		Page:     q.Get("page"),
	}

	resp, err := h.userUsecase.ListUsers(r.Context(), caller, &req)
	if err != nil {
		var verr *usecase.ValidationError
		switch {
		case errors.Is(err, usecase.ErrUnauthorized):
			response.Unauthorized(w, "Not authenticated")
		case errors.Is(err, usecase.ErrForbidden):
			response.Forbidden(w, "Permission denied. Only doctors can view all users.")
		case errors.As(err, &verr):
			response.ValidationError(w, verr.Fields)
		default:
			response.InternalServerError(w, "Failed to list users")
		}
		return
	}

	response.Success(w, http.StatusOK, resp)
}
