package handler

import (
	"errors"
	"net/http"

	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/domain/entity"
	"health-connect-api/internal/usecase"
	"health-connect-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	authUsecase   usecase.AuthUsecase
	doctorUsecase usecase.DoctorProfileUsecase
}

func NewDoctorHandler(authUsecase usecase.AuthUsecase, doctorUsecase usecase.DoctorProfileUsecase) *DoctorHandler {
	return &DoctorHandler{
		authUsecase:   authUsecase,
		doctorUsecase: doctorUsecase,
	}
}

// CreateDoctor registers a doctor account. New doctors start unverified.
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeInvalidInput(w)
		return
	}

	resp, err := h.authUsecase.Register(r.Context(), entity.UserTypeDoctor.String(), fields)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, resp.Doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.NotFound(w, "Doctor profile not found")
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	doctor, err := h.doctorUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, doctor)
}

// UpdateProfile serves both PUT and PATCH as partial updates.
func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.DoctorUpdateSelfRequest
	if err := readUpdate(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	doctor, err := h.doctorUsecase.UpdateMyProfile(r.Context(), userID, &req)
	if err != nil {
		var verr *usecase.ValidationError
		switch {
		case errors.As(err, &verr):
			response.ValidationError(w, verr.Fields)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) GetVerifiedDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetVerifiedDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, doctors)
}
