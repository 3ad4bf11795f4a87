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

type PatientHandler struct {
	authUsecase    usecase.AuthUsecase
	patientUsecase usecase.PatientProfileUsecase
}

func NewPatientHandler(authUsecase usecase.AuthUsecase, patientUsecase usecase.PatientProfileUsecase) *PatientHandler {
	return &PatientHandler{
		authUsecase:    authUsecase,
		patientUsecase: patientUsecase,
	}
}

// CreatePatient registers a patient account and returns its profile.
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		writeInvalidInput(w)
		return
	}

	resp, err := h.authUsecase.Register(r.Context(), entity.UserTypePatient.String(), fields)
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, resp.Patient)
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.NotFound(w, "Patient profile not found")
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, patient)
}

func (h *PatientHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	patient, err := h.patientUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient profile not found")
			return
		}
		response.InternalServerError(w, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, patient)
}

// UpdateProfile serves both PUT and PATCH as partial updates.
func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.PatientUpdateSelfRequest
	if err := readUpdate(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	patient, err := h.patientUsecase.UpdateMyProfile(r.Context(), userID, &req)
	if err != nil {
		var verr *usecase.ValidationError
		switch {
		case errors.As(err, &verr):
			response.ValidationError(w, verr.Fields)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, patient)
}
