package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"health-connect-api/internal/normalizer"
	"health-connect-api/internal/usecase"
	"health-connect-api/pkg/response"
)

const maxMultipartMemory = 10 << 20

var errInvalidBody = errors.New("invalid request body")

// readFields decodes a JSON, urlencoded or multipart body into a raw field
// mapping. Form fields keep their first value.
func readFields(r *http.Request) (map[string]interface{}, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, errInvalidBody
		}
		return normalizer.FromValues(r.PostForm), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
		return normalizer.FromValues(r.PostForm), nil
	}

	fields := make(map[string]interface{})
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, errInvalidBody
	}
	return fields, nil
}

// writeInvalidInput reports a body that could not be parsed at all.
func writeInvalidInput(w http.ResponseWriter) {
	response.ValidationError(w, map[string][]string{
		usecase.NonFieldErrorsKey: {usecase.MsgInvalidInput},
	})
}

// writeRegisterError maps registration failures shared by every signup path.
func writeRegisterError(w http.ResponseWriter, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, usecase.ErrInvalidRole):
		response.BadRequest(w, `Invalid user_type. Must be "patient" or "doctor".`)
	default:
		// Anything the store did not classify is still a rejected signup.
		msg := err.Error()
		response.JSON(w, http.StatusBadRequest, registerErrorBody{Error: msg, Detail: msg})
	}
}

type registerErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// readUpdate decodes a profile update body of any supported content type
// into req.
func readUpdate(r *http.Request, req interface{}) error {
	fields, err := readFields(r)
	if err != nil {
		return err
	}
	if err := normalizer.Decode(fields, req); err != nil {
		return errInvalidBody
	}
	return nil
}
