package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidRole        = errors.New(`invalid user_type. Must be "patient" or "doctor"`)
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("permission denied")
	ErrAccountDisabled    = errors.New("user account is disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username/email and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrPatientNotFound    = errors.New("patient profile not found")
	ErrDoctorNotFound     = errors.New("doctor profile not found")
)

// NonFieldErrorsKey collects errors that do not belong to a single field.
const NonFieldErrorsKey = "non_field_errors"

// Field error messages shared by registration and profile updates.
const (
	MsgPasswordMismatch = "Passwords do not match."
	MsgUsernameTaken    = "A user with that username already exists."
	MsgEmailTaken       = "user with this email already exists."
	MsgLicenseTaken     = "doctor with this license number already exists."
	MsgInvalidInput     = "Invalid input."
	MsgInvalidDate      = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgInvalidInteger   = "A valid integer is required."
	MsgRequired         = "This field is required."
	MsgTooLong          = "Ensure this field has fewer characters."
	MsgInvalidValue     = "This field is invalid."
)

// ValidationError reports every rejected field of a request at once.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the messages of field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge copies all messages from fields.
func (e *ValidationError) Merge(fields map[string][]string) {
	for field, msgs := range fields {
		e.Fields[field] = append(e.Fields[field], msgs...)
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	e := NewValidationError()
	e.Add(field, msg)
	return e
}

// uniqueConstraints maps store unique constraints to the field they guard.
var uniqueConstraints = []struct {
	constraint string
	field      string
	message    string
}{
	{"uni_users_username", "username", MsgUsernameTaken},
	{"uni_users_email", "email", MsgEmailTaken},
	{"uni_doctor_profiles_license_number", "license_number", MsgLicenseTaken},
}

// storeViolation translates an integrity or data error raised by the store
// into a field error. Unique violations are matched by constraint name, the
// other classes by the column Postgres reports. It returns nil for errors
// that did not come from a rejected row.
func storeViolation(err error) *ValidationError {
	for _, c := range uniqueConstraints {
		if isDuplicateKeyError(err, c.constraint) {
			return fieldError(c.field, c.message)
		}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	var msg string
	switch pgErr.Code {
	case "22001": // string_data_right_truncation
		msg = MsgTooLong
	case "22003": // numeric_value_out_of_range
		msg = MsgInvalidInteger
	case "23502": // not_null_violation
		msg = MsgRequired
	case "23514", "23505": // check_violation, unmapped unique_violation
		msg = MsgInvalidValue
	default:
		return nil
	}

	field := pgErr.ColumnName
	if field == "" {
		field = NonFieldErrorsKey
	}
	return fieldError(field, msg)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// on a constraint containing constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
