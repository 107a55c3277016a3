package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// ErrInvalidState is returned when a referential precondition does not hold,
	// e.g. a supervisor that is not part of the requested zone.
	ErrInvalidState = errors.New("invalid state")

	// ErrDivision is returned when a workload partition is requested over zero supervisors.
	ErrDivision = errors.New("cannot partition students over zero supervisors")

	// Authentication errors
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalid          = errors.New("invalid token")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrMissingAppCredentials = errors.New("missing application credentials")
	ErrInvalidAppCredentials = errors.New("invalid application credentials")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrRoleMismatch     = errors.New("role mismatch")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidRole      = errors.New("invalid role")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Supervision errors
var (
	ErrZoneNotFound       = NewResourceNotFoundError("zone not found")
	ErrSupervisorNotFound = NewResourceNotFoundError("supervisor not found")
	ErrStudentNotFound    = NewResourceNotFoundError("student not found")
	ErrNoAssignedStudents = NewResourceNotFoundError("no students assigned to supervisor")
	ErrVisitNotFound      = NewResourceNotFoundError("visit not found")
	ErrNoActiveInternship = NewResourceNotFoundError("no active internship for student")
	ErrNotZoneLeader      = NewForbiddenError("only the zone leader can manage assignments")
)

// ErrSupervisorNotInZone is returned when a supervisor belongs to another zone.
var ErrSupervisorNotInZone = &CustomError{
	Err:     ErrInvalidState,
	Message: "supervisor not part of zone",
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError carries a client-facing message on top of a sentinel error
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
