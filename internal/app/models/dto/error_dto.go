package dto

import "time"

// ErrorCode is the stable machine-readable identifier of an error response
type ErrorCode string

const (
	ErrorCodeInvalidCredentials    ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken          ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken          ErrorCode = "AUTH_006"
	ErrorCodeRevokedToken          ErrorCode = "AUTH_009"
	ErrorCodeRoleMismatch          ErrorCode = "AUTH_010"
	ErrorCodeMissingAppCredentials ErrorCode = "AUTH_011"
	ErrorCodeInvalidAppCredentials ErrorCode = "AUTH_012"
	ErrorCodeAccountDisabled       ErrorCode = "AUTH_013"

	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeConflict              ErrorCode = "RES_004"
	ErrorCodeInvalidState          ErrorCode = "RES_005"
	ErrorCodeDivision              ErrorCode = "RES_006"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
)

// ErrorSeverity is kept in the payload for clients that group errors by level
type ErrorSeverity string

const ErrorSeverityError ErrorSeverity = "ERROR"

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"AUTH_001"`
	Message  string        `json:"message" example:"Invalid email or password"`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField names the request field the error refers to
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps a detail in the failure envelope
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: detail, Timestamp: time.Now()}
}

// ValidationErrors collects one detail per failing field
type ValidationErrors struct {
	Errors []ErrorDetail `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]ErrorDetail, 0)}
}

// AddError appends a field failure
func (v *ValidationErrors) AddError(field, message string) *ValidationErrors {
	v.Errors = append(v.Errors, ErrorDetail{
		Code:     ErrorCodeValidationFailed,
		Message:  message,
		Field:    field,
		Severity: ErrorSeverityError,
	})
	return v
}
