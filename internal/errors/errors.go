package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrWrongOldPassword is returned when a password change supplies a bad old password.
	ErrWrongOldPassword = errors.New("incorrect old password")
	// ErrInvalidResetToken is returned when the user/token pair does not match.
	// Deliberately covers both misses so the response cannot be used to
	// probe which accounts exist.
	ErrInvalidResetToken = errors.New("invalid token or user")
	// ErrResetTokenExpired is returned when a reset token is past its window.
	ErrResetTokenExpired = errors.New("token expired")
	// ErrSquareOutOfRange is returned when a stats update names a square off the board.
	ErrSquareOutOfRange = errors.New("current_square outside board range")
	// ErrInvalidTaskIndex is returned when a stats update sets current_task below -1.
	ErrInvalidTaskIndex = errors.New("current_task must be -1 or a task id")
	// ErrTaskNotFound is returned when a task catalog lookup fails.
	ErrTaskNotFound = errors.New("task not found")
	// ErrChanceNotFound is returned when a chance catalog lookup fails.
	ErrChanceNotFound = errors.New("chance not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrWrongOldPassword:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_OLD_PASSWORD")
	case ErrInvalidResetToken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	case ErrResetTokenExpired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESET_TOKEN_EXPIRED")
	case ErrSquareOutOfRange:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SQUARE_OUT_OF_RANGE")
	case ErrInvalidTaskIndex:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TASK_INDEX")
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrChanceNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CHANCE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
