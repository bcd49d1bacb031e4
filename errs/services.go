package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "unauthorized")
)

// Matching-service errors
var (
	ErrInvalidMatchingStatus = errors.New("invalid matching status")
	ErrScoreOutOfRange       = errors.New("score out of range")
)

func Malformed(payloadName string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, payloadName+" malformed")
}

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

// NewInvalidMatchingStatusError rejects a status value outside the fixed
// matching-status enumeration.
func NewInvalidMatchingStatusError(status string, validStatuses []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidMatchingStatus,
		Details:    fmt.Sprintf("Invalid status %q. Allowed values: %s", status, strings.Join(validStatuses, ", ")),
		Field:      "status",
	}
}

// NewScoreOutOfRangeError rejects a min_score parameter outside [0, 1].
func NewScoreOutOfRangeError(field string, value float64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrScoreOutOfRange,
		Details:    fmt.Sprintf("%s must be between 0.0 and 1.0, got %g", field, value),
		Field:      field,
	}
}

func IsInvalidMatchingStatus(err error) bool {
	return errors.Is(err, ErrInvalidMatchingStatus)
}
