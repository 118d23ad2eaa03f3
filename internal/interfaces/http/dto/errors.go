package dto

import (
	"errors"
	"net/http"

	"github.com/thankyou/backend/internal/domain/shared"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Authorization failures are answered with 401.
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:           http.StatusBadRequest,
	shared.CodeInvalidInput:         http.StatusBadRequest,
	shared.CodeUnsupportedReference: http.StatusBadRequest,
	shared.CodeDuplicateName:        http.StatusBadRequest,
	shared.CodeInvalidName:          http.StatusBadRequest,
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeForbidden:            http.StatusUnauthorized,
	shared.CodeRepository:           http.StatusInternalServerError,

	"EMPTY_DESCRIPTION": http.StatusBadRequest,
	"NOTHING_THANKED":   http.StatusBadRequest,
	"NO_AUTHOR":         http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are server errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusForError resolves the HTTP status for err. Repository failures win
// over any other code they carry.
func StatusForError(err error) int {
	if errors.Is(err, shared.ErrRepository) {
		return http.StatusInternalServerError
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return GetHTTPStatus(domainErr.Code)
	}
	for _, sentinel := range []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrForbidden,
		shared.ErrInvalidInput,
		shared.NewDomainError(shared.CodeValidation, ""),
		shared.NewDomainError(shared.CodeUnsupportedReference, ""),
	} {
		if errors.Is(err, sentinel) {
			return GetHTTPStatus(sentinel.Code)
		}
	}
	return http.StatusInternalServerError
}
