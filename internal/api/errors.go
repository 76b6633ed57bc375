package api

import "net/http"

// ErrorKind is the machine-readable "code" of every error response.
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindInvalidCredentials  ErrorKind = "INVALID_CREDENTIALS"
	KindUnauthenticated     ErrorKind = "UNAUTHENTICATED"
	KindForbidden           ErrorKind = "FORBIDDEN"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindUserNotFound        ErrorKind = "USER_NOT_FOUND"
	KindRegistrationFailed  ErrorKind = "REGISTRATION_FAILED"
	KindProfileUpdateFailed ErrorKind = "PROFILE_UPDATE_FAILED"
	KindInternal            ErrorKind = "INTERNAL_ERROR"
)

var statusForKind = map[ErrorKind]int{
	KindValidation:          http.StatusBadRequest,
	KindInvalidCredentials:  http.StatusBadRequest,
	KindUnauthenticated:     http.StatusUnauthorized,
	KindForbidden:           http.StatusForbidden,
	KindNotFound:            http.StatusNotFound,
	KindUserNotFound:        http.StatusNotFound,
	KindRegistrationFailed:  http.StatusInternalServerError,
	KindProfileUpdateFailed: http.StatusInternalServerError,
	KindInternal:            http.StatusInternalServerError,
}

func (k ErrorKind) Status() int {
	if code, ok := statusForKind[k]; ok {
		return code
	}
	return http.StatusInternalServerError
}
