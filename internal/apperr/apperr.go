package apperr

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error into one of the failure
// categories the HTTP layer knows how to report.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindDuplicate
	KindAuthorization
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Message: msg} }
func Duplicate(msg string) *Error     { return &Error{Kind: KindDuplicate, Message: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

// Wrap attaches an underlying cause without changing the user-facing message.
func Wrap(e *Error, cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

// StatusCode maps an error to its HTTP status. Unrecognized errors
// report as internal failures.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindDuplicate:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Abort writes the error response and stops the handler chain. Outside
// of production the underlying cause is included for debugging.
func Abort(c *gin.Context, err error) {
	status := StatusCode(err)

	message := "Something went wrong"
	var e *Error
	if errors.As(err, &e) {
		message = e.Message
	}

	body := gin.H{"message": message}
	if os.Getenv("APP_ENV") != "production" && err != nil {
		body["detail"] = err.Error()
	}

	c.AbortWithStatusJSON(status, body)
}
