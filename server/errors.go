package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/render"
	"github.com/prior-it/mdxpress/core"
)

// HTTPError carries the status code and the public message for a failed request.
// Message is what the client sees; Err is only logged.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusFor returns the status code and public message for err.
func StatusFor(err error) (int, string) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Message
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrRouteNotMatched):
		return http.StatusNotFound, "not found"
	}
	return http.StatusInternalServerError, "internal server error"
}

// DefaultErrorHandler writes the public message for err as a plain-text response.
// The internal error is attached to the request's access log line and, for server errors, reported
// to Sentry when it is enabled.
func DefaultErrorHandler(ex *Exchange, err error) {
	code, msg := StatusFor(err)
	ex.LogString("error", err.Error())
	if code >= http.StatusInternalServerError {
		if hub := sentry.GetHubFromContext(ex.Context()); hub != nil {
			hub.CaptureException(err)
		}
	}
	render.Status(ex.Request, code)
	render.PlainText(ex.Writer, ex.Request, msg)
}
