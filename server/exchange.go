package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
)

// Exchange is handed to every handler. It wraps one request and its response writer.
type Exchange struct {
	Writer  http.ResponseWriter
	Request *http.Request
}

// LogString will add the specified field and its value to the current request's access log line.
func (ex *Exchange) LogString(field string, value string) {
	ex.LogField(field, slog.StringValue(value))
}

// LogField will add the specified field and its value to the current request's access log line.
// It does nothing when the request is not logged.
//
// # Example
//
//	ex.LogField("bytes", slog.IntValue(len(body)))
func (ex *Exchange) LogField(field string, value slog.Value) {
	httplog.LogEntrySetField(ex.Context(), field, value)
}

// Context returns the request's context.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (ex *Exchange) Context() context.Context {
	return ex.Request.Context()
}

// Path returns the decoded path of the request.
func (ex *Exchange) Path() string {
	return ex.Request.URL.Path
}

// RenderHTML writes body as a complete text/html response.
func (ex *Exchange) RenderHTML(body string) {
	render.HTML(ex.Writer, ex.Request, body)
}

// Write sends body verbatim with the given content type and a 200 status.
// The response is committed once this returns, so a failing write only ends up on the access log.
func (ex *Exchange) Write(contentType string, body []byte) {
	ex.Writer.Header().Set("Content-Type", contentType)
	ex.Writer.WriteHeader(http.StatusOK)
	if _, err := ex.Writer.Write(body); err != nil {
		ex.LogString("write_error", err.Error())
	}
}
