package engine

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v4"
)

// Sentinel errors for engine operations.
var (
	ErrNotInitialized   = errors.New("engine: connection not initialized")
	ErrConnection       = errors.New("engine: connection failed")
	ErrIndexExists      = errors.New("engine: index already exists")
	ErrIndexNotFound    = errors.New("engine: index not found")
	ErrDocumentNotFound = errors.New("engine: document not found")
	ErrVersionConflict  = errors.New("engine: version conflict")

	// ErrClosed is returned once the provider has been closed. It matches
	// ErrNotInitialized so callers see an unavailable engine.
	ErrClosed = fmt.Errorf("%w: provider closed", ErrNotInitialized)
)

// Op constants name the engine endpoint for error context and metrics.
const (
	OpConnect       = "connect"
	OpPing          = "ping"
	OpCreateIndex   = "indices.create"
	OpDeleteIndex   = "indices.delete"
	OpIndexExists   = "indices.exists"
	OpGetMapping    = "indices.get_mapping"
	OpPutMapping    = "indices.put_mapping"
	OpIndex         = "index"
	OpGet           = "get"
	OpDelete        = "delete"
	OpDeleteByQuery = "delete_by_query"
	OpBulk          = "bulk"
	OpSearch        = "search"
)

// Engine error types mapped to sentinels.
const (
	typeIndexExists     = "resource_already_exists_exception"
	typeIndexNotFound   = "index_not_found_exception"
	typeVersionConflict = "version_conflict_engine_exception"
)

// Error carries the operation and the engine's structured rejection.
type Error struct {
	Op     string
	Status int
	Type   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(" [%d]", e.Status)
	}
	if e.Type != "" {
		msg += ": " + e.Type
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Type == "" && e.Reason == "" && e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorCause is the engine's {"type","reason"} error object.
type ErrorCause struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// wrapError converts a non-2xx reply into *Error, keeping the engine's error
// type and reason as decoded by the client library.
func wrapError(op string, resp *opensearch.Response, err error) *Error {
	e := &Error{Op: op, Status: resp.StatusCode}

	var (
		structErr  *opensearch.StructError
		stringErr  *opensearch.StringError
		reasonErr  *opensearch.ReasonError
		messageErr *opensearch.MessageError
		plainErr   *opensearch.Error
	)
	switch {
	case errors.As(err, &structErr):
		e.Type, e.Reason = structErr.Err.Type, structErr.Err.Reason
	case errors.As(err, &stringErr):
		e.Reason = stringErr.Err
	case errors.As(err, &reasonErr):
		e.Reason = reasonErr.Reason
	case errors.As(err, &messageErr):
		e.Reason = messageErr.Message
	case errors.As(err, &plainErr):
		e.Reason = plainErr.Err
	}
	if e.Type == "" && e.Reason == "" {
		e.Reason = http.StatusText(resp.StatusCode)
	}

	e.Err = classify(e.Status, e.Type)
	return e
}

func classify(status int, errType string) error {
	switch errType {
	case typeIndexExists:
		return ErrIndexExists
	case typeIndexNotFound:
		return ErrIndexNotFound
	case typeVersionConflict:
		return ErrVersionConflict
	}
	switch status {
	case http.StatusConflict:
		return ErrVersionConflict
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrConnection
	}
	return nil
}
