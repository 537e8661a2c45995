package batch

import (
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
)

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a bulk request.
type Result struct {
	position   int
	id         string
	status     ItemStatus
	httpStatus int
	errType    string
	reason     string
}

// NewOK creates a successful batch result.
func NewOK(position int, id string, httpStatus int) Result {
	return Result{position: position, id: id, status: StatusOK, httpStatus: httpStatus}
}

// NewError creates a failed batch result carrying the engine's rejection.
func NewError(position int, id string, httpStatus int, errType, reason string) Result {
	return Result{
		position: position, id: id, status: StatusError,
		httpStatus: httpStatus, errType: errType, reason: reason,
	}
}

// Position returns the zero-based index of the item in the request.
func (r Result) Position() int { return r.position }

// ID returns the item identifier (engine-assigned when the caller gave none).
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// HTTPStatus returns the engine's per-item status code.
func (r Result) HTTPStatus() int { return r.httpStatus }

// ErrorType returns the engine error type for failed items.
func (r Result) ErrorType() string { return r.errType }

// Reason returns the engine error reason for failed items.
func (r Result) Reason() string { return r.reason }

// Report aggregates per-item outcomes of one bulk request.
type Report struct {
	took   int64
	errors bool
	items  []Result
}

// NewReport creates a bulk report. engineErrors is the engine's aggregate flag.
func NewReport(took int64, engineErrors bool, items []Result) Report {
	return Report{took: took, errors: engineErrors, items: items}
}

// Took returns the engine-reported processing time in milliseconds.
func (r Report) Took() int64 { return r.took }

// Items returns all per-item outcomes in request order.
func (r Report) Items() []Result { return r.items }

// Errors reports whether any item failed.
func (r Report) Errors() bool {
	if r.errors {
		return true
	}
	for _, it := range r.items {
		if it.status == StatusError {
			return true
		}
	}
	return false
}

// Succeeded counts successful items.
func (r Report) Succeeded() int {
	n := 0
	for _, it := range r.items {
		if it.status == StatusOK {
			n++
		}
	}
	return n
}

// Failed returns the failed subset for retry.
func (r Report) Failed() []Result {
	var failed []Result
	for _, it := range r.items {
		if it.status == StatusError {
			failed = append(failed, it)
		}
	}
	return failed
}

// Err returns ErrPartialFailure when some items failed, nil otherwise.
func (r Report) Err() error {
	if !r.Errors() {
		return nil
	}
	return fmt.Errorf("%d of %d items failed: %w",
		len(r.Failed()), len(r.items), domain.ErrPartialFailure)
}
