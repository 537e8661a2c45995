package docgate

import "github.com/kailas-cloud/docgate/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotInitialized  = domain.ErrNotInitialized
	ErrConnection      = domain.ErrConnection
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrNotFound        = domain.ErrNotFound
	ErrConflict        = domain.ErrConflict
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrPartialFailure  = domain.ErrPartialFailure
	ErrEngineRejected  = domain.ErrEngineRejected
)
