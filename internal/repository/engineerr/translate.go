// Package engineerr translates engine errors into the domain error taxonomy.
// No engine error type crosses the repository boundary.
package engineerr

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docgate/internal/domain"
	"github.com/kailas-cloud/docgate/internal/engine"
)

// Translate maps an engine error to a domain error, keeping the original
// message for diagnostics. Context cancellation passes through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		if errors.Is(err, ctxErr) {
			return fmt.Errorf("engine request: %w", ctxErr)
		}
	}

	switch {
	case errors.Is(err, engine.ErrNotInitialized):
		return fmt.Errorf("%w: %s", domain.ErrNotInitialized, err.Error())
	case errors.Is(err, engine.ErrConnection):
		return fmt.Errorf("%w: %s", domain.ErrConnection, err.Error())
	case errors.Is(err, engine.ErrIndexNotFound), errors.Is(err, engine.ErrDocumentNotFound):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, err.Error())
	case errors.Is(err, engine.ErrVersionConflict):
		return fmt.Errorf("%w: %s", domain.ErrConflict, err.Error())
	case errors.Is(err, engine.ErrIndexExists):
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, err.Error())
	}

	var e *engine.Error
	if errors.As(err, &e) && (e.Type != "" || e.Reason != "") {
		return domain.NewRejected(e.Type, e.Reason)
	}
	return domain.NewRejected("", err.Error())
}
