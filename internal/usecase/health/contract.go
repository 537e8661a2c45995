package health

import "context"

// EnginePinger checks engine reachability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// ConnectionState reports whether the shared engine connection was built.
type ConnectionState interface {
	Initialized() bool
}
