package health

import "context"

// CachePinger checks shared cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
