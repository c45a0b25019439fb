package ports

import "context"

// Tracer opens spans around view-model actions and adapter calls.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span is one traced operation.
type Span interface {
	End()
	SetAttribute(key string, value any)
	RecordError(err error)
}
