package ports

import "context"

// Collection is the four-operation contract every resource screen drives
// against its own API namespace. T is the resource, F its submit form.
type Collection[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, id string, form F) (T, error)
	Delete(ctx context.Context, id string) error
}

// Restorable is implemented by collections whose resources are soft-deleted
// and can be brought back via an undo-delete endpoint.
type Restorable[T any] interface {
	Restore(ctx context.Context, id string) (T, error)
}

// Lister is the read-only subset used by review screens.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}
