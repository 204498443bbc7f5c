package events

import "context"

// Repository is the store contract for the events collection. List returns
// entities in insertion order; Insert mints the id; Patch applies only the
// fields present in the partial payload; Clear returns the pre-clear snapshot.
type Repository interface {
	List(ctx context.Context) []Event
	GetByID(ctx context.Context, id string) (*Event, error)
	Insert(ctx context.Context, params CreateParams) (*Event, error)
	Patch(ctx context.Context, id string, params UpdateParams) (*Event, error)
	Remove(ctx context.Context, id string) (*Event, error)
	Clear(ctx context.Context) []Event
}
