package locations

import "context"

// Repository is the store contract for the locations collection. List returns
// entities in insertion order; Insert mints the id; Patch applies only the
// fields present in the partial payload; Clear returns the pre-clear snapshot.
type Repository interface {
	List(ctx context.Context) []Location
	GetByID(ctx context.Context, id string) (*Location, error)
	Insert(ctx context.Context, params CreateParams) (*Location, error)
	Patch(ctx context.Context, id string, params UpdateParams) (*Location, error)
	Remove(ctx context.Context, id string) (*Location, error)
	Clear(ctx context.Context) []Location
}
