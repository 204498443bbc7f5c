package accounts

import "context"

// Repository is the store contract for the accounts collection. List returns
// entities in insertion order; Insert mints the id; Patch applies only the
// fields present in the partial payload; Clear returns the pre-clear snapshot.
type Repository interface {
	List(ctx context.Context) []Account
	GetByID(ctx context.Context, id string) (*Account, error)
	Insert(ctx context.Context, params CreateParams) (*Account, error)
	Patch(ctx context.Context, id string, params UpdateParams) (*Account, error)
	Remove(ctx context.Context, id string) (*Account, error)
	Clear(ctx context.Context) []Account
}
