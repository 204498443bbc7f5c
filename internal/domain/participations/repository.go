package participations

import "context"

// Repository is the store contract for the participations collection. List
// returns entities in insertion order; Insert mints the id; Patch applies
// only the fields present in the partial payload; Clear returns the pre-clear
// snapshot.
type Repository interface {
	List(ctx context.Context) []Participation
	GetByID(ctx context.Context, id string) (*Participation, error)
	Insert(ctx context.Context, params CreateParams) (*Participation, error)
	Patch(ctx context.Context, id string, params UpdateParams) (*Participation, error)
	Remove(ctx context.Context, id string) (*Participation, error)
	Clear(ctx context.Context) []Participation
}
