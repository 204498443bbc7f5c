// Package participations holds the participation entity (an account attending
// an event), its repository contract, and its mutation dispatcher.
package participations

// Participation links an account to an event it attends. Both references are
// opaque and may dangle.
type Participation struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	EventID   string `json:"event_id"`
}

// CreateParams carries the full payload for a new participation.
type CreateParams struct {
	AccountID string `json:"account_id" validate:"required"`
	EventID   string `json:"event_id" validate:"required"`
}

// UpdateParams is a partial participation payload. A nil field is a no-op; a
// non-nil field overwrites.
type UpdateParams struct {
	AccountID *string `json:"account_id,omitempty"`
	EventID   *string `json:"event_id,omitempty"`
}

// Apply merges the present fields onto part, leaving omitted fields at their
// prior values.
func (p UpdateParams) Apply(part *Participation) {
	if p.AccountID != nil {
		part.AccountID = *p.AccountID
	}
	if p.EventID != nil {
		part.EventID = *p.EventID
	}
}

// Bus topics for participation mutations.
const (
	TopicCreated = "participation.created"
	TopicUpdated = "participation.updated"
	TopicDeleted = "participation.deleted"
)
