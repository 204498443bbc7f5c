// Package events holds the scheduled-event entity, its repository contract,
// and the mutation dispatcher that pairs store writes with bus notifications.
package events

// Event is a scheduled event. OwnerID and LocationID are opaque references
// copied verbatim from input; they are never checked against the accounts or
// locations collections at write time, so they may dangle.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	OwnerID     string `json:"owner_id"`
	LocationID  string `json:"location_id"`
}

// CreateParams carries the full payload for a new event.
type CreateParams struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	OwnerID     string `json:"owner_id" validate:"required"`
	LocationID  string `json:"location_id" validate:"required"`
}

// UpdateParams is a partial event payload. A nil field is a no-op; a non-nil
// field overwrites, including with an explicit empty value.
type UpdateParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	OwnerID     *string `json:"owner_id,omitempty"`
	LocationID  *string `json:"location_id,omitempty"`
}

// Apply merges the present fields onto ev, leaving omitted fields at their
// prior values.
func (p UpdateParams) Apply(ev *Event) {
	if p.Title != nil {
		ev.Title = *p.Title
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.Date != nil {
		ev.Date = *p.Date
	}
	if p.StartTime != nil {
		ev.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		ev.EndTime = *p.EndTime
	}
	if p.OwnerID != nil {
		ev.OwnerID = *p.OwnerID
	}
	if p.LocationID != nil {
		ev.LocationID = *p.LocationID
	}
}

// Bus topics for event mutations.
const (
	TopicCreated = "event.created"
	TopicUpdated = "event.updated"
	TopicDeleted = "event.deleted"
)
