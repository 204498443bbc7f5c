// Package locations holds the location entity, its repository contract, and
// its mutation dispatcher. Locations are deliberately not wired to any
// live-update channel; their dispatcher mutates the store and publishes
// nothing, matching the reference behavior.
package locations

// Location is a named place where events happen.
type Location struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateParams carries the full payload for a new location.
type CreateParams struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
}

// UpdateParams is a partial location payload. A nil field is a no-op; a
// non-nil field overwrites, including with an explicit zero value.
type UpdateParams struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// Apply merges the present fields onto loc, leaving omitted fields at their
// prior values.
func (p UpdateParams) Apply(loc *Location) {
	if p.Name != nil {
		loc.Name = *p.Name
	}
	if p.Description != nil {
		loc.Description = *p.Description
	}
	if p.Latitude != nil {
		loc.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		loc.Longitude = *p.Longitude
	}
}
