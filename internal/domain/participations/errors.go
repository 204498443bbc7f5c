package participations

import "errors"

// ErrNotFound is returned when an update or delete targets an id absent from
// the participations collection.
var ErrNotFound = errors.New("participation not found")
