package events

import "errors"

// ErrNotFound is returned when an update or delete targets an id absent from
// the events collection.
var ErrNotFound = errors.New("event not found")
