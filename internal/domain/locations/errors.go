package locations

import "errors"

// ErrNotFound is returned when an update or delete targets an id absent from
// the locations collection.
var ErrNotFound = errors.New("location not found")
