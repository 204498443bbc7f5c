package accounts

import "errors"

// ErrNotFound is returned when an update or delete targets an id absent from
// the accounts collection.
var ErrNotFound = errors.New("account not found")
