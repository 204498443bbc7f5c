// Package accounts holds the account entity, its repository contract, and the
// mutation dispatcher that pairs store writes with bus notifications.
package accounts

// Account is a registered member that can own events and participate in them.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateParams carries the full payload for a new account. The id is minted
// by the store, never supplied by the caller.
type CreateParams struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateParams is a partial account payload. A nil field is a no-op; a
// non-nil field overwrites, including with an explicit empty value.
type UpdateParams struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply merges the present fields onto acct, leaving omitted fields at their
// prior values.
func (p UpdateParams) Apply(acct *Account) {
	if p.Username != nil {
		acct.Username = *p.Username
	}
	if p.Email != nil {
		acct.Email = *p.Email
	}
}

// Bus topics for account mutations.
const (
	TopicCreated = "account.created"
	TopicUpdated = "account.updated"
	TopicDeleted = "account.deleted"
)
