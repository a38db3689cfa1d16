package models

// Account represents a registered user profile.
// Accounts own lists; deleting an account deletes every list it owns.
type Account struct {
	// ID is the unique identifier for the account, assigned by the store.
	ID int64

	// Username is the display name of the account.
	Username string

	// Email is the contact address of the account.
	Email string

	// Password is the account credential as supplied by the caller.
	// Hashing happens upstream of the engine.
	Password string
}
