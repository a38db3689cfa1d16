package models

// List represents a grocery list.
// Lists own items; deleting a list deletes every item on it.
type List struct {
	// ID is the unique identifier for the list, assigned by the store.
	ID int64

	// Name is the display name of the list (e.g., "Groceries", "Party").
	Name string

	// Sequence is the order rank assigned when the list was created.
	Sequence int64

	// OwnerID references the owning account. Nil means unowned.
	OwnerID *int64
}
