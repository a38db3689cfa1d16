package models

// Item represents a single entry on a grocery list.
type Item struct {
	// ID is the unique identifier for the item, assigned by the store.
	ID int64

	// Name is the name of the item (e.g., "Milk", "Eggs").
	Name string

	// Price is the item price. Zero when not set.
	Price float64

	// Sequence is the order rank assigned when the item was created.
	Sequence int64

	// OwnerID references the list the item belongs to. Nil means unowned.
	OwnerID *int64
}
