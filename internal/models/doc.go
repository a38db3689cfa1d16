// Package models defines the core domain models for grocer.
//
// # Hierarchy
//
// The engine stores exactly three entity kinds in a fixed two-level chain:
//   - Account: a registered user profile; owns zero or more Lists
//   - List: a named grocery list; owns zero or more Items
//   - Item: a single entry on a list, with a price
//
// # Identity and sequence
//
// Every entity has a system-assigned integer ID that is never reused.
// Lists and Items also carry a Sequence, an order rank drawn from a per-kind
// counter at creation time. Sequence is independent of ID and is never
// reassigned on update.
//
// # Ownership
//
// Owner references are stored as ID pointers rather than nested structs.
// A nil OwnerID means the row is unowned. A non-nil OwnerID must reference an
// existing parent at the moment the row is written.
package models
