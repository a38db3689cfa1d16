package models

// Status codes returned by upsert and delete operations.
const (
	StatusNotFound = 0
	StatusOK       = 1
)

// Status messages. Clients match on these strings, so they must not change.
const (
	MsgAccountUpdated  = "Updated profile"
	MsgAccountCreated  = "Account has been created"
	MsgAccountDeleted  = "Deleted account"
	MsgAccountNotFound = "User does not exist"

	MsgListUpdated  = "Updated list"
	MsgListCreated  = "Created list"
	MsgListDeleted  = "Deleted list"
	MsgListNotFound = "List does not exist"

	MsgItemUpdated  = "Updated item"
	MsgItemCreated  = "Added item to list"
	MsgItemDeleted  = "Removed item from list"
	MsgItemNotFound = "Item does not exist"
)

// Status is the outcome of a write operation.
type Status struct {
	Code    int
	Message string
}

// OK returns a success status with the given message.
func OK(msg string) Status {
	return Status{Code: StatusOK, Message: msg}
}

// NotFound returns a soft-failure status with the given message.
func NotFound(msg string) Status {
	return Status{Code: StatusNotFound, Message: msg}
}
