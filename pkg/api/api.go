// Package api defines the wire messages of the grocer.v1 services.
// Messages are plain structs encoded as JSON; field names follow the
// camelCase convention of the Connect JSON protocol.
package api

// Account is the wire form of an account row.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// List is the wire form of a list row.
type List struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Sequence int64  `json:"sequence"`
	OwnerID  *int64 `json:"ownerId,omitempty"`
}

// Item is the wire form of an item row.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Sequence int64   `json:"sequence"`
	OwnerID  *int64  `json:"ownerId,omitempty"`
}

// GetAccountRequest fetches one account, or every account when ID is zero.
type GetAccountRequest struct {
	ID int64 `json:"id,omitempty"`
}

type GetAccountResponse struct {
	Rows []*Account `json:"rows"`
}

// UpsertAccountRequest creates an account when ID is zero and updates
// account ID otherwise.
type UpsertAccountRequest struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpsertAccountResponse struct {
	StatusCode    int32    `json:"statusCode"`
	StatusMessage string   `json:"statusMessage"`
	Row           *Account `json:"row,omitempty"`
}

type DeleteAccountRequest struct {
	ID int64 `json:"id"`
}

type DeleteAccountResponse struct {
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

// GetListRequest fetches one list, or every list when ID is zero.
type GetListRequest struct {
	ID int64 `json:"id,omitempty"`
}

type GetListResponse struct {
	Rows []*List `json:"rows"`
}

// UpsertListRequest creates a list when ID is zero and updates list ID
// otherwise. The sequence is assigned by the server and cannot be supplied.
type UpsertListRequest struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	OwnerID *int64 `json:"ownerId,omitempty"`
}

type UpsertListResponse struct {
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Row           *List  `json:"row,omitempty"`
}

type DeleteListRequest struct {
	ID int64 `json:"id"`
}

type DeleteListResponse struct {
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

// GetItemRequest fetches one item, or every item when ID is zero.
type GetItemRequest struct {
	ID int64 `json:"id,omitempty"`
}

type GetItemResponse struct {
	Rows []*Item `json:"rows"`
}

// UpsertItemRequest creates an item when ID is zero and updates item ID
// otherwise.
type UpsertItemRequest struct {
	ID      int64   `json:"id,omitempty"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	OwnerID *int64  `json:"ownerId,omitempty"`
}

type UpsertItemResponse struct {
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Row           *Item  `json:"row,omitempty"`
}

type DeleteItemRequest struct {
	ID int64 `json:"id"`
}

type DeleteItemResponse struct {
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}
