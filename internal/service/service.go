// Package service implements the grocer Connect services on top of a
// storage.Store. Each RPC maps to exactly one store operation, so every
// upsert and delete is a single transaction.
package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/pkg/api"
)

// Metric labels.
const (
	kindAccount = "account"
	kindList    = "list"
	kindItem    = "item"

	opGet    = "get"
	opUpsert = "upsert"
	opDelete = "delete"
)

// connectError maps a store error onto a Connect error. A dangling owner
// reference is the caller's fault; everything else is internal.
func connectError(err error) *connect.Error {
	if errors.Is(err, storage.ErrOwnerNotFound) {
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func outcome(status models.Status) string {
	if status.Code == models.StatusOK {
		return metrics.OutcomeOK
	}
	return metrics.OutcomeNotFound
}

func toAPIAccount(a *models.Account) *api.Account {
	return &api.Account{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Password: a.Password,
	}
}

func toAPIList(l *models.List) *api.List {
	return &api.List{
		ID:       l.ID,
		Name:     l.Name,
		Sequence: l.Sequence,
		OwnerID:  l.OwnerID,
	}
}

func toAPIItem(i *models.Item) *api.Item {
	return &api.Item{
		ID:       i.ID,
		Name:     i.Name,
		Price:    i.Price,
		Sequence: i.Sequence,
		OwnerID:  i.OwnerID,
	}
}

// ownerValue renders an optional owner reference for logging.
func ownerValue(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
