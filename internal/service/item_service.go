package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/grocer/internal/metrics"
	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
	"github.com/mmynk/grocer/pkg/api"
	"github.com/mmynk/grocer/pkg/api/grocerconnect"
)

var _ grocerconnect.ItemServiceHandler = (*ItemService)(nil)

// ItemService implements the Connect ItemService
type ItemService struct {
	store storage.Store
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store) *ItemService {
	return &ItemService{store: store}
}

// GetItem returns one item, or all items when no ID is given.
func (s *ItemService) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	start := time.Now()
	slog.Info("GetItem request received", "item_id", req.Msg.ID)

	var items []*models.Item
	if req.Msg.ID == 0 {
		all, err := s.store.ListItems(ctx)
		if err != nil {
			slog.Error("GetItem failed", "error", err)
			metrics.Observe(kindItem, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		}
		items = all
	} else {
		item, err := s.store.GetItem(ctx, req.Msg.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// empty result
		case err != nil:
			slog.Error("GetItem failed", "item_id", req.Msg.ID, "error", err)
			metrics.Observe(kindItem, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		default:
			items = append(items, item)
		}
	}

	rows := make([]*api.Item, len(items))
	for i, item := range items {
		rows[i] = toAPIItem(item)
	}

	slog.Info("GetItem successful", "count", len(rows))
	metrics.Observe(kindItem, opGet, metrics.OutcomeOK, start)
	return connect.NewResponse(&api.GetItemResponse{Rows: rows}), nil
}

// UpsertItem adds an item (with the next item sequence) when no ID is given,
// and updates an existing item otherwise.
func (s *ItemService) UpsertItem(ctx context.Context, req *connect.Request[api.UpsertItemRequest]) (*connect.Response[api.UpsertItemResponse], error) {
	start := time.Now()
	slog.Info("UpsertItem request received",
		"item_id", req.Msg.ID,
		"name", req.Msg.Name,
		"price", req.Msg.Price,
		"owner_id", ownerValue(req.Msg.OwnerID),
	)

	item := &models.Item{
		ID:      req.Msg.ID,
		Name:    req.Msg.Name,
		Price:   req.Msg.Price,
		OwnerID: req.Msg.OwnerID,
	}

	var err error
	status := models.OK(models.MsgItemUpdated)
	if item.ID == 0 {
		status = models.OK(models.MsgItemCreated)
		err = s.store.CreateItem(ctx, item)
	} else {
		err = s.store.UpdateItem(ctx, item)
	}

	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgItemNotFound)
		slog.Warn("UpsertItem target does not exist", "item_id", item.ID)
		metrics.Observe(kindItem, opUpsert, outcome(status), start)
		return connect.NewResponse(&api.UpsertItemResponse{
			StatusCode:    int32(status.Code),
			StatusMessage: status.Message,
		}), nil
	}
	if err != nil {
		slog.Error("UpsertItem failed", "item_id", item.ID, "owner_id", ownerValue(item.OwnerID), "error", err)
		metrics.Observe(kindItem, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	current, err := s.store.GetItem(ctx, item.ID)
	if err != nil {
		slog.Error("Failed to fetch upserted item", "item_id", item.ID, "error", err)
		metrics.Observe(kindItem, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("UpsertItem successful",
		"item_id", current.ID,
		"sequence", current.Sequence,
		"message", status.Message,
	)
	metrics.Observe(kindItem, opUpsert, outcome(status), start)
	return connect.NewResponse(&api.UpsertItemResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
		Row:           toAPIItem(current),
	}), nil
}

// DeleteItem removes a single item from its list.
func (s *ItemService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	start := time.Now()
	slog.Info("DeleteItem request received", "item_id", req.Msg.ID)

	status := models.OK(models.MsgItemDeleted)
	removed, err := s.store.DeleteItem(ctx, req.Msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgItemNotFound)
	} else if err != nil {
		slog.Error("DeleteItem failed", "item_id", req.Msg.ID, "error", err)
		metrics.Observe(kindItem, opDelete, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("DeleteItem finished", "item_id", req.Msg.ID, "message", status.Message)
	metrics.ObserveCascade(removed)
	metrics.Observe(kindItem, opDelete, outcome(status), start)
	return connect.NewResponse(&api.DeleteItemResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
	}), nil
}
