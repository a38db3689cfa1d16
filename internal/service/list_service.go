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

var _ grocerconnect.ListServiceHandler = (*ListService)(nil)

// ListService implements the Connect ListService.
type ListService struct {
	store storage.Store
}

// NewListService creates a new ListService with the given storage backend.
func NewListService(store storage.Store) *ListService {
	return &ListService{store: store}
}

// GetList returns one list, or all lists when no ID is given.
func (s *ListService) GetList(ctx context.Context, req *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error) {
	start := time.Now()
	slog.Info("GetList request received", "list_id", req.Msg.ID)

	var lists []*models.List
	if req.Msg.ID == 0 {
		all, err := s.store.ListLists(ctx)
		if err != nil {
			slog.Error("GetList failed", "error", err)
			metrics.Observe(kindList, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		}
		lists = all
	} else {
		list, err := s.store.GetList(ctx, req.Msg.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// empty result
		case err != nil:
			slog.Error("GetList failed", "list_id", req.Msg.ID, "error", err)
			metrics.Observe(kindList, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		default:
			lists = append(lists, list)
		}
	}

	rows := make([]*api.List, len(lists))
	for i, list := range lists {
		rows[i] = toAPIList(list)
	}

	slog.Info("GetList successful", "count", len(rows))
	metrics.Observe(kindList, opGet, metrics.OutcomeOK, start)
	return connect.NewResponse(&api.GetListResponse{Rows: rows}), nil
}

// UpsertList creates a list with the next list sequence when no ID is given,
// and renames or reassigns an existing list otherwise.
func (s *ListService) UpsertList(ctx context.Context, req *connect.Request[api.UpsertListRequest]) (*connect.Response[api.UpsertListResponse], error) {
	start := time.Now()
	slog.Info("UpsertList request received",
		"list_id", req.Msg.ID,
		"name", req.Msg.Name,
		"owner_id", ownerValue(req.Msg.OwnerID),
	)

	list := &models.List{
		ID:      req.Msg.ID,
		Name:    req.Msg.Name,
		OwnerID: req.Msg.OwnerID,
	}

	var err error
	status := models.OK(models.MsgListUpdated)
	if list.ID == 0 {
		status = models.OK(models.MsgListCreated)
		err = s.store.CreateList(ctx, list)
	} else {
		err = s.store.UpdateList(ctx, list)
	}

	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgListNotFound)
		slog.Warn("UpsertList target does not exist", "list_id", list.ID)
		metrics.Observe(kindList, opUpsert, outcome(status), start)
		return connect.NewResponse(&api.UpsertListResponse{
			StatusCode:    int32(status.Code),
			StatusMessage: status.Message,
		}), nil
	}
	if err != nil {
		slog.Error("UpsertList failed", "list_id", list.ID, "owner_id", ownerValue(list.OwnerID), "error", err)
		metrics.Observe(kindList, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	current, err := s.store.GetList(ctx, list.ID)
	if err != nil {
		slog.Error("Failed to fetch upserted list", "list_id", list.ID, "error", err)
		metrics.Observe(kindList, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("UpsertList successful",
		"list_id", current.ID,
		"sequence", current.Sequence,
		"message", status.Message,
	)
	metrics.Observe(kindList, opUpsert, outcome(status), start)
	return connect.NewResponse(&api.UpsertListResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
		Row:           toAPIList(current),
	}), nil
}

// DeleteList removes a list and every item on it.
func (s *ListService) DeleteList(ctx context.Context, req *connect.Request[api.DeleteListRequest]) (*connect.Response[api.DeleteListResponse], error) {
	start := time.Now()
	slog.Info("DeleteList request received", "list_id", req.Msg.ID)

	status := models.OK(models.MsgListDeleted)
	removed, err := s.store.DeleteList(ctx, req.Msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgListNotFound)
	} else if err != nil {
		slog.Error("DeleteList failed", "list_id", req.Msg.ID, "error", err)
		metrics.Observe(kindList, opDelete, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("DeleteList finished",
		"list_id", req.Msg.ID,
		"message", status.Message,
		"items_removed", removed.Items,
	)
	metrics.ObserveCascade(removed)
	metrics.Observe(kindList, opDelete, outcome(status), start)
	return connect.NewResponse(&api.DeleteListResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
	}), nil
}
