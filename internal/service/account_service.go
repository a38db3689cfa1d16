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

var _ grocerconnect.AccountServiceHandler = (*AccountService)(nil)

// AccountService implements the Connect AccountService.
type AccountService struct {
	store storage.Store
}

// NewAccountService creates a new AccountService with the given storage backend.
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{store: store}
}

// GetAccount returns one account, or all accounts when no ID is given.
// A missing account yields an empty result rather than an error.
func (s *AccountService) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	start := time.Now()
	slog.Info("GetAccount request received", "account_id", req.Msg.ID)

	var accounts []*models.Account
	if req.Msg.ID == 0 {
		all, err := s.store.ListAccounts(ctx)
		if err != nil {
			slog.Error("GetAccount failed", "error", err)
			metrics.Observe(kindAccount, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		}
		accounts = all
	} else {
		account, err := s.store.GetAccount(ctx, req.Msg.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// empty result
		case err != nil:
			slog.Error("GetAccount failed", "account_id", req.Msg.ID, "error", err)
			metrics.Observe(kindAccount, opGet, metrics.OutcomeError, start)
			return nil, connectError(err)
		default:
			accounts = append(accounts, account)
		}
	}

	rows := make([]*api.Account, len(accounts))
	for i, account := range accounts {
		rows[i] = toAPIAccount(account)
	}

	slog.Info("GetAccount successful", "count", len(rows))
	metrics.Observe(kindAccount, opGet, metrics.OutcomeOK, start)
	return connect.NewResponse(&api.GetAccountResponse{Rows: rows}), nil
}

// UpsertAccount creates an account when no ID is given and updates the
// profile of an existing account otherwise.
func (s *AccountService) UpsertAccount(ctx context.Context, req *connect.Request[api.UpsertAccountRequest]) (*connect.Response[api.UpsertAccountResponse], error) {
	start := time.Now()
	slog.Info("UpsertAccount request received",
		"account_id", req.Msg.ID,
		"username", req.Msg.Username,
	)

	account := &models.Account{
		ID:       req.Msg.ID,
		Username: req.Msg.Username,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	}

	var err error
	status := models.OK(models.MsgAccountUpdated)
	if account.ID == 0 {
		status = models.OK(models.MsgAccountCreated)
		err = s.store.CreateAccount(ctx, account)
	} else {
		err = s.store.UpdateAccount(ctx, account)
	}

	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgAccountNotFound)
		slog.Warn("UpsertAccount target does not exist", "account_id", account.ID)
		metrics.Observe(kindAccount, opUpsert, outcome(status), start)
		return connect.NewResponse(&api.UpsertAccountResponse{
			StatusCode:    int32(status.Code),
			StatusMessage: status.Message,
		}), nil
	}
	if err != nil {
		slog.Error("UpsertAccount failed", "account_id", account.ID, "error", err)
		metrics.Observe(kindAccount, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	// Fetch the stored row so the response reflects authoritative state
	current, err := s.store.GetAccount(ctx, account.ID)
	if err != nil {
		slog.Error("Failed to fetch upserted account", "account_id", account.ID, "error", err)
		metrics.Observe(kindAccount, opUpsert, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("UpsertAccount successful", "account_id", current.ID, "message", status.Message)
	metrics.Observe(kindAccount, opUpsert, outcome(status), start)
	return connect.NewResponse(&api.UpsertAccountResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
		Row:           toAPIAccount(current),
	}), nil
}

// DeleteAccount removes an account with all of its lists and their items.
func (s *AccountService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	start := time.Now()
	slog.Info("DeleteAccount request received", "account_id", req.Msg.ID)

	status := models.OK(models.MsgAccountDeleted)
	removed, err := s.store.DeleteAccount(ctx, req.Msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		status = models.NotFound(models.MsgAccountNotFound)
	} else if err != nil {
		slog.Error("DeleteAccount failed", "account_id", req.Msg.ID, "error", err)
		metrics.Observe(kindAccount, opDelete, metrics.OutcomeError, start)
		return nil, connectError(err)
	}

	slog.Info("DeleteAccount finished",
		"account_id", req.Msg.ID,
		"message", status.Message,
		"lists_removed", removed.Lists,
		"items_removed", removed.Items,
	)
	metrics.ObserveCascade(removed)
	metrics.Observe(kindAccount, opDelete, outcome(status), start)
	return connect.NewResponse(&api.DeleteAccountResponse{
		StatusCode:    int32(status.Code),
		StatusMessage: status.Message,
	}), nil
}
