// Package grocerconnect wires the grocer.v1 services onto Connect handlers
// and clients, in the shape of protoc-gen-connect-go output.
package grocerconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/grocer/pkg/api"
)

// Fully-qualified service names.
const (
	AccountServiceName = "grocer.v1.AccountService"
	ListServiceName    = "grocer.v1.ListService"
	ItemServiceName    = "grocer.v1.ItemService"
)

// Procedure paths.
const (
	AccountServiceGetAccountProcedure    = "/grocer.v1.AccountService/GetAccount"
	AccountServiceUpsertAccountProcedure = "/grocer.v1.AccountService/UpsertAccount"
	AccountServiceDeleteAccountProcedure = "/grocer.v1.AccountService/DeleteAccount"

	ListServiceGetListProcedure    = "/grocer.v1.ListService/GetList"
	ListServiceUpsertListProcedure = "/grocer.v1.ListService/UpsertList"
	ListServiceDeleteListProcedure = "/grocer.v1.ListService/DeleteList"

	ItemServiceGetItemProcedure    = "/grocer.v1.ItemService/GetItem"
	ItemServiceUpsertItemProcedure = "/grocer.v1.ItemService/UpsertItem"
	ItemServiceDeleteItemProcedure = "/grocer.v1.ItemService/DeleteItem"
)

// AccountServiceHandler is implemented by the account service.
type AccountServiceHandler interface {
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	UpsertAccount(context.Context, *connect.Request[api.UpsertAccountRequest]) (*connect.Response[api.UpsertAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// ListServiceHandler is implemented by the list service.
type ListServiceHandler interface {
	GetList(context.Context, *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error)
	UpsertList(context.Context, *connect.Request[api.UpsertListRequest]) (*connect.Response[api.UpsertListResponse], error)
	DeleteList(context.Context, *connect.Request[api.DeleteListRequest]) (*connect.Response[api.DeleteListResponse], error)
}

// ItemServiceHandler is implemented by the item service.
type ItemServiceHandler interface {
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	UpsertItem(context.Context, *connect.Request[api.UpsertItemRequest]) (*connect.Response[api.UpsertItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

// NewAccountServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route(AccountServiceName, map[string]http.Handler{
		AccountServiceGetAccountProcedure:    connect.NewUnaryHandler(AccountServiceGetAccountProcedure, svc.GetAccount, opts...),
		AccountServiceUpsertAccountProcedure: connect.NewUnaryHandler(AccountServiceUpsertAccountProcedure, svc.UpsertAccount, opts...),
		AccountServiceDeleteAccountProcedure: connect.NewUnaryHandler(AccountServiceDeleteAccountProcedure, svc.DeleteAccount, opts...),
	})
}

// NewListServiceHandler builds an HTTP handler for the list service.
func NewListServiceHandler(svc ListServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route(ListServiceName, map[string]http.Handler{
		ListServiceGetListProcedure:    connect.NewUnaryHandler(ListServiceGetListProcedure, svc.GetList, opts...),
		ListServiceUpsertListProcedure: connect.NewUnaryHandler(ListServiceUpsertListProcedure, svc.UpsertList, opts...),
		ListServiceDeleteListProcedure: connect.NewUnaryHandler(ListServiceDeleteListProcedure, svc.DeleteList, opts...),
	})
}

// NewItemServiceHandler builds an HTTP handler for the item service.
func NewItemServiceHandler(svc ItemServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	return route(ItemServiceName, map[string]http.Handler{
		ItemServiceGetItemProcedure:    connect.NewUnaryHandler(ItemServiceGetItemProcedure, svc.GetItem, opts...),
		ItemServiceUpsertItemProcedure: connect.NewUnaryHandler(ItemServiceUpsertItemProcedure, svc.UpsertItem, opts...),
		ItemServiceDeleteItemProcedure: connect.NewUnaryHandler(ItemServiceDeleteItemProcedure, svc.DeleteItem, opts...),
	})
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func route(service string, procedures map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := procedures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// AccountServiceClient is a client for the grocer.v1.AccountService service.
type AccountServiceClient interface {
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error)
	UpsertAccount(context.Context, *connect.Request[api.UpsertAccountRequest]) (*connect.Response[api.UpsertAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// ListServiceClient is a client for the grocer.v1.ListService service.
type ListServiceClient interface {
	GetList(context.Context, *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error)
	UpsertList(context.Context, *connect.Request[api.UpsertListRequest]) (*connect.Response[api.UpsertListResponse], error)
	DeleteList(context.Context, *connect.Request[api.DeleteListRequest]) (*connect.Response[api.DeleteListResponse], error)
}

// ItemServiceClient is a client for the grocer.v1.ItemService service.
type ItemServiceClient interface {
	GetItem(context.Context, *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error)
	UpsertItem(context.Context, *connect.Request[api.UpsertItemRequest]) (*connect.Response[api.UpsertItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

// NewAccountServiceClient constructs a client for the account service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AccountServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &accountServiceClient{
		get:    connect.NewClient[api.GetAccountRequest, api.GetAccountResponse](httpClient, baseURL+AccountServiceGetAccountProcedure, opts...),
		upsert: connect.NewClient[api.UpsertAccountRequest, api.UpsertAccountResponse](httpClient, baseURL+AccountServiceUpsertAccountProcedure, opts...),
		delete: connect.NewClient[api.DeleteAccountRequest, api.DeleteAccountResponse](httpClient, baseURL+AccountServiceDeleteAccountProcedure, opts...),
	}
}

// NewListServiceClient constructs a client for the list service.
func NewListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ListServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &listServiceClient{
		get:    connect.NewClient[api.GetListRequest, api.GetListResponse](httpClient, baseURL+ListServiceGetListProcedure, opts...),
		upsert: connect.NewClient[api.UpsertListRequest, api.UpsertListResponse](httpClient, baseURL+ListServiceUpsertListProcedure, opts...),
		delete: connect.NewClient[api.DeleteListRequest, api.DeleteListResponse](httpClient, baseURL+ListServiceDeleteListProcedure, opts...),
	}
}

// NewItemServiceClient constructs a client for the item service.
func NewItemServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItemServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &itemServiceClient{
		get:    connect.NewClient[api.GetItemRequest, api.GetItemResponse](httpClient, baseURL+ItemServiceGetItemProcedure, opts...),
		upsert: connect.NewClient[api.UpsertItemRequest, api.UpsertItemResponse](httpClient, baseURL+ItemServiceUpsertItemProcedure, opts...),
		delete: connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+ItemServiceDeleteItemProcedure, opts...),
	}
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}

type accountServiceClient struct {
	get    *connect.Client[api.GetAccountRequest, api.GetAccountResponse]
	upsert *connect.Client[api.UpsertAccountRequest, api.UpsertAccountResponse]
	delete *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
}

func (c *accountServiceClient) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *accountServiceClient) UpsertAccount(ctx context.Context, req *connect.Request[api.UpsertAccountRequest]) (*connect.Response[api.UpsertAccountResponse], error) {
	return c.upsert.CallUnary(ctx, req)
}

func (c *accountServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

type listServiceClient struct {
	get    *connect.Client[api.GetListRequest, api.GetListResponse]
	upsert *connect.Client[api.UpsertListRequest, api.UpsertListResponse]
	delete *connect.Client[api.DeleteListRequest, api.DeleteListResponse]
}

func (c *listServiceClient) GetList(ctx context.Context, req *connect.Request[api.GetListRequest]) (*connect.Response[api.GetListResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *listServiceClient) UpsertList(ctx context.Context, req *connect.Request[api.UpsertListRequest]) (*connect.Response[api.UpsertListResponse], error) {
	return c.upsert.CallUnary(ctx, req)
}

func (c *listServiceClient) DeleteList(ctx context.Context, req *connect.Request[api.DeleteListRequest]) (*connect.Response[api.DeleteListResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

type itemServiceClient struct {
	get    *connect.Client[api.GetItemRequest, api.GetItemResponse]
	upsert *connect.Client[api.UpsertItemRequest, api.UpsertItemResponse]
	delete *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
}

func (c *itemServiceClient) GetItem(ctx context.Context, req *connect.Request[api.GetItemRequest]) (*connect.Response[api.GetItemResponse], error) {
	return c.get.CallUnary(ctx, req)
}

func (c *itemServiceClient) UpsertItem(ctx context.Context, req *connect.Request[api.UpsertItemRequest]) (*connect.Response[api.UpsertItemResponse], error) {
	return c.upsert.CallUnary(ctx, req)
}

func (c *itemServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.delete.CallUnary(ctx, req)
}
