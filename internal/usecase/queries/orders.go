package queries

import (
	"context"
	"strconv"
	"time"

	"orderflow/internal/domain/order"
	"orderflow/internal/pkg/cache"
)

// Cache tags used for invalidation after writes. One tag per shop keeps a
// webhook for shop A from evicting shop B's lists.
func OrdersCacheTag(shopDomain string) string { return cache.Key("orders", shopDomain) }

const (
	listTTL    = 60 * time.Second
	summaryTTL = 60 * time.Second
	detailTTL  = 30 * time.Second
)

type OrderQueries interface {
	List(ctx context.Context, shopDomain, search string, limit int, refresh bool) ([]*OrderListItem, error)
	Page(ctx context.Context, shopDomain, search string, page, perPage int) (*OrderPage, error)
	Summary(ctx context.Context, shopDomain string, refresh bool) (*ShopSummary, error)
	Detail(ctx context.Context, ref order.Ref) (*OrderView, error)
	Items(ctx context.Context, ref order.Ref) ([]OrderItemView, error)
}

type OrderViewRepo interface {
	List(ctx context.Context, shopDomain, search string, limit, offset int) ([]*OrderListItem, error)
	Count(ctx context.Context, shopDomain, search string) (int, error)
	FindDetail(ctx context.Context, ref order.Ref) (*OrderView, error)
	FindItems(ctx context.Context, ref order.Ref) ([]OrderItemView, error)
	Summary(ctx context.Context, shopDomain string) (*ShopSummary, error)
}

type orderQueriesImpl struct {
	repo  OrderViewRepo
	cache *cache.Cache
}

func NewOrderQueries(repo OrderViewRepo, c *cache.Cache) OrderQueries {
	return &orderQueriesImpl{repo: repo, cache: c}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (q *orderQueriesImpl) List(ctx context.Context, shopDomain, search string, limit int, refresh bool) ([]*OrderListItem, error) {
	limit = clampLimit(limit)
	v, err := q.cache.Through(ctx, cache.LoadParams{
		Key:     cache.Key("orders", shopDomain, search, strconv.Itoa(limit)),
		TTL:     listTTL,
		Tags:    []string{OrdersCacheTag(shopDomain)},
		Refresh: refresh,
		Loader: func(ctx context.Context) (any, error) {
			return q.repo.List(ctx, shopDomain, search, limit, 0)
		},
	})
	if err != nil {
		return nil, err
	}
	return v.([]*OrderListItem), nil
}

func (q *orderQueriesImpl) Page(ctx context.Context, shopDomain, search string, page, perPage int) (*OrderPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	perPage = clampLimit(perPage)

	key := cache.Key("orders-page", shopDomain, search, strconv.Itoa(page), strconv.Itoa(perPage))
	v, err := q.cache.Through(ctx, cache.LoadParams{
		Key:  key,
		TTL:  listTTL,
		Tags: []string{OrdersCacheTag(shopDomain)},
		Loader: func(ctx context.Context) (any, error) {
			items, err := q.repo.List(ctx, shopDomain, search, perPage, (page-1)*perPage)
			if err != nil {
				return nil, err
			}
			total, err := q.repo.Count(ctx, shopDomain, search)
			if err != nil {
				return nil, err
			}
			return &OrderPage{Items: items, Total: total, Page: page, PerPage: perPage}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return v.(*OrderPage), nil
}

func (q *orderQueriesImpl) Summary(ctx context.Context, shopDomain string, refresh bool) (*ShopSummary, error) {
	v, err := q.cache.Through(ctx, cache.LoadParams{
		Key:     cache.Key("orders-summary", shopDomain),
		TTL:     summaryTTL,
		Tags:    []string{OrdersCacheTag(shopDomain)},
		Refresh: refresh,
		Loader: func(ctx context.Context) (any, error) {
			return q.repo.Summary(ctx, shopDomain)
		},
	})
	if err != nil {
		return nil, err
	}
	return v.(*ShopSummary), nil
}

func (q *orderQueriesImpl) Detail(ctx context.Context, ref order.Ref) (*OrderView, error) {
	v, err := q.cache.Through(ctx, cache.LoadParams{
		Key:  cache.Key("order", ref.ShopDomain, ref.OrderID),
		TTL:  detailTTL,
		Tags: []string{OrdersCacheTag(ref.ShopDomain)},
		Loader: func(ctx context.Context) (any, error) {
			return q.repo.FindDetail(ctx, ref)
		},
	})
	if err != nil {
		return nil, err
	}
	return v.(*OrderView), nil
}

func (q *orderQueriesImpl) Items(ctx context.Context, ref order.Ref) ([]OrderItemView, error) {
	v, err := q.cache.Through(ctx, cache.LoadParams{
		Key:  cache.Key("order-items", ref.ShopDomain, ref.OrderID),
		TTL:  detailTTL,
		Tags: []string{OrdersCacheTag(ref.ShopDomain)},
		Loader: func(ctx context.Context) (any, error) {
			return q.repo.FindItems(ctx, ref)
		},
	})
	if err != nil {
		return nil, err
	}
	return v.([]OrderItemView), nil
}
