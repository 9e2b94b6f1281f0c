//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/domain/scan"
	"orderflow/internal/domain/workflow"
	"orderflow/internal/infra"
	"orderflow/internal/infra/db"
	"orderflow/internal/usecase/shared"
)

// memStore is an in-memory stand-in for the relational store. It ignores
// transaction boundaries, which is fine for exercising usecase logic.
type memStore struct {
	orders   map[order.Ref]*order.Order
	items    map[order.Ref][]order.LineItem
	stock    map[[2]string]int
	moves    map[[4]string]inventory.Move
	reserves map[[3]string]inventory.Reserve
	tokens   map[order.Ref]scan.Token
	workflow map[order.Ref]*workflow.State
	webhooks []string
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[order.Ref]*order.Order),
		items:    make(map[order.Ref][]order.LineItem),
		stock:    make(map[[2]string]int),
		moves:    make(map[[4]string]inventory.Move),
		reserves: make(map[[3]string]inventory.Reserve),
		tokens:   make(map[order.Ref]scan.Token),
		workflow: make(map[order.Ref]*workflow.State),
	}
}

func (s *memStore) putOrder(o *order.Order, items ...order.LineItem) {
	cp := *o
	s.orders[o.Ref()] = &cp
	s.items[o.Ref()] = items
}

type memUoW struct {
	s *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &memTx{s: u.s})
}

func (u *memUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type memTx struct {
	s *memStore
}

func (t *memTx) DB() db.DBTX { return nil }

func (t *memTx) Orders() shared.OrderRepository { return &memOrders{s: t.s} }

func (t *memTx) Inventory() shared.InventoryRepository { return &memInventory{s: t.s} }

func (t *memTx) Scans() shared.ScanRepository { return &memScans{s: t.s} }

func (t *memTx) Webhooks() shared.WebhookRepository { return &memWebhooks{s: t.s} }

func notFound() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

type memOrders struct {
	s *memStore
}

func (r *memOrders) Find(_ context.Context, _ db.DBTX, ref order.Ref) (*order.Order, error) {
	o, ok := r.s.orders[ref]
	if !ok {
		return nil, notFound()
	}
	cp := *o
	return &cp, nil
}

func (r *memOrders) FindForUpdate(ctx context.Context, dbtx db.DBTX, ref order.Ref) (*order.Order, error) {
	return r.Find(ctx, dbtx, ref)
}

func (r *memOrders) UpdateTags(_ context.Context, _ db.DBTX, ref order.Ref, serialized string) error {
	o, ok := r.s.orders[ref]
	if !ok {
		return notFound()
	}
	o.Tags = serialized
	return nil
}

func (r *memOrders) MarkCancelled(_ context.Context, _ db.DBTX, ref order.Ref) error {
	if o, ok := r.s.orders[ref]; ok && o.CancelledAt == nil {
		now := time.Now()
		o.CancelledAt = &now
	}
	return nil
}

func (r *memOrders) Upsert(_ context.Context, _ db.DBTX, o *order.Order) error {
	cp := *o
	cp.SyncedAt = time.Now()
	r.s.orders[o.Ref()] = &cp
	return nil
}

func (r *memOrders) ReplaceLineItems(_ context.Context, _ db.DBTX, ref order.Ref, items []order.LineItem) error {
	r.s.items[ref] = items
	return nil
}

func (r *memOrders) LineItems(_ context.Context, _ db.DBTX, ref order.Ref) ([]order.LineItem, error) {
	return r.s.items[ref], nil
}

func (r *memOrders) SumQuantitiesByVariant(_ context.Context, _ db.DBTX, ref order.Ref) ([]inventory.Demand, error) {
	pairs := make([]inventory.Demand, 0)
	for _, it := range r.s.items[ref] {
		pairs = append(pairs, inventory.Demand{VariantID: it.VariantID, Quantity: it.Quantity})
	}
	return inventory.SumDemand(pairs), nil
}

type memInventory struct {
	s *memStore
}

func (r *memInventory) EnsureStock(_ context.Context, _ db.DBTX, shopDomain, variantID string) error {
	key := [2]string{shopDomain, variantID}
	if _, ok := r.s.stock[key]; !ok {
		r.s.stock[key] = 0
	}
	return nil
}

func (r *memInventory) LockStock(ctx context.Context, dbtx db.DBTX, shopDomain, variantID string) (*inventory.Stock, error) {
	if err := r.EnsureStock(ctx, dbtx, shopDomain, variantID); err != nil {
		return nil, err
	}
	return &inventory.Stock{
		ShopDomain: shopDomain,
		VariantID:  variantID,
		Quantity:   r.s.stock[[2]string{shopDomain, variantID}],
	}, nil
}

func (r *memInventory) AdjustStock(_ context.Context, _ db.DBTX, shopDomain, variantID string, delta int) (int, error) {
	key := [2]string{shopDomain, variantID}
	next := r.s.stock[key] + inventory.ClampDelta(r.s.stock[key], delta)
	r.s.stock[key] = next
	return next, nil
}

func (r *memInventory) SetStock(_ context.Context, _ db.DBTX, shopDomain, variantID string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	r.s.stock[[2]string{shopDomain, variantID}] = quantity
	return nil
}

func (r *memInventory) GetStock(_ context.Context, _ db.DBTX, shopDomain, variantID string) (*inventory.Stock, error) {
	key := [2]string{shopDomain, variantID}
	qty, ok := r.s.stock[key]
	if !ok {
		return nil, notFound()
	}
	return &inventory.Stock{ShopDomain: shopDomain, VariantID: variantID, Quantity: qty}, nil
}

func (r *memInventory) InsertMove(_ context.Context, _ db.DBTX, m inventory.Move) (bool, error) {
	key := [4]string{m.ShopDomain, m.OrderID, m.VariantID, m.Reason}
	if _, ok := r.s.moves[key]; ok {
		return true, nil
	}
	r.s.moves[key] = m
	return false, nil
}

func (r *memInventory) MovesForOrder(_ context.Context, _ db.DBTX, ref order.Ref) ([]inventory.Move, error) {
	var moves []inventory.Move
	for key, m := range r.s.moves {
		if key[0] == ref.ShopDomain && key[1] == ref.OrderID {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

func (r *memInventory) UpsertReserve(_ context.Context, _ db.DBTX, res inventory.Reserve) error {
	r.s.reserves[[3]string{res.ShopDomain, res.OrderID, res.VariantID}] = res
	return nil
}

func (r *memInventory) ReservesForOrder(_ context.Context, _ db.DBTX, ref order.Ref) ([]inventory.Reserve, error) {
	var out []inventory.Reserve
	for key, res := range r.s.reserves {
		if key[0] == ref.ShopDomain && key[1] == ref.OrderID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out, nil
}

func (r *memInventory) FindReserve(_ context.Context, _ db.DBTX, ref order.Ref, variantID string) (*inventory.Reserve, error) {
	res, ok := r.s.reserves[[3]string{ref.ShopDomain, ref.OrderID, variantID}]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *memInventory) DeleteReserve(_ context.Context, _ db.DBTX, ref order.Ref, variantID string) error {
	delete(r.s.reserves, [3]string{ref.ShopDomain, ref.OrderID, variantID})
	return nil
}

func (r *memInventory) DeleteReservesForOrder(_ context.Context, _ db.DBTX, ref order.Ref) error {
	for key := range r.s.reserves {
		if key[0] == ref.ShopDomain && key[1] == ref.OrderID {
			delete(r.s.reserves, key)
		}
	}
	return nil
}

type memScans struct {
	s *memStore
}

func (r *memScans) UpsertToken(_ context.Context, _ db.DBTX, t scan.Token) error {
	t.CreatedAt = time.Now()
	t.UsedAt = nil
	r.s.tokens[order.Ref{ShopDomain: t.ShopDomain, OrderID: t.OrderID}] = t
	return nil
}

func (r *memScans) FindByHash(_ context.Context, _ db.DBTX, tokenHash string) (*scan.Token, error) {
	for _, t := range r.s.tokens {
		if t.TokenHash == tokenHash {
			cp := t
			return &cp, nil
		}
	}
	return nil, notFound()
}

func (r *memScans) MarkUsed(_ context.Context, _ db.DBTX, tokenHash string, at time.Time) error {
	for ref, t := range r.s.tokens {
		if t.TokenHash == tokenHash {
			t.UsedAt = &at
			r.s.tokens[ref] = t
		}
	}
	return nil
}

func (r *memScans) LockWorkflow(_ context.Context, _ db.DBTX, ref order.Ref) (*workflow.State, error) {
	if _, ok := r.s.workflow[ref]; !ok {
		r.s.workflow[ref] = &workflow.State{
			ShopDomain: ref.ShopDomain,
			OrderID:    ref.OrderID,
			Status:     workflow.StatusPending,
		}
	}
	cp := *r.s.workflow[ref]
	return &cp, nil
}

func (r *memScans) FindWorkflow(ctx context.Context, dbtx db.DBTX, ref order.Ref) (*workflow.State, error) {
	return r.LockWorkflow(ctx, dbtx, ref)
}

func (r *memScans) MarkShipped(_ context.Context, _ db.DBTX, ref order.Ref, at time.Time) error {
	state, ok := r.s.workflow[ref]
	if !ok || state.Status != workflow.StatusPending {
		return infra.WrapRepoErr("workflow already shipped", nil, infra.KindDuplicateKey)
	}
	state.Status = workflow.StatusShipped
	state.ShippedAt = &at
	return nil
}

type memWebhooks struct {
	s *memStore
}

func (r *memWebhooks) InsertLog(_ context.Context, _ db.DBTX, shopDomain, topic, orderID string) error {
	r.s.webhooks = append(r.s.webhooks, shopDomain+"|"+topic+"|"+orderID)
	return nil
}

// fakePlatform records platform calls and optionally fails them.
type fakePlatform struct {
	calls     []string
	cancelErr error
}

func (p *fakePlatform) record(name, shopDomain, orderID string) {
	p.calls = append(p.calls, name+"|"+shopDomain+"|"+orderID)
}

func (p *fakePlatform) FulfillAll(_ context.Context, shopDomain, orderID string) error {
	p.record("fulfill_all", shopDomain, orderID)
	return nil
}

func (p *fakePlatform) Unfulfill(_ context.Context, shopDomain, orderID string) error {
	p.record("unfulfill", shopDomain, orderID)
	return nil
}

func (p *fakePlatform) MarkPaid(_ context.Context, shopDomain, orderID string) error {
	p.record("mark_paid", shopDomain, orderID)
	return nil
}

func (p *fakePlatform) CancelOrder(_ context.Context, shopDomain, orderID, _ string) error {
	p.record("cancel_order", shopDomain, orderID)
	return p.cancelErr
}
