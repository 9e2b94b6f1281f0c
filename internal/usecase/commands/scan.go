package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/domain/order"
	"orderflow/internal/domain/scan"
	"orderflow/internal/domain/workflow"
	"orderflow/internal/infra"
	"orderflow/internal/pkg/cache"
	"orderflow/internal/pkg/clock"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/queries"
	"orderflow/internal/usecase/shared"
)

type IssueTokenResult struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type OpenScanResult struct {
	Order          *order.Order     `json:"order"`
	Items          []order.LineItem `json:"items"`
	WorkflowStatus workflow.Status  `json:"workflow_status"`
	AdvancedFrom   workflow.Status  `json:"advanced_from"`
	AdvancedTo     workflow.Status  `json:"advanced_to"`
}

type ScanCommands interface {
	IssueToken(ctx context.Context, shopDomain, orderID string) (*IssueTokenResult, error)
	Open(ctx context.Context, token string) (*OpenScanResult, error)
}

type scanUseCaseImpl struct {
	uow      shared.UnitOfWork
	platform PlatformActions
	effects  EffectRunner
	cache    *cache.Cache
	clock    clock.Clock
	baseURL  string
}

func NewScanUseCase(
	uow shared.UnitOfWork,
	platform PlatformActions,
	effects EffectRunner,
	c *cache.Cache,
	clk clock.Clock,
	baseURL string,
) ScanCommands {
	return &scanUseCaseImpl{
		uow:      uow,
		platform: platform,
		effects:  effects,
		cache:    c,
		clock:    clk,
		baseURL:  baseURL,
	}
}

// IssueToken mints a fresh scan token for the order and stores only its
// hash. Any previously issued token for the same order stops working.
func (u *scanUseCaseImpl) IssueToken(ctx context.Context, shopDomain, orderID string) (*IssueTokenResult, error) {
	ref := order.Ref{ShopDomain: shopDomain, OrderID: orderID}

	secret, err := scan.NewSecret()
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Orders().Find(ctx, tx.DB(), ref); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return tx.Scans().UpsertToken(ctx, tx.DB(), scan.Token{
			ShopDomain: shopDomain,
			OrderID:    orderID,
			TokenHash:  scan.Hash(secret),
		})
	})
	if err != nil {
		return nil, err
	}

	return &IssueTokenResult{
		Token: secret,
		URL:   u.baseURL + "/scan/" + secret,
	}, nil
}

// Open resolves a presented token and advances the order's workflow to
// shipped on first use. Repeated scans return the same bundle without
// further effect.
func (u *scanUseCaseImpl) Open(ctx context.Context, token string) (*OpenScanResult, error) {
	hash := scan.Hash(token)
	result := &OpenScanResult{}
	advanced := false
	var ref order.Ref

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Scans().FindByHash(ctx, tx.DB(), hash)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTokenNotFound
			}
			return err
		}
		ref = order.Ref{ShopDomain: t.ShopDomain, OrderID: t.OrderID}

		state, err := tx.Scans().LockWorkflow(ctx, tx.DB(), ref)
		if err != nil {
			return err
		}
		result.AdvancedFrom = state.Status
		result.AdvancedTo = state.Status

		if state.CanShip() {
			now := u.clock.Now()
			if err := tx.Scans().MarkShipped(ctx, tx.DB(), ref, now); err != nil {
				return err
			}
			if err := u.addShippedLabel(ctx, tx, ref); err != nil {
				return err
			}
			if err := tx.Scans().MarkUsed(ctx, tx.DB(), hash, now); err != nil {
				return err
			}
			result.AdvancedTo = workflow.StatusShipped
			advanced = true
		}
		result.WorkflowStatus = result.AdvancedTo

		o, err := tx.Orders().Find(ctx, tx.DB(), ref)
		if err != nil {
			return err
		}
		items, err := tx.Orders().LineItems(ctx, tx.DB(), ref)
		if err != nil {
			return err
		}
		result.Order = o
		result.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	if advanced {
		u.cache.InvalidateTag(queries.OrdersCacheTag(ref.ShopDomain))
		u.effects.Go("fulfill_all", []any{
			slog.String("shop_domain", ref.ShopDomain),
			slog.String("order_id", ref.OrderID),
			slog.String("trigger", "scan"),
		}, func(ctx context.Context) error {
			return u.platform.FulfillAll(ctx, ref.ShopDomain, ref.OrderID)
		})
	}
	return result, nil
}

func (u *scanUseCaseImpl) addShippedLabel(ctx context.Context, tx shared.Tx, ref order.Ref) error {
	o, err := tx.Orders().FindForUpdate(ctx, tx.DB(), ref)
	if err != nil {
		return err
	}
	labels := tags.Normalize(tags.Parse(o.Tags))
	next, changed := tags.Add(labels, tags.Shipped)
	if !changed {
		return nil
	}
	return tx.Orders().UpdateTags(ctx, tx.DB(), ref, tags.Serialize(tags.Normalize(next)))
}
