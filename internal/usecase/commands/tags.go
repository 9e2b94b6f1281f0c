package commands

import (
	"context"
	"log/slog"
	"strings"

	"orderflow/internal/domain/order"
	"orderflow/internal/infra"
	"orderflow/internal/pkg/cache"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/queries"
	"orderflow/internal/usecase/shared"
)

type TagAction string

const (
	TagActionAdd    TagAction = "add"
	TagActionRemove TagAction = "remove"
)

type MutateTagInput struct {
	ShopDomain string
	OrderID    string
	Action     TagAction
	Label      string
}

type MutateTagResult struct {
	Labels []string      `json:"labels"`
	Ledger *LedgerResult `json:"ledger,omitempty"`
}

type CancelOrderResult struct {
	Labels   []string `json:"labels"`
	Released int      `json:"released"`
}

type TagCommands interface {
	MutateTag(ctx context.Context, in MutateTagInput) (*MutateTagResult, error)
	CancelOrder(ctx context.Context, shopDomain, orderID, reason string) (*CancelOrderResult, error)
}

type tagUseCaseImpl struct {
	uow      shared.UnitOfWork
	platform PlatformActions
	effects  EffectRunner
	cache    *cache.Cache
}

func NewTagUseCase(uow shared.UnitOfWork, platform PlatformActions, effects EffectRunner, c *cache.Cache) TagCommands {
	return &tagUseCaseImpl{
		uow:      uow,
		platform: platform,
		effects:  effects,
		cache:    c,
	}
}

// MutateTag applies one add/remove to the order's label set. The label write
// and any ledger effect commit atomically; the matching external effect is
// scheduled after commit and never blocks or fails the response.
func (u *tagUseCaseImpl) MutateTag(ctx context.Context, in MutateTagInput) (*MutateTagResult, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, ErrMissingLabel
	}
	if in.Action != TagActionAdd && in.Action != TagActionRemove {
		return nil, ErrInvalidAction
	}

	ref := order.Ref{ShopDomain: in.ShopDomain, OrderID: in.OrderID}
	result := &MutateTagResult{}
	var changed bool

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindForUpdate(ctx, tx.DB(), ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		labels := tags.Normalize(tags.Parse(o.Tags))
		var next []string
		if in.Action == TagActionAdd {
			next, changed = tags.Add(labels, label)
			next = tags.Normalize(next)
		} else {
			next, changed = tags.Remove(labels, label)
		}
		result.Labels = next

		if !changed {
			return nil
		}
		if err := tx.Orders().UpdateTags(ctx, tx.DB(), ref, tags.Serialize(next)); err != nil {
			return err
		}

		if in.Action == TagActionAdd && strings.EqualFold(label, tags.Processing) {
			ledger, err := deductForProcessing(ctx, tx, ref)
			if err != nil {
				return err
			}
			result.Ledger = ledger
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		u.cache.InvalidateTag(queries.OrdersCacheTag(ref.ShopDomain))
		u.scheduleTransitionEffect(in.Action, label, ref)
	}
	return result, nil
}

func (u *tagUseCaseImpl) scheduleTransitionEffect(action TagAction, label string, ref order.Ref) {
	fields := []any{
		slog.String("shop_domain", ref.ShopDomain),
		slog.String("order_id", ref.OrderID),
		slog.String("action", string(action)),
		slog.String("label", label),
	}

	switch {
	case action == TagActionAdd && strings.EqualFold(label, tags.Shipped):
		u.effects.Go("fulfill_all", fields, func(ctx context.Context) error {
			return u.platform.FulfillAll(ctx, ref.ShopDomain, ref.OrderID)
		})
	case action == TagActionRemove && strings.EqualFold(label, tags.Shipped):
		u.effects.Go("unfulfill", fields, func(ctx context.Context) error {
			return u.platform.Unfulfill(ctx, ref.ShopDomain, ref.OrderID)
		})
	case action == TagActionAdd && strings.EqualFold(label, tags.Complete):
		u.effects.Go("mark_paid", fields, func(ctx context.Context) error {
			return u.platform.MarkPaid(ctx, ref.ShopDomain, ref.OrderID)
		})
	}
}

// CancelOrder requests platform cancellation, then mirrors it locally even
// when the platform call failed. The platform error, if any, is returned
// after mirroring.
func (u *tagUseCaseImpl) CancelOrder(ctx context.Context, shopDomain, orderID, reason string) (*CancelOrderResult, error) {
	ref := order.Ref{ShopDomain: shopDomain, OrderID: orderID}

	platformErr := u.platform.CancelOrder(ctx, shopDomain, orderID, reason)
	if platformErr != nil {
		slog.Error("platform cancel failed",
			slog.String("shop_domain", shopDomain),
			slog.String("order_id", orderID),
			slog.String("error", platformErr.Error()))
	}

	result := &CancelOrderResult{}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindForUpdate(ctx, tx.DB(), ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		labels := tags.Normalize(tags.Parse(o.Tags))
		next, changed := tags.Add(labels, tags.Cancelled)
		next = tags.Normalize(next)
		result.Labels = next
		if changed {
			if err := tx.Orders().UpdateTags(ctx, tx.DB(), ref, tags.Serialize(next)); err != nil {
				return err
			}
		}
		if err := tx.Orders().MarkCancelled(ctx, tx.DB(), ref); err != nil {
			return err
		}

		released, err := releaseForCancellation(ctx, tx, ref)
		if err != nil {
			return err
		}
		result.Released = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.cache.InvalidateTag(queries.OrdersCacheTag(shopDomain))
	if platformErr != nil {
		return result, platformErr
	}
	return result, nil
}
