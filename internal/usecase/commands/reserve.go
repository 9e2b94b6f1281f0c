package commands

import (
	"context"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/infra"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/shared"
)

type SetReserveInput struct {
	ShopDomain string
	OrderID    string
	VariantIDs []string
	Reserve    bool
}

type SetReserveResult struct {
	Reserved bool `json:"reserved"`
	Changed  int  `json:"changed"`
}

type ReserveCommands interface {
	SetReserve(ctx context.Context, in SetReserveInput) (*SetReserveResult, error)
}

type reserveUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewReserveUseCase(uow shared.UnitOfWork) ReserveCommands {
	return &reserveUseCaseImpl{uow: uow}
}

// SetReserve toggles the soft hold for the order's variants. Reserving
// records the quantity actually withdrawn from stock, so releasing restores
// stock to exactly its pre-reservation value. Both directions are idempotent
// per variant.
func (u *reserveUseCaseImpl) SetReserve(ctx context.Context, in SetReserveInput) (*SetReserveResult, error) {
	ref := order.Ref{ShopDomain: in.ShopDomain, OrderID: in.OrderID}
	result := &SetReserveResult{Reserved: in.Reserve}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindForUpdate(ctx, tx.DB(), ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		labels := tags.Parse(o.Tags)
		if tags.Has(labels, tags.Complete) || tags.Has(labels, tags.Processing) {
			return ErrOrderLocked
		}

		demands, err := tx.Orders().SumQuantitiesByVariant(ctx, tx.DB(), ref)
		if err != nil {
			return err
		}
		demandByVariant := make(map[string]int, len(demands))
		for _, d := range demands {
			demandByVariant[d.VariantID] = d.Quantity
		}

		targets := make([]string, 0, len(demands))
		if len(in.VariantIDs) > 0 {
			for _, raw := range in.VariantIDs {
				if id := inventory.NormalizeVariantID(raw); id != "" {
					targets = append(targets, id)
				}
			}
		} else {
			for _, d := range demands {
				targets = append(targets, d.VariantID)
			}
		}

		for _, variantID := range targets {
			if in.Reserve {
				changed, err := u.reserveVariant(ctx, tx, ref, variantID, demandByVariant[variantID])
				if err != nil {
					return err
				}
				if changed {
					result.Changed++
				}
			} else {
				changed, err := u.releaseVariant(ctx, tx, ref, variantID)
				if err != nil {
					return err
				}
				if changed {
					result.Changed++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *reserveUseCaseImpl) reserveVariant(ctx context.Context, tx shared.Tx, ref order.Ref, variantID string, quantity int) (bool, error) {
	existing, err := tx.Inventory().FindReserve(ctx, tx.DB(), ref, variantID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if quantity <= 0 {
		return false, nil
	}

	stock, err := tx.Inventory().LockStock(ctx, tx.DB(), ref.ShopDomain, variantID)
	if err != nil {
		return false, err
	}
	after, err := tx.Inventory().AdjustStock(ctx, tx.DB(), ref.ShopDomain, variantID, -quantity)
	if err != nil {
		return false, err
	}

	// record the actual withdrawal, which may be less than requested when
	// the deduction clamped at zero
	err = tx.Inventory().UpsertReserve(ctx, tx.DB(), inventory.Reserve{
		ShopDomain: ref.ShopDomain,
		OrderID:    ref.OrderID,
		VariantID:  variantID,
		Quantity:   stock.Quantity - after,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *reserveUseCaseImpl) releaseVariant(ctx context.Context, tx shared.Tx, ref order.Ref, variantID string) (bool, error) {
	existing, err := tx.Inventory().FindReserve(ctx, tx.DB(), ref, variantID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if _, err := tx.Inventory().LockStock(ctx, tx.DB(), ref.ShopDomain, variantID); err != nil {
		return false, err
	}
	if _, err := tx.Inventory().AdjustStock(ctx, tx.DB(), ref.ShopDomain, variantID, existing.Quantity); err != nil {
		return false, err
	}
	if err := tx.Inventory().DeleteReserve(ctx, tx.DB(), ref, variantID); err != nil {
		return false, err
	}
	return true, nil
}
