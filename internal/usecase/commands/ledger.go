package commands

import (
	"context"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/usecase/shared"
)

// deductForProcessing applies the permanent processing deduction for every
// variant the order demands. The move ledger is the idempotency gate: a
// variant whose move row already exists is skipped without touching stock.
// Reserves are deleted afterwards since a real deduction supersedes them.
func deductForProcessing(ctx context.Context, tx shared.Tx, ref order.Ref) (*LedgerResult, error) {
	demands, err := tx.Orders().SumQuantitiesByVariant(ctx, tx.DB(), ref)
	if err != nil {
		return nil, err
	}

	result := &LedgerResult{Variants: make([]VariantApplication, 0, len(demands))}
	for _, d := range demands {
		already, err := tx.Inventory().InsertMove(ctx, tx.DB(), inventory.Move{
			ShopDomain: ref.ShopDomain,
			OrderID:    ref.OrderID,
			VariantID:  d.VariantID,
			Reason:     inventory.ReasonOrderProcessing,
			Delta:      -d.Quantity,
			Applied:    true,
		})
		if err != nil {
			return nil, err
		}
		if already {
			result.Variants = append(result.Variants, VariantApplication{
				VariantID: d.VariantID,
				Requested: d.Quantity,
			})
			continue
		}

		stock, err := tx.Inventory().LockStock(ctx, tx.DB(), ref.ShopDomain, d.VariantID)
		if err != nil {
			return nil, err
		}
		after, err := tx.Inventory().AdjustStock(ctx, tx.DB(), ref.ShopDomain, d.VariantID, -d.Quantity)
		if err != nil {
			return nil, err
		}
		result.AppliedCount++
		result.Variants = append(result.Variants, VariantApplication{
			VariantID: d.VariantID,
			Requested: d.Quantity,
			Applied:   true,
			Withdrawn: stock.Quantity - after,
		})
	}

	// processing supersedes any reservation, without crediting stock back
	if err := tx.Inventory().DeleteReservesForOrder(ctx, tx.DB(), ref); err != nil {
		return nil, err
	}
	return result, nil
}

// releaseForCancellation returns every reserved quantity to stock and drops
// the reserve rows. Returns the number of reserves released.
func releaseForCancellation(ctx context.Context, tx shared.Tx, ref order.Ref) (int, error) {
	reserves, err := tx.Inventory().ReservesForOrder(ctx, tx.DB(), ref)
	if err != nil {
		return 0, err
	}
	for _, res := range reserves {
		if _, err := tx.Inventory().LockStock(ctx, tx.DB(), ref.ShopDomain, res.VariantID); err != nil {
			return 0, err
		}
		if _, err := tx.Inventory().AdjustStock(ctx, tx.DB(), ref.ShopDomain, res.VariantID, res.Quantity); err != nil {
			return 0, err
		}
	}
	if err := tx.Inventory().DeleteReservesForOrder(ctx, tx.DB(), ref); err != nil {
		return 0, err
	}
	return len(reserves), nil
}
