//go:build e2e

package orders_test

import (
	"context"

	"orderflow/internal/domain/inventory"
	"orderflow/internal/domain/order"
	"orderflow/internal/infra/repository"
	"orderflow/tests/common/dbtest"

	"github.com/stretchr/testify/require"
)

func (s *ordersSuite) TestMoveLedgerInsert() {
	s.Run("duplicate move is a silent skip and the transaction stays usable", func() {
		ctx := context.Background()
		repo := repository.NewInventoryRepository()
		move := inventory.Move{
			ShopDomain: shop,
			OrderID:    "7001",
			VariantID:  "9001",
			Reason:     inventory.ReasonOrderProcessing,
			Delta:      -2,
			Applied:    true,
		}

		tx, err := s.DB.Begin(ctx)
		require.NoError(s.T(), err)
		defer func() { _ = tx.Rollback(ctx) }()

		already, err := repo.InsertMove(ctx, tx, move)
		require.NoError(s.T(), err)
		s.False(already)

		already, err = repo.InsertMove(ctx, tx, move)
		require.NoError(s.T(), err)
		s.True(already)

		// later statements in the same transaction must still succeed
		ref := order.Ref{ShopDomain: shop, OrderID: "7001"}
		require.NoError(s.T(), repo.DeleteReservesForOrder(ctx, tx, ref))
		require.NoError(s.T(), tx.Commit(ctx))

		count, err := dbtest.CountRows(s.DB, "inventory_move", shop, "7001")
		require.NoError(s.T(), err)
		s.Equal(1, count)
	})
}
