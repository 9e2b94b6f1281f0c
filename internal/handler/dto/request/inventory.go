package request

import (
	"orderflow/internal/usecase/commands"
)

type SetReserveRequest struct {
	ShopDomain string   `json:"shop_domain" binding:"required"`
	OrderID    string   `json:"order_id" binding:"required"`
	VariantIDs []string `json:"variant_ids"`
	Reserve    *bool    `json:"reserve" binding:"required"`
}

func (r SetReserveRequest) ToInput() commands.SetReserveInput {
	return commands.SetReserveInput{
		ShopDomain: r.ShopDomain,
		OrderID:    r.OrderID,
		VariantIDs: r.VariantIDs,
		Reserve:    r.Reserve != nil && *r.Reserve,
	}
}
