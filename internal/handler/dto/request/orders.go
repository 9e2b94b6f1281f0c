package request

import (
	"orderflow/internal/usecase/commands"
)

type MutateTagRequest struct {
	ShopDomain string `json:"shop_domain" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
	Action     string `json:"action" binding:"required"`
	Label      string `json:"label"`
}

func (r MutateTagRequest) ToInput() commands.MutateTagInput {
	return commands.MutateTagInput{
		ShopDomain: r.ShopDomain,
		OrderID:    r.OrderID,
		Action:     commands.TagAction(r.Action),
		Label:      r.Label,
	}
}

type CancelOrderRequest struct {
	ShopDomain string `json:"shop_domain" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
	Reason     string `json:"reason"`
}
