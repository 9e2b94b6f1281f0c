package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"orderflow/internal/pkg/errs"
)

// PlatformOrder is the slice of the platform order payload the pre-checks
// need.
type PlatformOrder struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	FulfillmentStatus string             `json:"fulfillment_status"`
	FinancialStatus   string             `json:"financial_status"`
	CancelledAt       string             `json:"cancelled_at"`
	LineItems         []PlatformLineItem `json:"line_items"`
}

type PlatformLineItem struct {
	ID                  int64  `json:"id"`
	VariantID           int64  `json:"variant_id"`
	Quantity            int    `json:"quantity"`
	FulfillableQuantity int    `json:"fulfillable_quantity"`
}

type fulfillmentOrder struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	LineItems []struct {
		ID                int64 `json:"id"`
		RemainingQuantity int   `json:"fulfillable_quantity"`
	} `json:"line_items"`
}

type fulfillment struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func (c *Client) GetOrder(ctx context.Context, shopDomain, orderID string) (*PlatformOrder, error) {
	var resp struct {
		Order PlatformOrder `json:"order"`
	}
	url := c.restURL(shopDomain, "orders/"+orderID+".json")
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// FulfillAll requests fulfillment of every remaining quantity on the order in
// one call. Already fulfilled orders and orders with no open fulfillment
// orders are a no-op.
func (c *Client) FulfillAll(ctx context.Context, shopDomain, orderID string) error {
	ord, err := c.GetOrder(ctx, shopDomain, orderID)
	if err != nil {
		return err
	}
	if ord.FulfillmentStatus == "fulfilled" {
		return nil
	}

	var foResp struct {
		FulfillmentOrders []fulfillmentOrder `json:"fulfillment_orders"`
	}
	url := c.restURL(shopDomain, "orders/"+orderID+"/fulfillment_orders.json")
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &foResp); err != nil {
		return err
	}

	type byFulfillmentOrder struct {
		FulfillmentOrderID int64 `json:"fulfillment_order_id"`
	}
	var targets []byFulfillmentOrder
	for _, fo := range foResp.FulfillmentOrders {
		if fo.Status != "open" && fo.Status != "in_progress" {
			continue
		}
		remaining := 0
		for _, li := range fo.LineItems {
			remaining += li.RemainingQuantity
		}
		if remaining > 0 {
			targets = append(targets, byFulfillmentOrder{FulfillmentOrderID: fo.ID})
		}
	}
	if len(targets) == 0 {
		return nil
	}

	body := map[string]any{
		"fulfillment": map[string]any{
			"line_items_by_fulfillment_order": targets,
			"notify_customer":                 false,
		},
	}
	return c.doJSON(ctx, http.MethodPost, c.restURL(shopDomain, "fulfillments.json"), body, nil)
}

// Unfulfill cancels every active fulfillment, newest first. Partial failures
// accumulate instead of aborting the remainder.
func (c *Client) Unfulfill(ctx context.Context, shopDomain, orderID string) error {
	var resp struct {
		Fulfillments []fulfillment `json:"fulfillments"`
	}
	url := c.restURL(shopDomain, "orders/"+orderID+"/fulfillments.json")
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return err
	}

	active := make([]fulfillment, 0, len(resp.Fulfillments))
	for _, f := range resp.Fulfillments {
		if f.Status != "cancelled" {
			active = append(active, f)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt > active[j].CreatedAt
	})

	var failures []error
	for _, f := range active {
		cancelURL := c.restURL(shopDomain, fmt.Sprintf("fulfillments/%d/cancel.json", f.ID))
		if err := c.doJSON(ctx, http.MethodPost, cancelURL, nil, nil); err != nil {
			failures = append(failures, errs.Wrap(err, fmt.Sprintf("cancel fulfillment %d", f.ID)))
		}
	}
	return errors.Join(failures...)
}

const markAsPaidMutation = `
mutation orderMarkAsPaid($input: OrderMarkAsPaidInput!) {
  orderMarkAsPaid(input: $input) {
    order { id }
    userErrors { field message }
  }
}`

// MarkPaid marks the order paid via the GraphQL mutation, skipping orders
// that are already paid or partially paid.
func (c *Client) MarkPaid(ctx context.Context, shopDomain, orderID string) error {
	ord, err := c.GetOrder(ctx, shopDomain, orderID)
	if err != nil {
		return err
	}
	switch ord.FinancialStatus {
	case "paid", "partially_paid":
		return nil
	}

	var data struct {
		OrderMarkAsPaid struct {
			UserErrors []struct {
				Message string `json:"message"`
			} `json:"userErrors"`
		} `json:"orderMarkAsPaid"`
	}
	variables := map[string]any{
		"input": map[string]any{
			"id": "gid://shopify/Order/" + orderID,
		},
	}
	if err := c.doGraphQL(ctx, shopDomain, markAsPaidMutation, variables, &data); err != nil {
		return err
	}
	if ue := data.OrderMarkAsPaid.UserErrors; len(ue) > 0 {
		return errs.New("mark as paid rejected: " + ue[0].Message)
	}
	return nil
}

// CancelOrder requests platform-side cancellation.
func (c *Client) CancelOrder(ctx context.Context, shopDomain, orderID, reason string) error {
	body := map[string]any{}
	if reason != "" {
		body["reason"] = reason
	}
	url := c.restURL(shopDomain, "orders/"+orderID+"/cancel.json")
	return c.doJSON(ctx, http.MethodPost, url, body, nil)
}
