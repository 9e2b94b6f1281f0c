package queries

import "time"

// Read models (DTO for read side)
type OrderListItem struct {
	OrderID           string     `json:"order_id"`
	OrderName         string     `json:"order_name"`
	Tags              []string   `json:"tags"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	FinancialStatus   string     `json:"financial_status"`
	Total             string     `json:"total"`
	Currency          string     `json:"currency"`
	CustomerEmail     string     `json:"customer_email"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

type OrderView struct {
	OrderID           string          `json:"order_id"`
	OrderName         string          `json:"order_name"`
	Tags              []string        `json:"tags"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	FinancialStatus   string          `json:"financial_status"`
	Total             string          `json:"total"`
	Currency          string          `json:"currency"`
	CustomerEmail     string          `json:"customer_email"`
	ShippingMethod    string          `json:"shipping_method"`
	Note              string          `json:"note"`
	WorkflowStatus    string          `json:"workflow_status"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
	Items             []OrderItemView `json:"items"`
}

type OrderItemView struct {
	LineID              string `json:"line_id"`
	Title               string `json:"title"`
	VariantTitle        string `json:"variant_title"`
	SKU                 string `json:"sku"`
	VariantID           string `json:"variant_id"`
	Quantity            int    `json:"quantity"`
	FulfillableQuantity int    `json:"fulfillable_quantity"`
	UnitPrice           string `json:"unit_price"`
}

type OrderPage struct {
	Items   []*OrderListItem `json:"items"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

type ShopSummary struct {
	Orders     int `json:"orders"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Complete   int `json:"complete"`
	Cancelled  int `json:"cancelled"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	DefaultPerPage   = 25
)
