package response

import (
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/tags"
	"orderflow/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type IssueTokenResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type ScanOrder struct {
	ShopDomain        string     `json:"shop_domain"`
	OrderID           string     `json:"order_id"`
	OrderName         string     `json:"order_name"`
	Labels            []string   `json:"labels"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	FinancialStatus   string     `json:"financial_status"`
	CustomerEmail     string     `json:"customer_email"`
	ShippingMethod    string     `json:"shipping_method"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}

type ScanItem struct {
	LineID              string `json:"line_id"`
	Title               string `json:"title"`
	VariantTitle        string `json:"variant_title"`
	SKU                 string `json:"sku"`
	VariantID           string `json:"variant_id"`
	Quantity            int    `json:"quantity"`
	FulfillableQuantity int    `json:"fulfillable_quantity"`
}

type OpenScanResponse struct {
	Order          ScanOrder  `json:"order"`
	Items          []ScanItem `json:"items"`
	WorkflowStatus string     `json:"workflow_status"`
	AdvancedFrom   string     `json:"advanced_from"`
	AdvancedTo     string     `json:"advanced_to"`
}

func NewOpenScanResponse(result *commands.OpenScanResult) (OpenScanResponse, error) {
	resp := OpenScanResponse{
		WorkflowStatus: string(result.WorkflowStatus),
		AdvancedFrom:   string(result.AdvancedFrom),
		AdvancedTo:     string(result.AdvancedTo),
	}
	if err := copier.Copy(&resp.Order, result.Order); err != nil {
		return OpenScanResponse{}, errs.Wrap(err, "convert scan order")
	}
	resp.Order.Labels = tags.Parse(result.Order.Tags)
	if err := copier.Copy(&resp.Items, result.Items); err != nil {
		return OpenScanResponse{}, errs.Wrap(err, "convert scan items")
	}
	return resp, nil
}
