package request

type IssueTokenRequest struct {
	ShopDomain string `json:"shop_domain" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
}

type OpenScanRequest struct {
	Token string `json:"token" binding:"required"`
}
