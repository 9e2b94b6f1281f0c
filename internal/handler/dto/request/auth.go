package request

type IssueAuthTokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
	Client string `json:"client"`
}
