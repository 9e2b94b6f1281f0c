package response

import (
	"orderflow/internal/usecase/commands"
)

type MutateTagResponse struct {
	Labels []string               `json:"labels"`
	Ledger *commands.LedgerResult `json:"ledger,omitempty"`
}

func NewMutateTagResponse(result *commands.MutateTagResult) MutateTagResponse {
	return MutateTagResponse{
		Labels: result.Labels,
		Ledger: result.Ledger,
	}
}

type CancelOrderResponse struct {
	Labels   []string `json:"labels"`
	Released int      `json:"released"`
}

type SetReserveResponse struct {
	Reserved bool `json:"reserved"`
	Changed  int  `json:"changed"`
}
