// Package httperr defines the JSON envelope rendered for errors that reach
// the middleware layer instead of being written inline by a handler.
package httperr

// Response is the error body shared by the deferred-error and recovery
// middleware. Status rides along for the writer and is never serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// New builds an envelope carrying the given status and public message.
func New(status int, message string) Response {
	resp := Response{Status: status}
	resp.Error.Message = message
	return resp
}
