// Package shopify wraps the order platform's admin API: REST for order and
// fulfillment operations, one GraphQL mutation for payment marking, and the
// webhook signature check.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/errs"
)

type Client struct {
	httpClient *http.Client
	adminToken string
	apiVersion string
}

func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		adminToken: cfg.AdminToken,
		apiVersion: cfg.APIVersion,
	}
}

func (c *Client) restURL(shopDomain, path string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/%s", shopDomain, c.apiVersion, path)
}

// doJSON performs one admin API call, decoding the response into out when
// out is non-nil. Non-2xx responses come back as errors carrying the body.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errs.Wrap(err, "build request")
	}
	req.Header.Set("X-Shopify-Access-Token", c.adminToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(err, "call platform API")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.New(fmt.Sprintf("platform API %s %s: status %d: %s",
			method, url, resp.StatusCode, string(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "decode response body")
	}
	return nil
}

type graphQLRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// doGraphQL runs one admin GraphQL call and decodes data into out.
func (c *Client) doGraphQL(ctx context.Context, shopDomain, query string, variables, out any) error {
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	url := c.restURL(shopDomain, "graphql.json")
	if err := c.doJSON(ctx, http.MethodPost, url, graphQLRequest{Query: query, Variables: variables}, &envelope); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		return errs.New("platform GraphQL: " + envelope.Errors[0].Message)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errs.Wrap(err, "decode GraphQL data")
		}
	}
	return nil
}
