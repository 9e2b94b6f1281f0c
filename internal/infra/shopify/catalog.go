package shopify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// CatalogVariant is one sellable variant as the matcher sees it: the product
// title plus the variant's option values (color, size).
type CatalogVariant struct {
	VariantID    string
	ProductTitle string
	Options      []string
}

// ListCatalog pages through the shop's products and flattens them into
// matchable variants.
func (c *Client) ListCatalog(ctx context.Context, shopDomain string) ([]CatalogVariant, error) {
	type productVariant struct {
		ID      int64  `json:"id"`
		Option1 string `json:"option1"`
		Option2 string `json:"option2"`
		Option3 string `json:"option3"`
	}
	type product struct {
		ID       int64            `json:"id"`
		Title    string           `json:"title"`
		Variants []productVariant `json:"variants"`
	}

	var result []CatalogVariant
	sinceID := int64(0)
	for {
		var resp struct {
			Products []product `json:"products"`
		}
		url := c.restURL(shopDomain,
			"products.json?limit=250&fields=id,title,variants&since_id="+strconv.FormatInt(sinceID, 10))
		if err := c.doJSON(ctx, http.MethodGet, url, nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Products) == 0 {
			return result, nil
		}
		for _, p := range resp.Products {
			for _, v := range p.Variants {
				opts := make([]string, 0, 3)
				for _, o := range []string{v.Option1, v.Option2, v.Option3} {
					if o != "" {
						opts = append(opts, o)
					}
				}
				result = append(result, CatalogVariant{
					VariantID:    strconv.FormatInt(v.ID, 10),
					ProductTitle: p.Title,
					Options:      opts,
				})
			}
			sinceID = p.ID
		}
	}
}

// MatchVariant resolves (title, color, size) against the catalog: the product
// title must contain the requested title and every non-empty attribute must
// appear among the variant's option values. Matching is case-insensitive.
func MatchVariant(catalog []CatalogVariant, title, color, size string) (string, bool) {
	title = strings.ToLower(strings.TrimSpace(title))
	color = strings.ToLower(strings.TrimSpace(color))
	size = strings.ToLower(strings.TrimSpace(size))
	if title == "" {
		return "", false
	}

	for _, v := range catalog {
		if !strings.Contains(strings.ToLower(v.ProductTitle), title) {
			continue
		}
		if color != "" && !hasOption(v.Options, color) {
			continue
		}
		if size != "" && !hasOption(v.Options, size) {
			continue
		}
		return v.VariantID, true
	}
	return "", false
}

func hasOption(options []string, want string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), want) {
			return true
		}
	}
	return false
}
