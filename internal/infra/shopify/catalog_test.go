//go:build unit

package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchVariant(t *testing.T) {
	catalog := []CatalogVariant{
		{VariantID: "11", ProductTitle: "Classic Tee", Options: []string{"Black", "M"}},
		{VariantID: "12", ProductTitle: "Classic Tee", Options: []string{"Black", "L"}},
		{VariantID: "21", ProductTitle: "Hoodie Premium", Options: []string{"Navy", "M"}},
	}

	cases := []struct {
		name   string
		title  string
		color  string
		size   string
		wantID string
		wantOK bool
	}{
		{name: "exact", title: "Classic Tee", color: "Black", size: "L", wantID: "12", wantOK: true},
		{name: "case-insensitive", title: "classic tee", color: "black", size: "m", wantID: "11", wantOK: true},
		{name: "partial title", title: "Hoodie", color: "Navy", size: "M", wantID: "21", wantOK: true},
		{name: "no color constraint", title: "Classic Tee", size: "M", wantID: "11", wantOK: true},
		{name: "wrong size", title: "Classic Tee", color: "Black", size: "XL", wantOK: false},
		{name: "unknown title", title: "Jacket", wantOK: false},
		{name: "empty title", title: "", wantOK: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id, ok := MatchVariant(catalog, c.title, c.color, c.size)
			assert.Equal(t, c.wantOK, ok)
			assert.Equal(t, c.wantID, id)
		})
	}
}
