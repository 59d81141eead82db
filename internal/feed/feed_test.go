package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/feed"
)

const sampleFeed = `
shop: S1
categories:
  - id: 1
    name: C1
goods:
  - id: 1
    category: 1
    name: Widget
    model: W1
    price: 100
    price_rrc: 150
    quantity: 5
    parameters:
      "color": red
`

func TestParseSampleFeed(t *testing.T) {
	f, err := feed.Parse([]byte(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "S1", f.Shop)
	require.Len(t, f.Categories, 1)
	assert.Equal(t, int64(1), f.Categories[0].ID)
	assert.Equal(t, "C1", f.Categories[0].Name)

	require.Len(t, f.Goods, 1)
	g := f.Goods[0]
	assert.Equal(t, "Widget", g.Name)
	assert.Equal(t, "W1", g.Model)
	assert.Equal(t, int64(100), g.Price)
	assert.Equal(t, int64(150), g.PriceRRC)
	assert.Equal(t, 5, g.Quantity)
	assert.Equal(t, map[string]string{"color": "red"}, g.Parameters)
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"not yaml":        `{{{`,
		"missing shop":    "categories: []\ngoods: []\n",
		"category no id":  "shop: S\ncategories:\n  - name: C\n",
		"good no name":    "shop: S\ngoods:\n  - id: 1\n    category: 1\n",
		"wrong type":      "shop: S\ngoods:\n  - id: 1\n    category: 1\n    name: X\n    quantity: lots\n",
		"negative price":  "shop: S\ngoods:\n  - id: 1\n    category: 1\n    name: X\n    price: -5\n",
		"good no categid": "shop: S\ngoods:\n  - id: 1\n    name: X\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := feed.Parse([]byte(raw))
			assert.ErrorIs(t, err, domain.ErrMalformedFeed)
		})
	}
}

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	body, err := feed.NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, sampleFeed, string(body))
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := feed.NewFetcher(time.Second)

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrFetch)

	_, err = f.Fetch(context.Background(), "not a url")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.Fetch(context.Background(), "ftp://example.com/feed.yaml")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := feed.NewFetcher(50 * time.Millisecond).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("want ErrFetch on timeout, got %v", err)
	}
}
