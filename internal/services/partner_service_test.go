package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/feed"
	"orderdesk/internal/repos"
	"orderdesk/internal/services"
)

func TestIngestFromURL(t *testing.T) {
	db := memdb(t)
	partnerID := createUser(t, db, "partner@test.io", domain.RoleShop)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(widgetFeed))
	}))
	defer srv.Close()

	svc := services.NewPartnerService(
		repos.NewCatalogRepo(db), repos.NewShopRepo(db), repos.NewOrderRepo(db),
		feed.NewFetcher(time.Second))

	res, err := svc.Ingest(context.Background(), partnerID, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Goods)

	_, err = svc.Ingest(context.Background(), partnerID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIngestBadFeedLeavesNoTrace(t *testing.T) {
	db := memdb(t)
	partnerID := createUser(t, db, "partner@test.io", domain.RoleShop)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("categories: []\n")) // no shop key
	}))
	defer srv.Close()

	svc := services.NewPartnerService(
		repos.NewCatalogRepo(db), repos.NewShopRepo(db), repos.NewOrderRepo(db),
		feed.NewFetcher(time.Second))

	_, err := svc.Ingest(context.Background(), partnerID, srv.URL)
	assert.ErrorIs(t, err, domain.ErrMalformedFeed)

	var shops int
	require.NoError(t, db.Get(&shops, `SELECT COUNT(*) FROM shops`))
	assert.Zero(t, shops, "malformed feed mutates nothing")
}

func TestShopStateToggle(t *testing.T) {
	db := memdb(t)
	catalog := repos.NewCatalogRepo(db)
	partnerID := createUser(t, db, "partner@test.io", domain.RoleShop)
	res, err := catalog.Reconcile(partnerID, parseFeed(t, widgetFeed))
	require.NoError(t, err)

	svc := services.NewPartnerService(catalog, repos.NewShopRepo(db), repos.NewOrderRepo(db), feed.NewFetcher(time.Second))

	shop, err := svc.State(partnerID)
	require.NoError(t, err)
	assert.True(t, shop.State)

	assert.ErrorIs(t, svc.SetState(partnerID, "maybe"), domain.ErrValidation)
	require.NoError(t, svc.SetState(partnerID, "false"))

	shop, err = svc.State(partnerID)
	require.NoError(t, err)
	assert.False(t, shop.State)

	// Inactive shops disappear from the public catalog.
	listings, err := catalog.SearchListings(res.ShopID, 0)
	require.NoError(t, err)
	assert.Empty(t, listings)
	active, err := repos.NewShopRepo(db).ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.SetState(partnerID, "true"))
	listings, err = catalog.SearchListings(res.ShopID, 0)
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	// No shop yet for this account.
	stranger := createUser(t, db, "noshop@test.io", domain.RoleShop)
	assert.ErrorIs(t, svc.SetState(stranger, "true"), domain.ErrNotFound)
	_, err = svc.State(stranger)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
