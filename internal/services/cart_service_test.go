package services_test

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/repos"
	"orderdesk/internal/services"
)

// twoItemFeed carries a 100-unit and a 50-unit good, the pricing
// fixture used across the cart tests.
const twoItemFeed = `
shop: S1
categories:
  - id: 1
    name: C1
goods:
  - id: 1
    category: 1
    name: Widget
    price: 100
    price_rrc: 150
    quantity: 5
  - id: 2
    category: 1
    name: Gadget
    price: 50
    price_rrc: 70
    quantity: 9
`

// seedCatalog ingests twoItemFeed and returns the two listing ids in
// feed order.
func seedCatalog(t *testing.T, db *sqlx.DB) []int64 {
	t.Helper()
	catalog := repos.NewCatalogRepo(db)
	partnerID := createUser(t, db, "partner@test.io", domain.RoleShop)
	res, err := catalog.Reconcile(partnerID, parseFeed(t, twoItemFeed))
	require.NoError(t, err)
	listings, err := catalog.SearchListings(res.ShopID, 0)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	return []int64{listings[0].ID, listings[1].ID}
}

func TestCartAddListAndTotal(t *testing.T) {
	db := memdb(t)
	infos := seedCatalog(t, db)
	userID := createUser(t, db, "buyer@test.io", domain.RoleCustomer)
	cart := services.NewCartService(repos.NewOrderRepo(db))

	// Absent cart is an empty result, not an error.
	views, err := cart.List(userID)
	require.NoError(t, err)
	assert.Empty(t, views)

	created, err := cart.AddItems(userID, fmt.Sprintf(
		`[{"product_info": %d, "quantity": 2}, {"product_info": %d, "quantity": 3}]`,
		infos[0], infos[1]))
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	views, err = cart.List(userID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.StatusCart, views[0].Status)
	assert.Equal(t, int64(2*100+3*50), views[0].TotalSum)
	assert.Len(t, views[0].Items, 2)
}

func TestCartAddDuplicateAborts(t *testing.T) {
	db := memdb(t)
	infos := seedCatalog(t, db)
	userID := createUser(t, db, "buyer@test.io", domain.RoleCustomer)
	cart := services.NewCartService(repos.NewOrderRepo(db))

	_, err := cart.AddItems(userID, fmt.Sprintf(`[{"product_info": %d, "quantity": 1}]`, infos[0]))
	require.NoError(t, err)

	// Same listing again, bundled with a fresh one: nothing must land.
	_, err = cart.AddItems(userID, fmt.Sprintf(
		`[{"product_info": %d, "quantity": 2}, {"product_info": %d, "quantity": 1}]`,
		infos[1], infos[0]))
	assert.ErrorIs(t, err, domain.ErrDuplicateItem)

	views, err := cart.List(userID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].Items, 1, "zero additional inserts after duplicate")
}

func TestCartAddValidation(t *testing.T) {
	db := memdb(t)
	infos := seedCatalog(t, db)
	userID := createUser(t, db, "buyer@test.io", domain.RoleCustomer)
	cart := services.NewCartService(repos.NewOrderRepo(db))

	_, err := cart.AddItems(userID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = cart.AddItems(userID, `not json`)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = cart.AddItems(userID, `[{"product_info": 424242, "quantity": 1}]`)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = cart.AddItems(userID, fmt.Sprintf(`[{"product_info": %d, "quantity": 0}]`, infos[0]))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCartRemoveItemsMixedIDs(t *testing.T) {
	db := memdb(t)
	infos := seedCatalog(t, db)
	userID := createUser(t, db, "buyer@test.io", domain.RoleCustomer)
	other := createUser(t, db, "other@test.io", domain.RoleCustomer)
	orderRepo := repos.NewOrderRepo(db)
	cart := services.NewCartService(orderRepo)

	_, err := cart.AddItems(userID, fmt.Sprintf(
		`[{"product_info": %d, "quantity": 2}, {"product_info": %d, "quantity": 3}]`,
		infos[0], infos[1]))
	require.NoError(t, err)
	views, err := cart.List(userID)
	require.NoError(t, err)
	itemID := views[0].Items[0].ID

	// Another user's cart line must be untouchable.
	_, err = cart.AddItems(other, fmt.Sprintf(`[{"product_info": %d, "quantity": 1}]`, infos[0]))
	require.NoError(t, err)
	otherViews, err := cart.List(other)
	require.NoError(t, err)
	foreignID := otherViews[0].Items[0].ID

	deleted, err := cart.RemoveItems(userID, fmt.Sprintf("abc,%d,%d,99999", itemID, foreignID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "only the valid caller-owned id counts")

	views, err = cart.List(userID)
	require.NoError(t, err)
	assert.Len(t, views[0].Items, 1)
	assert.Equal(t, int64(3*50), views[0].TotalSum)

	// No numeric id at all is a validation error, not a silent no-op.
	_, err = cart.RemoveItems(userID, "a,b,c")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCartUpdateQuantities(t *testing.T) {
	db := memdb(t)
	infos := seedCatalog(t, db)
	userID := createUser(t, db, "buyer@test.io", domain.RoleCustomer)
	cart := services.NewCartService(repos.NewOrderRepo(db))

	_, err := cart.AddItems(userID, fmt.Sprintf(
		`[{"product_info": %d, "quantity": 2}, {"product_info": %d, "quantity": 3}]`,
		infos[0], infos[1]))
	require.NoError(t, err)
	views, err := cart.List(userID)
	require.NoError(t, err)
	first, second := views[0].Items[0].ID, views[0].Items[1].ID

	// One conforming entry, one with a string quantity, one with a
	// fractional id: only the first applies.
	updated, err := cart.UpdateQuantities(userID, fmt.Sprintf(
		`[{"id": %d, "quantity": 4}, {"id": %d, "quantity": "many"}, {"id": 1.5, "quantity": 2}]`,
		first, second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	views, err = cart.List(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4*100+3*50), views[0].TotalSum)
}
