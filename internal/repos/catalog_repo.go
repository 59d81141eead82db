package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
	"orderdesk/internal/feed"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// IngestResult reports how much of a feed was applied.
type IngestResult struct {
	ShopID     int64 `json:"shop"`
	Categories int   `json:"categories"`
	Goods      int   `json:"goods"`
}

// Reconcile applies a parsed feed to the catalog in one transaction:
// get-or-create the shop for (feed.Shop, ownerID), upsert categories
// and their shop links, then drop every listing the shop had and
// rebuild the set from the feed. Any constraint violation rolls the
// whole ingestion back, leaving the previous catalog intact.
func (r *CatalogRepo) Reconcile(ownerID int64, f *feed.Feed) (IngestResult, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return IngestResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	shopID, err := getOrCreateShop(tx, f.Shop, ownerID)
	if err != nil {
		return IngestResult{}, err
	}

	for _, c := range f.Categories {
		if err := getOrCreateCategory(tx, c.ID, c.Name); err != nil {
			return IngestResult{}, err
		}
		// Idempotent attach of the shop to the category.
		if _, err := tx.Exec(`
			INSERT INTO shop_categories(category_id, shop_id) VALUES(?,?)
			ON CONFLICT(category_id, shop_id) DO NOTHING
		`, c.ID, shopID); err != nil {
			return IngestResult{}, err
		}
	}

	// Wholesale replacement; product_parameters and order items
	// referencing the old listings go with them.
	if _, err := tx.Exec(`DELETE FROM product_infos WHERE shop_id=?`, shopID); err != nil {
		return IngestResult{}, err
	}

	for _, g := range f.Goods {
		productID, err := getOrCreateProduct(tx, g.Name, g.Category)
		if err != nil {
			return IngestResult{}, err
		}
		res, err := tx.Exec(`
			INSERT INTO product_infos(product_id, shop_id, external_id, model, price, price_rrc, quantity)
			VALUES(?,?,?,?,?,?,?)
		`, productID, shopID, g.ID, g.Model, g.Price, g.PriceRRC, g.Quantity)
		if err != nil {
			return IngestResult{}, err
		}
		infoID, err := res.LastInsertId()
		if err != nil {
			return IngestResult{}, err
		}
		for name, value := range g.Parameters {
			paramID, err := getOrCreateParameter(tx, name)
			if err != nil {
				return IngestResult{}, err
			}
			if _, err := tx.Exec(`
				INSERT INTO product_parameters(product_info_id, parameter_id, value)
				VALUES(?,?,?)
			`, infoID, paramID, value); err != nil {
				return IngestResult{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestResult{}, err
	}
	return IngestResult{ShopID: shopID, Categories: len(f.Categories), Goods: len(f.Goods)}, nil
}

// Shop identity is (name, owner): two partners may run same-named shops
// independently of each other.
func getOrCreateShop(tx *sqlx.Tx, name string, ownerID int64) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM shops WHERE name=? AND user_id=?`, name, ownerID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.Exec(`INSERT INTO shops(name, user_id) VALUES(?,?)`, name, ownerID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getOrCreateCategory(tx *sqlx.Tx, id int64, name string) error {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM categories WHERE id=? AND name=?`, id, name); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// A feed id already taken by a different name fails the primary key
	// and aborts the ingestion.
	_, err := tx.Exec(`INSERT INTO categories(id, name) VALUES(?,?)`, id, name)
	return err
}

// Products are keyed by (name, category), not by name alone.
func getOrCreateProduct(tx *sqlx.Tx, name string, categoryID int64) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM products WHERE name=? AND category_id=?`, name, categoryID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.Exec(`INSERT INTO products(name, category_id) VALUES(?,?)`, name, categoryID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getOrCreateParameter(tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM parameters WHERE name=?`, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.Exec(`INSERT INTO parameters(name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---------- Categories ----------

func (r *CatalogRepo) ListCategories() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY name`)
	return out, err
}

func (r *CatalogRepo) CreateCategory(name string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name) VALUES(?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CatalogRepo) DeleteCategory(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ---------- Listings ----------

type Listing struct {
	ID         int64             `db:"id" json:"id"`
	Product    string            `db:"product" json:"product"`
	Category   string            `db:"category" json:"category"`
	Shop       string            `db:"shop" json:"shop"`
	ShopID     int64             `db:"shop_id" json:"shop_id"`
	ExternalID int64             `db:"external_id" json:"external_id"`
	Model      string            `db:"model" json:"model"`
	Price      int64             `db:"price" json:"price"`
	PriceRRC   int64             `db:"price_rrc" json:"price_rrc"`
	Quantity   int               `db:"quantity" json:"quantity"`
	Parameters map[string]string `json:"parameters"`
}

// SearchListings returns listings from active shops, optionally
// narrowed to one shop and/or one category.
func (r *CatalogRepo) SearchListings(shopID, categoryID int64) ([]Listing, error) {
	q := `
		SELECT pi.id, p.name AS product, c.name AS category, s.name AS shop, s.id AS shop_id,
		       pi.external_id, pi.model, pi.price, pi.price_rrc, pi.quantity
		FROM product_infos pi
		JOIN products p ON p.id = pi.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN shops s ON s.id = pi.shop_id
		WHERE s.state = 1`
	args := []any{}
	if shopID != 0 {
		q += ` AND s.id = ?`
		args = append(args, shopID)
	}
	if categoryID != 0 {
		q += ` AND c.id = ?`
		args = append(args, categoryID)
	}
	q += ` ORDER BY pi.id`

	out := []Listing{}
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	if err := r.attachParameters(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepo) attachParameters(listings []Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]int64, len(listings))
	byID := make(map[int64]*Listing, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
		listings[i].Parameters = map[string]string{}
		byID[listings[i].ID] = &listings[i]
	}
	query, args, err := sqlx.In(`
		SELECT pp.product_info_id, pr.name AS parameter, pp.value
		FROM product_parameters pp
		JOIN parameters pr ON pr.id = pp.parameter_id
		WHERE pp.product_info_id IN (?)
	`, ids)
	if err != nil {
		return err
	}
	var rows []domain.ProductParameter
	if err := r.db.Select(&rows, query, args...); err != nil {
		return err
	}
	for _, row := range rows {
		if l, ok := byID[row.ProductInfoID]; ok {
			l.Parameters[row.Parameter] = row.Value
		}
	}
	return nil
}
