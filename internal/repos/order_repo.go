package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ItemSpec is one requested cart line, as supplied by the client.
type ItemSpec struct {
	ProductInfo int64 `json:"product_info"`
	Quantity    int   `json:"quantity"`
}

type OrderItemRow struct {
	ID            int64  `db:"id" json:"id"`
	ProductInfoID int64  `db:"product_info_id" json:"product_info"`
	Product       string `db:"product" json:"product"`
	Shop          string `db:"shop" json:"shop"`
	Quantity      int    `db:"quantity" json:"quantity"`
	Price         int64  `db:"price" json:"price"`
	Subtotal      int64  `db:"subtotal" json:"subtotal"`
}

type OrderView struct {
	domain.Order
	Items []OrderItemRow `json:"ordered_items"`
}

const orderSelect = `
	SELECT o.id, o.user_id, o.status, o.contact_id, o.created_at,
	       COALESCE(SUM(oi.quantity * pi.price), 0) AS total_sum
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN product_infos pi ON pi.id = oi.product_info_id
`

func (r *OrderRepo) GetOrCreateCart(userID int64) (int64, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM orders WHERE user_id=? AND status=?`, userID, domain.StatusCart)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := r.db.Exec(`INSERT INTO orders(user_id, status) VALUES(?,?)`, userID, domain.StatusCart)
	if isUniqueViolation(err) {
		// Lost a race with a concurrent create; the cart exists now.
		err = r.db.Get(&id, `SELECT id FROM orders WHERE user_id=? AND status=?`, userID, domain.StatusCart)
		return id, err
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListCart returns the user's cart with items and computed total, or an
// empty slice when the user has no cart yet.
func (r *OrderRepo) ListCart(userID int64) ([]OrderView, error) {
	return r.listOrders(orderSelect+`
		WHERE o.user_id=? AND o.status=?
		GROUP BY o.id
	`, userID, domain.StatusCart)
}

// ListByUser returns the user's placed orders (everything but the cart).
func (r *OrderRepo) ListByUser(userID int64) ([]OrderView, error) {
	return r.listOrders(orderSelect+`
		WHERE o.user_id=? AND o.status<>?
		GROUP BY o.id
		ORDER BY datetime(o.created_at) DESC
	`, userID, domain.StatusCart)
}

// ListByPartner returns placed orders containing at least one listing
// of the partner's shop. Totals cover the whole order, not only the
// partner's share.
func (r *OrderRepo) ListByPartner(partnerUserID int64) ([]OrderView, error) {
	return r.listOrders(orderSelect+`
		WHERE o.status<>? AND o.id IN (
			SELECT oi2.order_id FROM order_items oi2
			JOIN product_infos pi2 ON pi2.id = oi2.product_info_id
			JOIN shops s ON s.id = pi2.shop_id
			WHERE s.user_id=?
		)
		GROUP BY o.id
		ORDER BY datetime(o.created_at) DESC
	`, domain.StatusCart, partnerUserID)
}

func (r *OrderRepo) listOrders(query string, args ...any) ([]OrderView, error) {
	out := []OrderView{}
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.items(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepo) items(orderID int64) ([]OrderItemRow, error) {
	rows := []OrderItemRow{}
	err := r.db.Select(&rows, `
		SELECT oi.id, oi.product_info_id, p.name AS product, s.name AS shop,
		       oi.quantity, pi.price, (oi.quantity * pi.price) AS subtotal
		FROM order_items oi
		JOIN product_infos pi ON pi.id = oi.product_info_id
		JOIN products p ON p.id = pi.product_id
		JOIN shops s ON s.id = pi.shop_id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`, orderID)
	return rows, err
}

// AddItems inserts the requested lines into the user's cart, creating
// the cart on first use. The whole call is one transaction: a missing
// listing or a duplicate (order, listing) pair aborts every insert.
func (r *OrderRepo) AddItems(userID int64, items []ItemSpec) (int, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var cartID int64
	err = tx.Get(&cartID, `SELECT id FROM orders WHERE user_id=? AND status=?`, userID, domain.StatusCart)
	if errors.Is(err, sql.ErrNoRows) {
		res, ierr := tx.Exec(`INSERT INTO orders(user_id, status) VALUES(?,?)`, userID, domain.StatusCart)
		if ierr != nil {
			return 0, ierr
		}
		cartID, err = res.LastInsertId()
	}
	if err != nil {
		return 0, err
	}

	created := 0
	for _, it := range items {
		if it.Quantity < 1 {
			return 0, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrValidation)
		}
		var n int
		if err := tx.Get(&n, `SELECT COUNT(*) FROM product_infos WHERE id=?`, it.ProductInfo); err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: product_info %d not found", domain.ErrValidation, it.ProductInfo)
		}
		_, err := tx.Exec(`
			INSERT INTO order_items(order_id, product_info_id, quantity)
			VALUES(?,?,?)
		`, cartID, it.ProductInfo, it.Quantity)
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: product_info %d", domain.ErrDuplicateItem, it.ProductInfo)
		}
		if err != nil {
			return 0, err
		}
		created++
	}
	return created, tx.Commit()
}

// DeleteItems removes cart lines by id, restricted to the caller's
// cart. Ids pointing elsewhere simply do not match.
func (r *OrderRepo) DeleteItems(userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`
		DELETE FROM order_items
		WHERE id IN (?)
		  AND order_id = (SELECT id FROM orders WHERE user_id=? AND status=?)
	`, ids, userID, domain.StatusCart)
	if err != nil {
		return 0, err
	}
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *OrderRepo) UpdateQuantity(userID, itemID int64, quantity int) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE order_items SET quantity=?
		WHERE id=? AND order_id = (SELECT id FROM orders WHERE user_id=? AND status=?)
	`, quantity, itemID, userID, domain.StatusCart)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Place atomically moves the user's cart order to status 'new' with the
// given delivery contact. Zero matched rows means wrong owner, wrong id
// or an order that already left the cart state.
func (r *OrderRepo) Place(userID, orderID, contactID int64) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE orders SET contact_id=?, status=?
		WHERE id=? AND user_id=? AND status=?
	`, contactID, domain.StatusNew, orderID, userID, domain.StatusCart)
	if isForeignKeyViolation(err) {
		return false, fmt.Errorf("%w: unknown contact", domain.ErrValidation)
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
