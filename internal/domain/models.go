package domain

const (
	StatusCart = "cart"
	StatusNew  = "new"
)

type Shop struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	UserID int64  `db:"user_id" json:"user_id"`
	State  bool   `db:"state" json:"state"`
}

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	CategoryID int64  `db:"category_id" json:"category"`
}

// ProductInfo is a per-shop listing of a product. Rows are replaced
// wholesale on every successful price-list ingestion, so their ids are
// not stable across ingestions.
type ProductInfo struct {
	ID         int64  `db:"id" json:"id"`
	ProductID  int64  `db:"product_id" json:"product"`
	ShopID     int64  `db:"shop_id" json:"shop"`
	ExternalID int64  `db:"external_id" json:"external_id"`
	Model      string `db:"model" json:"model"`
	Price      int64  `db:"price" json:"price"`
	PriceRRC   int64  `db:"price_rrc" json:"price_rrc"`
	Quantity   int    `db:"quantity" json:"quantity"`
}

type Parameter struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type ProductParameter struct {
	ProductInfoID int64  `db:"product_info_id" json:"-"`
	Parameter     string `db:"parameter" json:"parameter"`
	Value         string `db:"value" json:"value"`
}

type Contact struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user"`
	City   string `db:"city" json:"city"`
	Street string `db:"street" json:"street"`
	House  string `db:"house" json:"house"`
	Phone  string `db:"phone" json:"phone"`
}

type Order struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user"`
	Status    string `db:"status" json:"status"`
	ContactID *int64 `db:"contact_id" json:"contact"`
	CreatedAt string `db:"created_at" json:"created_at"`
	TotalSum  int64  `db:"total_sum" json:"total_sum"`
}

type OrderItem struct {
	ID            int64 `db:"id" json:"id"`
	OrderID       int64 `db:"order_id" json:"order"`
	ProductInfoID int64 `db:"product_info_id" json:"product_info"`
	Quantity      int   `db:"quantity" json:"quantity"`
}
