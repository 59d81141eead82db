package domain

const (
	RoleCustomer = "customer"
	RoleShop     = "shop"
	RoleAdmin    = "admin"
)

type User struct {
	ID       int64  `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	Hash     string `db:"password_hash" json:"-"`
	Role     string `db:"role" json:"role"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
