package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
)

type ShopRepo struct{ db *sqlx.DB }

func NewShopRepo(db *sqlx.DB) *ShopRepo { return &ShopRepo{db: db} }

func (r *ShopRepo) ByUser(userID int64) (*domain.Shop, error) {
	var s domain.Shop
	err := r.db.Get(&s, `SELECT id, name, user_id, state FROM shops WHERE user_id=?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetState toggles the owner's shop on or off. Inactive shops drop out
// of the public catalog.
func (r *ShopRepo) SetState(userID int64, state bool) (int64, error) {
	res, err := r.db.Exec(`UPDATE shops SET state=? WHERE user_id=?`, state, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ShopRepo) ListActive() ([]domain.Shop, error) {
	out := []domain.Shop{}
	err := r.db.Select(&out, `SELECT id, name, user_id, state FROM shops WHERE state=1 ORDER BY name`)
	return out, err
}

func (r *ShopRepo) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM shops WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
