package repos

import (
	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
)

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) ListByUser(userID int64) ([]domain.Contact, error) {
	out := []domain.Contact{}
	err := r.db.Select(&out, `
		SELECT id, user_id, city, street, house, phone
		FROM contacts WHERE user_id=? ORDER BY id
	`, userID)
	return out, err
}

func (r *ContactRepo) Create(c domain.Contact) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO contacts(user_id, city, street, house, phone)
		VALUES(?,?,?,?,?)
	`, c.UserID, c.City, c.Street, c.House, c.Phone)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a contact, restricted to the owner's rows.
func (r *ContactRepo) Update(c domain.Contact) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE contacts SET city=?, street=?, house=?, phone=?
		WHERE id=? AND user_id=?
	`, c.City, c.Street, c.House, c.Phone, c.ID, c.UserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ContactRepo) Delete(userID, id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM contacts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
