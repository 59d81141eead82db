package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"orderdesk/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(email, username, hash, role string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users(email, username, password_hash, role, is_active)
		VALUES(?,?,?,?,0)
	`, email, username, hash, role)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id, email, username, password_hash, role, is_active
		FROM users WHERE LOWER(email)=LOWER(?)
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id, email, username, password_hash, role, is_active
		FROM users WHERE id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateProfile(id int64, username string) error {
	_, err := r.DB.Exec(`UPDATE users SET username=? WHERE id=?`, username, id)
	return err
}

func (r *UserRepo) SetPassword(id int64, hash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	return err
}

// ---------- Confirmation tokens ----------

func (r *UserRepo) UpsertConfirmToken(userID int64, key string) error {
	_, err := r.DB.Exec(`
		INSERT INTO confirm_tokens(key, user_id) VALUES(?,?)
		ON CONFLICT(user_id) DO UPDATE SET key=excluded.key, created_at=CURRENT_TIMESTAMP
	`, key, userID)
	return err
}

// Confirm activates the user matching (email, token) and burns the
// token. A wrong pair changes nothing and reports false.
func (r *UserRepo) Confirm(email, key string) (bool, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var userID int64
	err = tx.Get(&userID, `
		SELECT t.user_id FROM confirm_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE LOWER(u.email)=LOWER(?) AND t.key=?
	`, email, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(`UPDATE users SET is_active=1 WHERE id=?`, userID); err != nil {
		return false, err
	}
	if _, err := tx.Exec(`DELETE FROM confirm_tokens WHERE user_id=?`, userID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// ---------- Auth tokens ----------

func (r *UserRepo) GetOrCreateAuthToken(userID int64, fresh string) (string, error) {
	var key string
	if err := r.DB.Get(&key, `SELECT key FROM auth_tokens WHERE user_id=?`, userID); err == nil {
		return key, nil
	}
	if _, err := r.DB.Exec(`INSERT INTO auth_tokens(key, user_id) VALUES(?,?)`, fresh, userID); err != nil {
		return "", err
	}
	return fresh, nil
}

func (r *UserRepo) ByToken(key string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT u.id, u.email, u.username, u.password_hash, u.role, u.is_active
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key=?
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAuth
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
