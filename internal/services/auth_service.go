package services

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/notify"
	"orderdesk/internal/repos"
	"orderdesk/internal/validate"
)

type AuthService struct {
	Users *repos.UserRepo
	Mail  notify.Notifier
}

func NewAuthService(users *repos.UserRepo, mail notify.Notifier) *AuthService {
	return &AuthService{Users: users, Mail: mail}
}

// Register creates an inactive account and mails a confirmation token.
// Only customer and shop roles are self-assignable.
func (s *AuthService) Register(email, username, password, role string) (*domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: missing username", domain.ErrValidation)
	}
	if !validate.Password(password) {
		return nil, fmt.Errorf("%w: password too weak", domain.ErrValidation)
	}
	switch role {
	case "":
		role = domain.RoleCustomer
	case domain.RoleCustomer, domain.RoleShop:
	default:
		return nil, fmt.Errorf("%w: invalid role", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(email, username, string(hash), role)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.Users.UpsertConfirmToken(id, token); err != nil {
		return nil, err
	}
	if err := s.Mail.Send(email, "Confirmation token for "+email, token); err != nil {
		applog.Error(nil, "notify.confirm_token", err, map[string]any{"email": email})
	}
	return s.Users.ByID(id)
}

// Confirm activates the account matching (email, token).
func (s *AuthService) Confirm(email, token string) error {
	if email == "" || token == "" {
		return fmt.Errorf("%w: email and token required", domain.ErrValidation)
	}
	ok, err := s.Users.Confirm(email, token)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: wrong email or token", domain.ErrValidation)
	}
	return nil
}

// Login checks credentials against an active account and hands out the
// account's API token.
func (s *AuthService) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password required", domain.ErrValidation)
	}
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", domain.ErrAuth
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", domain.ErrAuth
	}
	if !u.IsActive {
		return "", domain.ErrAuth
	}
	return s.Users.GetOrCreateAuthToken(u.ID, uuid.NewString())
}

// CurrentUser resolves an API token to its active account.
func (s *AuthService) CurrentUser(token string) (*domain.User, error) {
	u, err := s.Users.ByToken(token)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.ErrAuth
	}
	return u, nil
}
