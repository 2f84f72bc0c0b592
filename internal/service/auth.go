package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
)

// SignUpParams carries the signup form fields.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// AuthService handles account creation and credential checks.
type AuthService struct {
	store  repository.Store
	logger *logrus.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, logger *logrus.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// SignUp creates an account with a bcrypt-hashed password. The role is
// fixed at signup and never changes afterwards.
func (s *AuthService) SignUp(p SignUpParams) (*models.User, error) {
	if p.Role != models.RolePatient && p.Role != models.RoleCaregiver {
		return nil, fmt.Errorf("%w: role must be patient or caregiver", ErrValidation)
	}

	var user *models.User
	err := s.store.Atomic(func(tx repository.Store) error {
		_, err := tx.UserByEmail(p.Email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		u := &models.User{
			Name:  p.Name,
			Email: p.Email,
			Role:  p.Role,
		}
		if err := u.SetPassword(p.Password); err != nil {
			return err
		}
		if err := tx.CreateUser(u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"userId": user.ID,
		"role":   user.Role,
	}).Info("user signed up")
	return user, nil
}

// Authenticate checks an email/password pair. Unknown email and wrong
// password both come back as ErrInvalidCredentials, so the response never
// reveals which one failed.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.UserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
