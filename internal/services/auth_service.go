package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"decantly/internal/repos"
)

var ErrBadPassword = errors.New("invalid password")

// AuthService gates the app behind a single owner password. With no
// password configured the gate is off and every request passes.
type AuthService struct {
	Sessions *repos.SessionRepo
	hash     []byte
}

func NewAuthService(sessions *repos.SessionRepo, password string) (*AuthService, error) {
	s := &AuthService{Sessions: sessions}
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash app password: %w", err)
		}
		s.hash = h
	}
	return s, nil
}

func (s *AuthService) Enabled() bool { return s.hash != nil }

// Login checks the password and mints a new session id.
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", errors.New("login is disabled")
	}
	if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		return "", ErrBadPassword
	}
	sid := uuid.NewString()
	if err := s.Sessions.Create(sid); err != nil {
		return "", err
	}
	return sid, nil
}

// LoggedIn reports whether the request may pass the gate.
func (s *AuthService) LoggedIn(sid string) bool {
	if !s.Enabled() {
		return true
	}
	if sid == "" {
		return false
	}
	ok, err := s.Sessions.Exists(sid)
	return err == nil && ok
}

func (s *AuthService) Logout(sid string) error {
	if sid == "" {
		return nil
	}
	return s.Sessions.Delete(sid)
}
