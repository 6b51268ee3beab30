package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var (
	ErrBadCreds   = domain.ErrBadCredentials
	ErrEmailTaken = domain.ErrEmailTaken
)

// AuthService is the identity and session provider: it checks credentials,
// numbers sessions per customer and binds a browser session id to the actor.
type AuthService struct {
	Users *repos.UserRepo
	Now   func() time.Time
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users, Now: time.Now}
}

func HashPassword(raw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(h), err
}

// Login verifies the password, starts the next numbered session and binds sid to it.
func (s *AuthService) Login(ctx context.Context, sid, uid, password string) (*domain.Actor, error) {
	u, err := s.Users.ByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	no, err := s.Users.StartSession(ctx, u.ID, stamp(s.Now))
	if err != nil {
		return nil, err
	}
	a := domain.Actor{UserID: u.ID, CustomerID: u.ID, SessionNo: no, Role: u.Role}
	if err := s.Users.BindWeb(ctx, sid, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	taken, err := s.Users.EmailTaken(ctx, email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrEmailTaken
	}
	h, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.Users.Register(ctx, name, email, h)
}

// Logout closes the session the sid is bound to and forgets the binding.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	a, err := s.Users.WebActor(ctx, sid)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	if err := s.Users.EndSession(ctx, a.CustomerID, a.SessionNo, stamp(s.Now)); err != nil {
		return err
	}
	return s.Users.UnbindWeb(ctx, sid)
}

func (s *AuthService) CurrentActor(ctx context.Context, sid string) (*domain.Actor, error) {
	return s.Users.WebActor(ctx, sid)
}
