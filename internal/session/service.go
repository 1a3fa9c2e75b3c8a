package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/naveenspark/arena/pkg/client"
	"github.com/naveenspark/arena/pkg/domain"
)

// AuthAPI is the subset of the API client the auth flows need.
type AuthAPI interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, req client.LoginRequest) (*domain.User, error)
	Register(ctx context.Context, req client.RegisterRequest) error
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*domain.User, error)
}

// Service runs the auth flows against the API and records their outcome in
// a Store. Every flow that raises Loading resolves it before returning,
// whatever the outcome.
type Service struct {
	api   AuthAPI
	store *Store
	log   zerolog.Logger
}

// NewService binds the auth flows to an API and a store.
func NewService(api AuthAPI, store *Store, log zerolog.Logger) *Service {
	return &Service{api: api, store: store, log: log}
}

// Store returns the store the service writes to.
func (s *Service) Store() *Store { return s.store }

// Check resolves the startup state: the profile is fetched with whatever
// credentials are present, and any failure signs the user out.
func (s *Service) Check(ctx context.Context) (*domain.User, error) {
	s.store.SetLoading(true)
	u, err := s.api.GetProfile(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("no active session")
		s.store.Logout()
		return nil, fmt.Errorf("session.Check: %w", err)
	}
	s.store.SetUser(u)
	return u, nil
}

// Login signs in and stores the returned identity.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	u, err := s.api.Login(ctx, client.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	s.store.SetUser(u)
	s.log.Info().Str("email", u.Email).Msg("signed in")
	return u, nil
}

// Signup creates an account and moves the store into the awaiting
// verification state. It does not sign the user in.
func (s *Service) Signup(ctx context.Context, email, password string) error {
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	if err := s.api.Register(ctx, client.RegisterRequest{Email: email, Password: password}); err != nil {
		return fmt.Errorf("session.Signup: %w", err)
	}
	s.store.SetAwaitingVerification(true)
	return nil
}

// Logout ends the session on the server. The local identity is cleared only
// when the server call succeeds; otherwise the user stays signed in.
func (s *Service) Logout(ctx context.Context) error {
	s.store.SetLoading(true)
	if err := s.api.Logout(ctx); err != nil {
		s.store.SetLoading(false)
		return fmt.Errorf("session.Logout: %w", err)
	}
	s.store.Logout()
	s.log.Info().Msg("signed out")
	return nil
}

// Expire clears the identity after a terminal auth failure reported by any
// other call, such as a failed silent refresh.
func (s *Service) Expire(err error) bool {
	if !client.IsSessionExpired(err) {
		return false
	}
	s.log.Warn().Err(err).Msg("session expired")
	s.store.Logout()
	return true
}

// VerifyEmail confirms an address and clears the awaiting verification state.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	s.store.SetEmailVerifyingLoader(true)
	defer s.store.SetEmailVerifyingLoader(false)

	if err := s.api.VerifyEmail(ctx, token); err != nil {
		return fmt.Errorf("session.VerifyEmail: %w", err)
	}
	s.store.SetAwaitingVerification(false)
	return nil
}

// ForgotPassword requests a reset mail.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := s.api.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("session.ForgotPassword: %w", err)
	}
	return nil
}

// ResetPassword sets a new password from a reset token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := s.api.ResetPassword(ctx, token, password); err != nil {
		return fmt.Errorf("session.ResetPassword: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial update and stores the updated identity.
func (s *Service) UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*domain.User, error) {
	if _, err := s.store.RequireAuthenticated(); err != nil {
		return nil, fmt.Errorf("session.UpdateProfile: %w", err)
	}
	u, err := s.api.UpdateProfile(ctx, upd)
	if err != nil {
		s.Expire(err)
		return nil, fmt.Errorf("session.UpdateProfile: %w", err)
	}
	s.store.SetUser(u)
	return u, nil
}
