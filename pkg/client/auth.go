package client

import (
	"context"
	"fmt"

	"github.com/naveenspark/arena/pkg/domain"
)

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is a partial identity update; empty fields are left as is.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p == ProfileUpdate{}
}

// GetProfile returns the signed-in user's identity.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	u, err := getData[domain.User](ctx, c, "/auth/profile/")
	if err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &u, nil
}

// Login signs in. The server sets the session cookies on success.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	var resp struct {
		User     *domain.User `json:"user"`
		Email    string       `json:"email"`
		Username string       `json:"username"`
	}
	if err := c.post(ctx, "/auth/login/", req, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if resp.User != nil {
		return resp.User, nil
	}
	return &domain.User{Email: resp.Email, Username: resp.Username}, nil
}

// Register creates an account; the user must verify their email before
// signing in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.post(ctx, "/auth/register/", req, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Logout ends the session. The server clears the session cookies.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout/", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// Refresh renews the session cookies explicitly. Requests renew them on
// their own when they hit an expired session.
func (c *Client) Refresh(ctx context.Context) error {
	if err := c.post(ctx, refreshPath, nil, nil); err != nil {
		return fmt.Errorf("client.Refresh: %w", err)
	}
	return nil
}

// VerifyEmail confirms an email address with the token from the
// verification mail.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if err := c.post(ctx, "/auth/verify-email/", map[string]string{"token": token}, nil); err != nil {
		return fmt.Errorf("client.VerifyEmail: %w", err)
	}
	return nil
}

// ForgotPassword asks the server to mail a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := c.post(ctx, "/auth/forgot-password/", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("client.ForgotPassword: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	if err := c.post(ctx, "/auth/reset-password/", body, nil); err != nil {
		return fmt.Errorf("client.ResetPassword: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial update and returns the updated identity.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*domain.User, error) {
	var resp struct {
		Updated domain.User `json:"updated_data"`
	}
	if err := c.patch(ctx, "/auth/profile/", upd, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &resp.Updated, nil
}
