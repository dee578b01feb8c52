// ABOUTME: Auth endpoint wrappers: login, registration, OAuth, profile
// ABOUTME: Persists token slots on successful credential exchange

package api

import (
	"context"
	"net/http"

	"github.com/produkportal/produk-cli/internal/session"
)

// Login exchanges email and password for a token pair and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (session.Auth, error) {
	var auth session.Auth
	_, err := c.do(ctx, http.MethodPost, routeLogin, nil, map[string]string{
		"email":    email,
		"password": password,
	}, &auth)
	if err != nil {
		return session.Auth{}, err
	}
	c.persistToken(auth.Token)
	return auth, nil
}

// Register creates an account and logs in, following the same persistence
// path as Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (session.Auth, error) {
	var auth session.Auth
	_, err := c.do(ctx, http.MethodPost, routeRegistration, nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &auth)
	if err != nil {
		return session.Auth{}, err
	}
	c.persistToken(auth.Token)
	return auth, nil
}

// OAuthGoogle exchanges a Google ID token for a portal session.
func (c *Client) OAuthGoogle(ctx context.Context, idToken string) (session.Auth, error) {
	var auth session.Auth
	_, err := c.do(ctx, http.MethodPost, routeOAuthGoogle, nil, map[string]string{
		"token": idToken,
	}, &auth)
	if err != nil {
		return session.Auth{}, err
	}
	c.persistToken(auth.Token)
	return auth, nil
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (session.User, error) {
	var user session.User
	_, err := c.do(ctx, http.MethodGet, routeMe, nil, nil, &user)
	if err != nil {
		return session.User{}, err
	}
	return user, nil
}

// UpdateAccount changes the profile's name and email.
func (c *Client) UpdateAccount(ctx context.Context, name, email string) (session.User, error) {
	var user session.User
	_, err := c.do(ctx, http.MethodPost, routeUpdateAccount, nil, map[string]string{
		"name":  name,
		"email": email,
	}, &user)
	if err != nil {
		return session.User{}, err
	}
	return user, nil
}

// UpdatePassword changes the account password.
func (c *Client) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, routeUpdatePassword, nil, map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}, nil)
	return err
}

// RequestPasswordReset asks the backend to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, routeResetRequest, nil, map[string]string{
		"email": email,
	}, nil)
	return err
}

// ResetPassword sets a new password using a mailed reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.do(ctx, http.MethodPost, routeResetUpdate, nil, map[string]string{
		"token":    token,
		"password": password,
	}, nil)
	return err
}

// RequestEmailValidation asks the backend to mail a confirmation token.
func (c *Client) RequestEmailValidation(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, routeEmailValidation, nil, map[string]string{
		"email": email,
	}, nil)
	return err
}

// ValidateEmail confirms an address using a mailed token.
func (c *Client) ValidateEmail(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, routeValidateEmail, nil, map[string]string{
		"token": token,
	}, nil)
	return err
}

// Logout clears all durable session slots. Purely client-side; the backend
// keeps no session to revoke.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// persistToken writes a freshly issued token pair into the durable slots.
func (c *Client) persistToken(t session.Token) {
	if t.Access == "" {
		return
	}
	c.tokens.Set(session.SlotAccess, t.Access)
	if t.Refresh != "" {
		c.tokens.Set(session.SlotRefresh, t.Refresh)
	}
	if t.Timeout != "" {
		c.tokens.Set(session.SlotTimeout, t.Timeout)
	}
}
