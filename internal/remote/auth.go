package remote

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthUser is the identity returned by the auth service.
type AuthUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Session is an authenticated session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         AuthUser
}

// Expired reports whether the access token is expired or about to be.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.Add(refreshLeeway).After(s.ExpiresAt)
}

// SessionStore persists the session between runs.
type SessionStore interface {
	// LoadSession returns the stored session, or nil when there is none.
	LoadSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, session *Session) error
	ClearSession(ctx context.Context) error
}

// SessionStatus is a snapshot of the authentication state.
type SessionStatus struct {
	Authenticated bool
	User          *AuthUser
}

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    int64     `json:"expires_at"`
	User         *AuthUser `json:"user"`
}

func (t *tokenResponse) session() *Session {
	if t.AccessToken == "" || t.User == nil {
		return nil
	}
	s := &Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		User:         *t.User,
	}
	switch {
	case t.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(t.ExpiresAt, 0).UTC()
	case t.ExpiresIn > 0:
		s.ExpiresAt = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second).UTC()
	}
	return s
}

// signUpResponse is either a session, or the bare user when email confirmation is required.
type signUpResponse struct {
	tokenResponse
	AuthUser
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account. It returns the created user, or nil when the backend
// did not return one. When the backend auto-confirms, the new session becomes current.
func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	var res signUpResponse
	resp, err := c.anonRequest(ctx).
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&res).
		Post(authPath + "/signup")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	if s := res.session(); s != nil {
		if err := c.setSession(ctx, s); err != nil {
			return nil, err
		}
		return &s.User, nil
	}
	if res.ID == "" {
		return nil, nil
	}
	user := res.AuthUser
	return &user, nil
}

// SignIn authenticates with email and password and makes the session current.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthUser, error) {
	s, err := c.token(ctx, "password", credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	if err := c.setSession(ctx, s); err != nil {
		return nil, err
	}
	return &s.User, nil
}

// SignOut revokes the session remotely and always forgets it locally.
func (c *Client) SignOut(ctx context.Context) error {
	var remoteErr error
	if c.CurrentUser() != nil {
		req, err := c.request(ctx)
		if err == nil {
			remoteErr = checkResponse(req.Post(authPath + "/logout"))
		} else {
			remoteErr = err
		}
	}
	if err := c.setSession(ctx, nil); err != nil {
		return err
	}
	if remoteErr != nil {
		return fmt.Errorf("failed to sign out: %w", remoteErr)
	}
	return nil
}

// ResetPasswordForEmail asks the backend to send a password recovery mail.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email string) error {
	resp, err := c.anonRequest(ctx).
		SetBody(map[string]string{"email": email}).
		Post(authPath + "/recover")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to request password reset: %w", err)
	}
	return nil
}

// CurrentUser returns the signed in user, or nil.
func (c *Client) CurrentUser() *AuthUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	u := c.session.User
	return &u
}

// Status returns the current authentication state.
func (c *Client) Status() SessionStatus {
	u := c.CurrentUser()
	return SessionStatus{Authenticated: u != nil, User: u}
}

// WatchSession emits the current status right away and again whenever it changes.
func (c *Client) WatchSession(ctx context.Context) <-chan SessionStatus {
	out := make(chan SessionStatus)
	signals, cancel := c.status.Watch()

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case out <- c.Status():
			case <-ctx.Done():
				return
			}
			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// RestoreSession loads the persisted session and refreshes it when it expired.
// A session that cannot be refreshed is discarded.
func (c *Client) RestoreSession(ctx context.Context) error {
	if c.sessions == nil {
		return nil
	}
	s, err := c.sessions.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if s == nil {
		return nil
	}
	if s.Expired(time.Now()) {
		refreshed, err := c.refresh(ctx, s.RefreshToken)
		if err != nil {
			c.logger().Warn("stored session could not be refreshed", "error", err)
			return c.setSession(ctx, nil)
		}
		return c.setSession(ctx, refreshed)
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	c.status.Publish()
	return nil
}

// accessToken returns a valid access token, refreshing the session if needed.
// Without a session the anon key is used.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s == nil {
		return c.cfg.AnonKey, nil
	}
	if !s.Expired(time.Now()) {
		return s.AccessToken, nil
	}

	refreshed, err := c.refresh(ctx, s.RefreshToken)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.logger().Warn("session expired", "error", err)
			_ = c.setSession(ctx, nil)
		}
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}
	if err := c.setSession(ctx, refreshed); err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	s, err := c.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("backend returned no session")
	}
	return s, nil
}

func (c *Client) token(ctx context.Context, grantType string, body any) (*Session, error) {
	var res tokenResponse
	resp, err := c.anonRequest(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&res).
		Post(authPath + "/token")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return res.session(), nil
}

// setSession replaces the current session, persists it and notifies watchers.
func (c *Client) setSession(ctx context.Context, s *Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	defer c.status.Publish()

	if c.sessions == nil {
		return nil
	}
	if s == nil {
		if err := c.sessions.ClearSession(ctx); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}
	if err := c.sessions.SaveSession(ctx, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
