package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/remote"
)

const sessionRowID = 1

// LoadSession returns the persisted session, or nil if nobody is signed in.
func (c *Client) LoadSession(ctx context.Context) (*remote.Session, error) {
	var row Session
	if err := c.db.WithContext(ctx).Where("id = ?", sessionRowID).Take(&row).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		log.Error("failed to load session", "error", err)
		return nil, err
	}
	return &remote.Session{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		ExpiresAt:    row.ExpiresAt,
		User: remote.AuthUser{
			ID:    row.UserID,
			Email: row.Email,
		},
	}, nil
}

func (c *Client) SaveSession(ctx context.Context, session *remote.Session) error {
	row := Session{
		ID:           sessionRowID,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt.UTC(),
		UserID:       session.User.ID,
		Email:        session.User.Email,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := replace(c.db.WithContext(ctx), &row); err != nil {
		log.Error("failed to save session", "error", err)
		return err
	}
	c.changes.Publish(TableSessions)
	return nil
}

func (c *Client) ClearSession(ctx context.Context) error {
	if err := c.db.WithContext(ctx).Where("1 = 1").Delete(&Session{}).Error; err != nil {
		log.Error("failed to clear session", "error", err)
		return err
	}
	c.changes.Publish(TableSessions)
	return nil
}
