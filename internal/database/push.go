package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// SavePushSubscription registers sub. Registering the same endpoint again replaces its keys.
func (c *Client) SavePushSubscription(ctx context.Context, sub PushSubscription) error {
	if err := replace(c.db.WithContext(ctx), &sub); err != nil {
		log.Error("failed to save push subscription", "error", err)
		return err
	}
	c.changes.Publish(TablePushSubscriptions)
	return nil
}

func (c *Client) DeletePushSubscription(ctx context.Context, endpoint string) error {
	if err := c.db.WithContext(ctx).Where("endpoint = ?", endpoint).Delete(&PushSubscription{}).Error; err != nil {
		log.Error("failed to delete push subscription", "error", err)
		return err
	}
	c.changes.Publish(TablePushSubscriptions)
	return nil
}

func (c *Client) ListPushSubscriptions(ctx context.Context) ([]PushSubscription, error) {
	var subs []PushSubscription
	if err := c.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error; err != nil {
		log.Error("failed to list push subscriptions", "error", err)
		return nil, err
	}
	return subs, nil
}
