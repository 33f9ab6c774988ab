package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func (c *Client) GetPreferences(ctx context.Context) (map[string]string, error) {
	var prefs []Preference
	if err := c.db.WithContext(ctx).Find(&prefs).Error; err != nil {
		log.Error("failed to get preferences", "error", err)
		return nil, err
	}
	return lo.SliceToMap(prefs, func(p Preference) (string, string) {
		return p.Key, p.Value
	}), nil
}

// SetPreferences writes all prefs in a single transaction.
func (c *Client) SetPreferences(ctx context.Context, prefs map[string]string) error {
	if len(prefs) == 0 {
		return nil
	}
	rows := lo.MapToSlice(prefs, func(k, v string) Preference {
		return Preference{Key: k, Value: v}
	})
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replace(tx, &rows)
	})
	if err != nil {
		log.Error("failed to set preferences", "error", err)
		return err
	}
	c.changes.Publish(TablePreferences)
	return nil
}
