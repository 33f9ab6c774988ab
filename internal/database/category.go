package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// UpsertCategories stores categories, replacing rows with the same id.
func (c *Client) UpsertCategories(ctx context.Context, categories []Category) error {
	if len(categories) == 0 {
		return nil
	}
	if err := replace(c.db.WithContext(ctx), &categories); err != nil {
		log.Error("failed to upsert categories", "error", err)
		return err
	}
	c.changes.Publish(TableCategories)
	return nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.db.WithContext(ctx).Order("sort_order ASC").Find(&categories).Error; err != nil {
		log.Error("failed to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.db.WithContext(ctx).Where("id = ?", id).Take(&category).Error; err != nil {
		if !notFound(err) {
			log.Error("failed to get category", "error", err)
		}
		return nil, err
	}
	return &category, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

// QuoteCountsByCategory counts cached quotes per category id.
func (c *Client) QuoteCountsByCategory(ctx context.Context) (map[string]int, error) {
	var rows []groupCount
	if err := c.db.WithContext(ctx).Model(&Quote{}).
		Select("category_id AS group_key, COUNT(*) AS total").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		log.Error("failed to count quotes by category", "error", err)
		return nil, err
	}
	return countsToMap(rows)
}

func (c *Client) CountQuotesByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Quote{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		log.Error("failed to count quotes in category", "error", err)
		return 0, err
	}
	return toInt(count)
}

func countsToMap(rows []groupCount) (map[string]int, error) {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		n, err := toInt(row.Total)
		if err != nil {
			return nil, err
		}
		counts[row.GroupKey] = n
	}
	return counts, nil
}
