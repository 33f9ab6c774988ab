package database

import (
	"context"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

const quoteOrder = "created_at DESC, id DESC"

// UpsertQuotes stores quotes, replacing rows with the same id. Rows missing from quotes are kept.
func (c *Client) UpsertQuotes(ctx context.Context, quotes []Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	if err := replace(c.db.WithContext(ctx), &quotes); err != nil {
		log.Error("failed to upsert quotes", "error", err)
		return err
	}
	c.changes.Publish(TableQuotes)
	return nil
}

func (c *Client) findQuotes(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Quote, error) {
	var quotes []Quote
	if err := scope(c.db.WithContext(ctx).Model(&Quote{})).Order(quoteOrder).Find(&quotes).Error; err != nil {
		log.Error("failed to list quotes", "error", err)
		return nil, err
	}
	return quotes, nil
}

func all(db *gorm.DB) *gorm.DB { return db }

func page(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset(offset)
	}
}

func (c *Client) ListQuotes(ctx context.Context) ([]Quote, error) {
	return c.findQuotes(ctx, all)
}

func (c *Client) ListQuotesPage(ctx context.Context, limit, offset int) ([]Quote, error) {
	return c.findQuotes(ctx, page(limit, offset))
}

func (c *Client) ListQuotesByCategory(ctx context.Context, categoryID string) ([]Quote, error) {
	return c.findQuotes(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	})
}

func (c *Client) ListQuotesByCategoryPage(ctx context.Context, categoryID string, limit, offset int) ([]Quote, error) {
	return c.findQuotes(ctx, func(db *gorm.DB) *gorm.DB {
		return page(limit, offset)(db.Where("category_id = ?", categoryID))
	})
}

// SearchQuotes matches query as a substring of the text or the author.
func (c *Client) SearchQuotes(ctx context.Context, query string) ([]Quote, error) {
	return c.findQuotes(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("text LIKE '%' || ? || '%' OR author LIKE '%' || ? || '%'", query, query)
	})
}

// ListQuotesByAuthor matches author as a substring of the quote author.
func (c *Client) ListQuotesByAuthor(ctx context.Context, author string) ([]Quote, error) {
	return c.findQuotes(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("author LIKE '%' || ? || '%'", author)
	})
}

func (c *Client) GetQuote(ctx context.Context, id string) (*Quote, error) {
	var quote Quote
	if err := c.db.WithContext(ctx).Where("id = ?", id).Take(&quote).Error; err != nil {
		if !notFound(err) {
			log.Error("failed to get quote", "error", err)
		}
		return nil, err
	}
	return &quote, nil
}

// RandomQuote returns any cached quote, or ErrNotFound when the cache is empty.
func (c *Client) RandomQuote(ctx context.Context) (*Quote, error) {
	var quote Quote
	if err := c.db.WithContext(ctx).Order("RANDOM()").Take(&quote).Error; err != nil {
		if !notFound(err) {
			log.Error("failed to get random quote", "error", err)
		}
		return nil, err
	}
	return &quote, nil
}

func toInt(n int64) (int, error) {
	return safecast.Convert[int](n)
}
