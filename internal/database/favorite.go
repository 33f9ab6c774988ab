package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

const favoriteJoin = "JOIN favorites ON favorites.quote_id = quotes.id"

// InsertFavorite stores favorite. An existing favorite for the same user and quote is replaced.
func (c *Client) InsertFavorite(ctx context.Context, favorite Favorite) error {
	if err := replace(c.db.WithContext(ctx), &favorite); err != nil {
		log.Error("failed to insert favorite", "error", err)
		return err
	}
	c.changes.Publish(TableFavorites)
	return nil
}

func (c *Client) DeleteFavorite(ctx context.Context, userID, quoteID string) error {
	if err := c.db.WithContext(ctx).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Delete(&Favorite{}).Error; err != nil {
		log.Error("failed to delete favorite", "error", err)
		return err
	}
	c.changes.Publish(TableFavorites)
	return nil
}

// ToggleFavorite removes the favorite for the user and quote of favorite if it exists,
// otherwise it inserts favorite. It reports whether the quote is a favorite afterwards.
func (c *Client) ToggleFavorite(ctx context.Context, favorite Favorite) (bool, error) {
	var added bool
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND quote_id = ?", favorite.UserID, favorite.QuoteID).Delete(&Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			added = false
			return nil
		}
		added = true
		return tx.Create(&favorite).Error
	})
	if err != nil {
		log.Error("failed to toggle favorite", "error", err)
		return false, err
	}
	c.changes.Publish(TableFavorites)
	return added, nil
}

func (c *Client) IsFavorite(ctx context.Context, userID, quoteID string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Count(&count).Error; err != nil {
		log.Error("failed to check favorite", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (c *Client) FavoriteQuoteIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := c.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("quote_id", &ids).Error; err != nil {
		log.Error("failed to list favorite quote ids", "error", err)
		return nil, err
	}
	return ids, nil
}

func (c *Client) favoriteQuotes(ctx context.Context, userID string) *gorm.DB {
	return c.db.WithContext(ctx).Model(&Quote{}).
		Select("quotes.*").
		Joins(favoriteJoin).
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC, favorites.id DESC")
}

// ListFavoriteQuotes returns the user's favorite quotes, most recently favorited first.
// Favorites whose quote is not cached are skipped.
func (c *Client) ListFavoriteQuotes(ctx context.Context, userID string) ([]Quote, error) {
	var quotes []Quote
	if err := c.favoriteQuotes(ctx, userID).Find(&quotes).Error; err != nil {
		log.Error("failed to list favorite quotes", "error", err)
		return nil, err
	}
	return quotes, nil
}

func (c *Client) ListFavoriteQuotesPage(ctx context.Context, userID string, limit, offset int) ([]Quote, error) {
	var quotes []Quote
	if err := c.favoriteQuotes(ctx, userID).Limit(limit).Offset(offset).Find(&quotes).Error; err != nil {
		log.Error("failed to list favorite quotes", "error", err)
		return nil, err
	}
	return quotes, nil
}

// ReplaceFavorites swaps the user's favorites for favorites in a single transaction.
func (c *Client) ReplaceFavorites(ctx context.Context, userID string, favorites []Favorite) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&Favorite{}).Error; err != nil {
			return err
		}
		if len(favorites) == 0 {
			return nil
		}
		return replace(tx, &favorites)
	})
	if err != nil {
		log.Error("failed to replace favorites", "error", err)
		return err
	}
	c.changes.Publish(TableFavorites)
	return nil
}
