package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

const collectionJoin = "JOIN collection_quotes ON collection_quotes.quote_id = quotes.id"

func (c *Client) InsertCollection(ctx context.Context, collection Collection) error {
	if err := replace(c.db.WithContext(ctx), &collection); err != nil {
		log.Error("failed to insert collection", "error", err)
		return err
	}
	c.changes.Publish(TableCollections)
	return nil
}

// UpdateCollection changes the editable fields of a collection. It returns ErrNotFound when no row matches id.
func (c *Client) UpdateCollection(ctx context.Context, id, name string, description *string, coverColor string) error {
	res := c.db.WithContext(ctx).Model(&Collection{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"cover_color": coverColor,
		})
	if res.Error != nil {
		log.Error("failed to update collection", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	c.changes.Publish(TableCollections)
	return nil
}

func (c *Client) GetCollection(ctx context.Context, id string) (*Collection, error) {
	var collection Collection
	if err := c.db.WithContext(ctx).Where("id = ?", id).Take(&collection).Error; err != nil {
		if !notFound(err) {
			log.Error("failed to get collection", "error", err)
		}
		return nil, err
	}
	return &collection, nil
}

func (c *Client) ListCollections(ctx context.Context, userID string) ([]Collection, error) {
	var collections []Collection
	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&collections).Error; err != nil {
		log.Error("failed to list collections", "error", err)
		return nil, err
	}
	return collections, nil
}

// DeleteCollection removes a collection together with its memberships.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&CollectionQuote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Collection{}).Error
	})
	if err != nil {
		log.Error("failed to delete collection", "error", err)
		return err
	}
	c.changes.Publish(TableCollections, TableCollectionQuotes)
	return nil
}

func (c *Client) CountCollectionQuotes(ctx context.Context, collectionID string) (int, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&CollectionQuote{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error; err != nil {
		log.Error("failed to count collection quotes", "error", err)
		return 0, err
	}
	return toInt(count)
}

// CollectionQuoteCounts counts memberships for each of collectionIDs. Empty collections are absent from the result.
func (c *Client) CollectionQuoteCounts(ctx context.Context, collectionIDs []string) (map[string]int, error) {
	if len(collectionIDs) == 0 {
		return map[string]int{}, nil
	}
	var rows []groupCount
	if err := c.db.WithContext(ctx).Model(&CollectionQuote{}).
		Select("collection_id AS group_key, COUNT(*) AS total").
		Where("collection_id IN ?", collectionIDs).
		Group("collection_id").
		Scan(&rows).Error; err != nil {
		log.Error("failed to count collection quotes", "error", err)
		return nil, err
	}
	return countsToMap(rows)
}

// InsertCollectionQuote links a quote to a collection. Adding a quote twice replaces the earlier link.
func (c *Client) InsertCollectionQuote(ctx context.Context, link CollectionQuote) error {
	if err := replace(c.db.WithContext(ctx), &link); err != nil {
		log.Error("failed to insert collection quote", "error", err)
		return err
	}
	c.changes.Publish(TableCollectionQuotes)
	return nil
}

func (c *Client) DeleteCollectionQuote(ctx context.Context, collectionID, quoteID string) error {
	if err := c.db.WithContext(ctx).
		Where("collection_id = ? AND quote_id = ?", collectionID, quoteID).
		Delete(&CollectionQuote{}).Error; err != nil {
		log.Error("failed to delete collection quote", "error", err)
		return err
	}
	c.changes.Publish(TableCollectionQuotes)
	return nil
}

func (c *Client) collectionQuotes(ctx context.Context, collectionID string) *gorm.DB {
	return c.db.WithContext(ctx).Model(&Quote{}).
		Select("quotes.*").
		Joins(collectionJoin).
		Where("collection_quotes.collection_id = ?", collectionID).
		Order("collection_quotes.added_at DESC, collection_quotes.id DESC")
}

// ListCollectionQuotes returns the quotes of a collection, most recently added first.
func (c *Client) ListCollectionQuotes(ctx context.Context, collectionID string) ([]Quote, error) {
	var quotes []Quote
	if err := c.collectionQuotes(ctx, collectionID).Find(&quotes).Error; err != nil {
		log.Error("failed to list collection quotes", "error", err)
		return nil, err
	}
	return quotes, nil
}

func (c *Client) ListCollectionQuotesPage(ctx context.Context, collectionID string, limit, offset int) ([]Quote, error) {
	var quotes []Quote
	if err := c.collectionQuotes(ctx, collectionID).Limit(limit).Offset(offset).Find(&quotes).Error; err != nil {
		log.Error("failed to list collection quotes", "error", err)
		return nil, err
	}
	return quotes, nil
}

func (c *Client) IsQuoteInCollection(ctx context.Context, collectionID, quoteID string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&CollectionQuote{}).
		Where("collection_id = ? AND quote_id = ?", collectionID, quoteID).
		Count(&count).Error; err != nil {
		log.Error("failed to check collection quote", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (c *Client) CollectionIDsForQuote(ctx context.Context, quoteID string) ([]string, error) {
	var ids []string
	if err := c.db.WithContext(ctx).Model(&CollectionQuote{}).
		Where("quote_id = ?", quoteID).
		Order("added_at DESC").
		Pluck("collection_id", &ids).Error; err != nil {
		log.Error("failed to list collections for quote", "error", err)
		return nil, err
	}
	return ids, nil
}

// ReplaceCollections swaps the user's collections for collections and rewrites the memberships
// of every collection in links. Memberships of collections that disappear are removed.
func (c *Client) ReplaceCollections(ctx context.Context, userID string, collections []Collection, links map[string][]CollectionQuote) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&Collection{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("collection_id IN (?)", stale).Delete(&CollectionQuote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&Collection{}).Error; err != nil {
			return err
		}
		if len(collections) > 0 {
			if err := replace(tx, &collections); err != nil {
				return err
			}
		}
		for collectionID, rows := range links {
			if err := tx.Where("collection_id = ?", collectionID).Delete(&CollectionQuote{}).Error; err != nil {
				return err
			}
			if len(rows) == 0 {
				continue
			}
			if err := replace(tx, &rows); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to replace collections", "error", err)
		return err
	}
	c.changes.Publish(TableCollections, TableCollectionQuotes)
	return nil
}
