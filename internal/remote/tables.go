package remote

import (
	"context"
	"fmt"
)

// eq builds a PostgREST equality filter.
func eq(v string) string { return "eq." + v }

func (c *Client) selectRows(ctx context.Context, table string, params map[string]string, result any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetQueryParams(params).
		SetResult(result).
		Get(restPath + table)
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to select from %s: %w", table, err)
	}
	return nil
}

func (c *Client) insertRow(ctx context.Context, table string, row any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Post(restPath + table)
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (c *Client) updateRows(ctx context.Context, table string, filters map[string]string, patch any) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetQueryParams(filters).
		SetBody(patch).
		Patch(restPath + table)
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	return nil
}

func (c *Client) deleteRows(ctx context.Context, table string, filters map[string]string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetQueryParams(filters).
		Delete(restPath + table)
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// FetchQuotes returns every quote with its category, newest first.
func (c *Client) FetchQuotes(ctx context.Context) ([]QuoteDTO, error) {
	var quotes []QuoteDTO
	err := c.selectRows(ctx, TableQuotes, map[string]string{
		"select": "*,categories(*)",
		"order":  "created_at.desc",
	}, &quotes)
	return quotes, err
}

func (c *Client) FetchCategories(ctx context.Context) ([]CategoryDTO, error) {
	var categories []CategoryDTO
	err := c.selectRows(ctx, TableCategories, map[string]string{
		"select": "*",
		"order":  "sort_order.asc",
	}, &categories)
	return categories, err
}

// FetchQuoteOfDay returns the quote designated for date, or nil if there is none.
func (c *Client) FetchQuoteOfDay(ctx context.Context, date string) (*QuoteOfDayDTO, error) {
	var rows []QuoteOfDayDTO
	if err := c.selectRows(ctx, TableQuoteOfDay, map[string]string{
		"select":       "*,quotes(*,categories(*))",
		"display_date": eq(date),
		"limit":        "1",
	}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) FetchFavorites(ctx context.Context, userID string) ([]FavoriteDTO, error) {
	var favorites []FavoriteDTO
	err := c.selectRows(ctx, TableUserFavorites, map[string]string{
		"select":  "*",
		"user_id": eq(userID),
	}, &favorites)
	return favorites, err
}

func (c *Client) InsertFavorite(ctx context.Context, favorite FavoriteInsert) error {
	return c.insertRow(ctx, TableUserFavorites, favorite)
}

func (c *Client) DeleteFavorite(ctx context.Context, userID, quoteID string) error {
	return c.deleteRows(ctx, TableUserFavorites, map[string]string{
		"user_id":  eq(userID),
		"quote_id": eq(quoteID),
	})
}

func (c *Client) FetchCollections(ctx context.Context, userID string) ([]CollectionDTO, error) {
	var collections []CollectionDTO
	err := c.selectRows(ctx, TableCollections, map[string]string{
		"select":  "*",
		"user_id": eq(userID),
		"order":   "created_at.desc",
	}, &collections)
	return collections, err
}

func (c *Client) FetchCollectionQuotes(ctx context.Context, collectionID string) ([]CollectionQuoteDTO, error) {
	var links []CollectionQuoteDTO
	err := c.selectRows(ctx, TableCollectionQuotes, map[string]string{
		"select":        "*",
		"collection_id": eq(collectionID),
	}, &links)
	return links, err
}

func (c *Client) InsertCollection(ctx context.Context, collection CollectionInsert) error {
	return c.insertRow(ctx, TableCollections, collection)
}

func (c *Client) UpdateCollection(ctx context.Context, id string, update CollectionUpdate) error {
	return c.updateRows(ctx, TableCollections, map[string]string{"id": eq(id)}, update)
}

func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.deleteRows(ctx, TableCollections, map[string]string{"id": eq(id)})
}

func (c *Client) InsertCollectionQuote(ctx context.Context, link CollectionQuoteInsert) error {
	return c.insertRow(ctx, TableCollectionQuotes, link)
}

func (c *Client) DeleteCollectionQuote(ctx context.Context, collectionID, quoteID string) error {
	return c.deleteRows(ctx, TableCollectionQuotes, map[string]string{
		"collection_id": eq(collectionID),
		"quote_id":      eq(quoteID),
	})
}

// DeleteCollectionQuotes removes every membership of a collection.
func (c *Client) DeleteCollectionQuotes(ctx context.Context, collectionID string) error {
	return c.deleteRows(ctx, TableCollectionQuotes, map[string]string{"collection_id": eq(collectionID)})
}

// FetchSettings returns the user's settings row, or nil if the user has none.
func (c *Client) FetchSettings(ctx context.Context, userID string) (*SettingsDTO, error) {
	var rows []SettingsDTO
	if err := c.selectRows(ctx, TableUserSettings, map[string]string{
		"select":  "*",
		"user_id": eq(userID),
		"limit":   "1",
	}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) InsertSettings(ctx context.Context, settings SettingsInsert) error {
	return c.insertRow(ctx, TableUserSettings, settings)
}

func (c *Client) UpdateSettings(ctx context.Context, userID string, settings SettingsUpdate) error {
	return c.updateRows(ctx, TableUserSettings, map[string]string{"user_id": eq(userID)}, settings)
}

// FetchProfile returns the user's profile, or nil if it does not exist.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*ProfileDTO, error) {
	var rows []ProfileDTO
	if err := c.selectRows(ctx, TableUserProfiles, map[string]string{
		"select": "*",
		"id":     eq(userID),
		"limit":  "1",
	}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *Client) InsertProfile(ctx context.Context, profile ProfileInsert) error {
	return c.insertRow(ctx, TableUserProfiles, profile)
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, profile ProfileUpdate) error {
	return c.updateRows(ctx, TableUserProfiles, map[string]string{"id": eq(userID)}, profile)
}
