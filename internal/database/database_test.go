package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "quotevault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func seedQuotes(t *testing.T, c *Client, n int) []Quote {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	quotes := make([]Quote, n)
	for i := range n {
		quotes[i] = Quote{
			ID:        fmt.Sprintf("q%02d", i),
			Text:      fmt.Sprintf("quote %d", i),
			Author:    "Author",
			CreatedAt: lo.ToPtr(base.Add(time.Duration(i) * time.Hour)),
		}
	}
	require.NoError(t, c.UpsertQuotes(context.Background(), quotes))
	return quotes
}

func TestQuotes_OrderAndPaging(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 45)

	all, err := c.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 45)
	assert.Equal(t, "q44", all[0].ID)
	assert.Equal(t, "q00", all[44].ID)

	var paged []Quote
	for offset := 0; offset < 60; offset += 20 {
		page, err := c.ListQuotesPage(ctx, 20, offset)
		require.NoError(t, err)
		paged = append(paged, page...)
	}
	assert.Equal(t, all, paged)
}

func TestUpsertQuotes_IsAdditive(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 2)

	require.NoError(t, c.UpsertQuotes(ctx, []Quote{{ID: "q01", Text: "changed", Author: "Other"}, {ID: "new", Text: "n", Author: "A"}}))

	all, err := c.ListQuotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	q, err := c.GetQuote(ctx, "q01")
	require.NoError(t, err)
	assert.Equal(t, "changed", q.Text)

	_, err = c.GetQuote(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchQuotes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.UpsertQuotes(ctx, []Quote{
		{ID: "1", Text: "Stay hungry", Author: "Steve Jobs"},
		{ID: "2", Text: "Be yourself", Author: "Oscar Wilde"},
	}))

	got, err := c.SearchQuotes(ctx, "hungry")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = c.SearchQuotes(ctx, "wilde")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = c.ListQuotesByAuthor(ctx, "Steve")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestRandomQuote_Empty(t *testing.T) {
	c := newTestClient(t)
	_, err := c.RandomQuote(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryCounts(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.UpsertCategories(ctx, []Category{
		{ID: "c2", Name: "love", DisplayName: "Love", SortOrder: 2},
		{ID: "c1", Name: "wisdom", DisplayName: "Wisdom", SortOrder: 1},
	}))
	require.NoError(t, c.UpsertQuotes(ctx, []Quote{
		{ID: "1", Text: "a", Author: "x", CategoryID: lo.ToPtr("c1")},
		{ID: "2", Text: "b", Author: "x", CategoryID: lo.ToPtr("c1")},
		{ID: "3", Text: "c", Author: "x"},
	}))

	cats, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, lo.Map(cats, func(c Category, _ int) string { return c.ID }))

	counts, err := c.QuoteCountsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 2}, counts)

	n, err := c.CountQuotesByCategory(ctx, "c2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFavorites_InsertTwiceKeepsOneRow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 1)

	require.NoError(t, c.InsertFavorite(ctx, Favorite{ID: "f1", UserID: "u", QuoteID: "q00"}))
	require.NoError(t, c.InsertFavorite(ctx, Favorite{ID: "f2", UserID: "u", QuoteID: "q00"}))

	ids, err := c.FavoriteQuoteIDs(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"q00"}, ids)
}

func TestToggleFavorite(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 1)

	added, err := c.ToggleFavorite(ctx, Favorite{ID: "f1", UserID: "u", QuoteID: "q00"})
	require.NoError(t, err)
	assert.True(t, added)

	fav, err := c.IsFavorite(ctx, "u", "q00")
	require.NoError(t, err)
	assert.True(t, fav)

	added, err = c.ToggleFavorite(ctx, Favorite{ID: "f2", UserID: "u", QuoteID: "q00"})
	require.NoError(t, err)
	assert.False(t, added)

	fav, err = c.IsFavorite(ctx, "u", "q00")
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestReplaceFavorites(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 3)
	require.NoError(t, c.InsertFavorite(ctx, Favorite{ID: "f1", UserID: "u", QuoteID: "q00"}))
	require.NoError(t, c.InsertFavorite(ctx, Favorite{ID: "other", UserID: "v", QuoteID: "q00"}))

	require.NoError(t, c.ReplaceFavorites(ctx, "u", []Favorite{{ID: "f2", UserID: "u", QuoteID: "q02"}}))

	quotes, err := c.ListFavoriteQuotes(ctx, "u")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "q02", quotes[0].ID)

	ids, err := c.FavoriteQuoteIDs(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, []string{"q00"}, ids)
}

func TestDeleteCollection_RemovesMemberships(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 2)
	require.NoError(t, c.InsertCollection(ctx, Collection{ID: "col", UserID: "u", Name: "Mine", CoverColor: "#6366F1"}))
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l1", CollectionID: "col", QuoteID: "q00"}))
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l2", CollectionID: "col", QuoteID: "q01"}))

	n, err := c.CountCollectionQuotes(ctx, "col")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, c.DeleteCollection(ctx, "col"))

	n, err = c.CountCollectionQuotes(ctx, "col")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = c.GetCollection(ctx, "col")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionQuotes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 3)
	require.NoError(t, c.InsertCollection(ctx, Collection{ID: "col", UserID: "u", Name: "Mine", CoverColor: "#6366F1"}))

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l1", CollectionID: "col", QuoteID: "q00", AddedAt: lo.ToPtr(base)}))
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l2", CollectionID: "col", QuoteID: "q02", AddedAt: lo.ToPtr(base.Add(time.Hour))}))
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l3", CollectionID: "col", QuoteID: "q02", AddedAt: lo.ToPtr(base.Add(2 * time.Hour))}))

	quotes, err := c.ListCollectionQuotes(ctx, "col")
	require.NoError(t, err)
	assert.Equal(t, []string{"q02", "q00"}, lo.Map(quotes, func(q Quote, _ int) string { return q.ID }))

	in, err := c.IsQuoteInCollection(ctx, "col", "q01")
	require.NoError(t, err)
	assert.False(t, in)

	ids, err := c.CollectionIDsForQuote(ctx, "q02")
	require.NoError(t, err)
	assert.Equal(t, []string{"col"}, ids)

	require.NoError(t, c.DeleteCollectionQuote(ctx, "col", "q02"))
	counts, err := c.CollectionQuoteCounts(ctx, []string{"col", "empty"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"col": 1}, counts)
}

func TestUpdateCollection(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.InsertCollection(ctx, Collection{ID: "col", UserID: "u", Name: "Old", CoverColor: "#6366F1"}))

	require.NoError(t, c.UpdateCollection(ctx, "col", "New", lo.ToPtr("desc"), "#000000"))
	col, err := c.GetCollection(ctx, "col")
	require.NoError(t, err)
	assert.Equal(t, "New", col.Name)
	assert.Equal(t, "desc", *col.Description)
	assert.Equal(t, "#000000", col.CoverColor)

	assert.ErrorIs(t, c.UpdateCollection(ctx, "missing", "x", nil, "#000000"), ErrNotFound)
}

func TestReplaceCollections(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	seedQuotes(t, c, 2)
	require.NoError(t, c.InsertCollection(ctx, Collection{ID: "gone", UserID: "u", Name: "Gone", CoverColor: "#6366F1"}))
	require.NoError(t, c.InsertCollectionQuote(ctx, CollectionQuote{ID: "l0", CollectionID: "gone", QuoteID: "q00"}))

	err := c.ReplaceCollections(ctx, "u",
		[]Collection{{ID: "kept", UserID: "u", Name: "Kept", CoverColor: "#6366F1"}},
		map[string][]CollectionQuote{"kept": {{ID: "l1", CollectionID: "kept", QuoteID: "q01"}}},
	)
	require.NoError(t, err)

	cols, err := c.ListCollections(ctx, "u")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "kept", cols[0].ID)

	n, err := c.CountCollectionQuotes(ctx, "gone")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.CountCollectionQuotes(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPreferences(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	prefs, err := c.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	require.NoError(t, c.SetPreferences(ctx, map[string]string{"theme_mode": "dark", "font_size": "large"}))
	require.NoError(t, c.SetPreferences(ctx, map[string]string{"theme_mode": "light"}))

	prefs, err = c.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"theme_mode": "light", "font_size": "large"}, prefs)
}

func TestSessions(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	s, err := c.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.SaveSession(ctx, &remote.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		ExpiresAt:    expires,
		User:         remote.AuthUser{ID: "u", Email: "u@example.com"},
	}))

	s, err = c.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "a", s.AccessToken)
	assert.Equal(t, "u", s.User.ID)
	assert.True(t, expires.Equal(s.ExpiresAt))

	require.NoError(t, c.ClearSession(ctx))
	s, err = c.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestPushSubscriptions(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SavePushSubscription(ctx, PushSubscription{Endpoint: "https://push/1", P256dh: "k", Auth: "a"}))
	require.NoError(t, c.SavePushSubscription(ctx, PushSubscription{Endpoint: "https://push/1", P256dh: "k2", Auth: "a2"}))

	subs, err := c.ListPushSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "k2", subs[0].P256dh)

	require.NoError(t, c.DeletePushSubscription(ctx, "https://push/1"))
	subs, err = c.ListPushSubscriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestWatch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	ch, cancel := c.Watch(TableFavorites)
	defer cancel()

	require.NoError(t, c.UpsertQuotes(ctx, []Quote{{ID: "1", Text: "a", Author: "b"}}))
	select {
	case <-ch:
		t.Fatal("unexpected signal for unrelated table")
	default:
	}

	require.NoError(t, c.InsertFavorite(ctx, Favorite{ID: "f", UserID: "u", QuoteID: "1"}))
	require.NoError(t, c.DeleteFavorite(ctx, "u", "1"))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce")
	default:
	}
}
