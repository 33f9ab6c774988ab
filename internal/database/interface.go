package database

import (
	"context"

	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
)

// DB is the local cache used by the repositories.
type DB interface {
	stream.Watcher

	// Quotes
	UpsertQuotes(ctx context.Context, quotes []Quote) error
	ListQuotes(ctx context.Context) ([]Quote, error)
	ListQuotesPage(ctx context.Context, limit, offset int) ([]Quote, error)
	ListQuotesByCategory(ctx context.Context, categoryID string) ([]Quote, error)
	ListQuotesByCategoryPage(ctx context.Context, categoryID string, limit, offset int) ([]Quote, error)
	SearchQuotes(ctx context.Context, query string) ([]Quote, error)
	ListQuotesByAuthor(ctx context.Context, author string) ([]Quote, error)
	GetQuote(ctx context.Context, id string) (*Quote, error)
	RandomQuote(ctx context.Context) (*Quote, error)

	// Categories
	UpsertCategories(ctx context.Context, categories []Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	QuoteCountsByCategory(ctx context.Context) (map[string]int, error)
	CountQuotesByCategory(ctx context.Context, categoryID string) (int, error)

	// Favorites
	InsertFavorite(ctx context.Context, favorite Favorite) error
	DeleteFavorite(ctx context.Context, userID, quoteID string) error
	ToggleFavorite(ctx context.Context, favorite Favorite) (bool, error)
	IsFavorite(ctx context.Context, userID, quoteID string) (bool, error)
	FavoriteQuoteIDs(ctx context.Context, userID string) ([]string, error)
	ListFavoriteQuotes(ctx context.Context, userID string) ([]Quote, error)
	ListFavoriteQuotesPage(ctx context.Context, userID string, limit, offset int) ([]Quote, error)
	ReplaceFavorites(ctx context.Context, userID string, favorites []Favorite) error

	// Collections
	InsertCollection(ctx context.Context, collection Collection) error
	UpdateCollection(ctx context.Context, id, name string, description *string, coverColor string) error
	GetCollection(ctx context.Context, id string) (*Collection, error)
	ListCollections(ctx context.Context, userID string) ([]Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	CountCollectionQuotes(ctx context.Context, collectionID string) (int, error)
	CollectionQuoteCounts(ctx context.Context, collectionIDs []string) (map[string]int, error)
	InsertCollectionQuote(ctx context.Context, link CollectionQuote) error
	DeleteCollectionQuote(ctx context.Context, collectionID, quoteID string) error
	ListCollectionQuotes(ctx context.Context, collectionID string) ([]Quote, error)
	ListCollectionQuotesPage(ctx context.Context, collectionID string, limit, offset int) ([]Quote, error)
	IsQuoteInCollection(ctx context.Context, collectionID, quoteID string) (bool, error)
	CollectionIDsForQuote(ctx context.Context, quoteID string) ([]string, error)
	ReplaceCollections(ctx context.Context, userID string, collections []Collection, links map[string][]CollectionQuote) error

	// Preferences
	GetPreferences(ctx context.Context) (map[string]string, error)
	SetPreferences(ctx context.Context, prefs map[string]string) error

	// Sessions
	remote.SessionStore

	// Push subscriptions
	SavePushSubscription(ctx context.Context, sub PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptions(ctx context.Context) ([]PushSubscription, error)
}
