package remote

import "context"

// Store is the backend as seen by the repositories.
type Store interface {
	// Auth
	SignUp(ctx context.Context, email, password string) (*AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*AuthUser, error)
	SignOut(ctx context.Context) error
	ResetPasswordForEmail(ctx context.Context, email string) error
	CurrentUser() *AuthUser
	WatchSession(ctx context.Context) <-chan SessionStatus

	// Catalog
	FetchQuotes(ctx context.Context) ([]QuoteDTO, error)
	FetchCategories(ctx context.Context) ([]CategoryDTO, error)
	FetchQuoteOfDay(ctx context.Context, date string) (*QuoteOfDayDTO, error)

	// Favorites
	FetchFavorites(ctx context.Context, userID string) ([]FavoriteDTO, error)
	InsertFavorite(ctx context.Context, favorite FavoriteInsert) error
	DeleteFavorite(ctx context.Context, userID, quoteID string) error

	// Collections
	FetchCollections(ctx context.Context, userID string) ([]CollectionDTO, error)
	FetchCollectionQuotes(ctx context.Context, collectionID string) ([]CollectionQuoteDTO, error)
	InsertCollection(ctx context.Context, collection CollectionInsert) error
	UpdateCollection(ctx context.Context, id string, update CollectionUpdate) error
	DeleteCollection(ctx context.Context, id string) error
	InsertCollectionQuote(ctx context.Context, link CollectionQuoteInsert) error
	DeleteCollectionQuote(ctx context.Context, collectionID, quoteID string) error
	DeleteCollectionQuotes(ctx context.Context, collectionID string) error

	// Settings
	FetchSettings(ctx context.Context, userID string) (*SettingsDTO, error)
	InsertSettings(ctx context.Context, settings SettingsInsert) error
	UpdateSettings(ctx context.Context, userID string, settings SettingsUpdate) error

	// Profiles
	FetchProfile(ctx context.Context, userID string) (*ProfileDTO, error)
	InsertProfile(ctx context.Context, profile ProfileInsert) error
	UpdateProfile(ctx context.Context, userID string, profile ProfileUpdate) error

	// Storage
	UploadAvatar(ctx context.Context, path string, data []byte, contentType string) error
	AvatarURL(path string) string
}
