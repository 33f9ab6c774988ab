package remote

import "time"

// Remote table names.
const (
	TableQuotes           = "quotes"
	TableCategories       = "categories"
	TableQuoteOfDay       = "quote_of_day"
	TableUserProfiles     = "user_profiles"
	TableUserFavorites    = "user_favorites"
	TableCollections      = "collections"
	TableCollectionQuotes = "collection_quotes"
	TableUserSettings     = "user_settings"
)

type CategoryDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	IconName    *string    `json:"icon_name,omitempty"`
	ColorHex    *string    `json:"color_hex,omitempty"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// QuoteDTO is a quote row. Category is set when the category was joined.
type QuoteDTO struct {
	ID             string       `json:"id"`
	Text           string       `json:"text"`
	Author         string       `json:"author"`
	AuthorImageURL *string      `json:"author_image_url,omitempty"`
	CategoryID     *string      `json:"category_id,omitempty"`
	Source         *string      `json:"source,omitempty"`
	IsFeatured     bool         `json:"is_featured"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
	UpdatedAt      *time.Time   `json:"updated_at,omitempty"`
	Category       *CategoryDTO `json:"categories,omitempty"`
}

// QuoteOfDayDTO designates the quote shown on DisplayDate (YYYY-MM-DD).
type QuoteOfDayDTO struct {
	ID          string     `json:"id"`
	QuoteID     string     `json:"quote_id"`
	DisplayDate string     `json:"display_date"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Quote       *QuoteDTO  `json:"quotes,omitempty"`
}

type FavoriteDTO struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	QuoteID   string     `json:"quote_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type FavoriteInsert struct {
	ID      string `json:"id,omitempty"`
	UserID  string `json:"user_id"`
	QuoteID string `json:"quote_id"`
}

type CollectionDTO struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CoverColor  string     `json:"cover_color"`
	IsPublic    bool       `json:"is_public"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CollectionInsert struct {
	ID          string  `json:"id,omitempty"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CoverColor  string  `json:"cover_color"`
}

// CollectionUpdate changes the editable fields of a collection. Description is always sent so it can be cleared.
type CollectionUpdate struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CoverColor  string  `json:"cover_color"`
}

type CollectionQuoteDTO struct {
	ID           string     `json:"id"`
	CollectionID string     `json:"collection_id"`
	QuoteID      string     `json:"quote_id"`
	AddedAt      *time.Time `json:"added_at,omitempty"`
}

type CollectionQuoteInsert struct {
	ID           string `json:"id,omitempty"`
	CollectionID string `json:"collection_id"`
	QuoteID      string `json:"quote_id"`
}

// SettingsDTO is a user_settings row. NotificationTime is HH:MM:SS.
type SettingsDTO struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	ThemeMode           string     `json:"theme_mode"`
	AccentColor         string     `json:"accent_color"`
	FontSize            string     `json:"font_size"`
	NotificationEnabled bool       `json:"notification_enabled"`
	NotificationTime    string     `json:"notification_time"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

type SettingsInsert struct {
	UserID              string `json:"user_id"`
	ThemeMode           string `json:"theme_mode"`
	AccentColor         string `json:"accent_color"`
	FontSize            string `json:"font_size"`
	NotificationEnabled bool   `json:"notification_enabled"`
	NotificationTime    string `json:"notification_time"`
}

type SettingsUpdate struct {
	ThemeMode           string `json:"theme_mode"`
	AccentColor         string `json:"accent_color"`
	FontSize            string `json:"font_size"`
	NotificationEnabled bool   `json:"notification_enabled"`
	NotificationTime    string `json:"notification_time"`
}

type ProfileDTO struct {
	ID          string     `json:"id"`
	DisplayName *string    `json:"display_name,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ProfileInsert struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
}

// ProfileUpdate only sends the fields that are set.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}
