package database

import "time"

// Tables announced through Watch.
const (
	TableQuotes            = "quotes"
	TableCategories        = "categories"
	TableFavorites         = "favorites"
	TableCollections       = "collections"
	TableCollectionQuotes  = "collection_quotes"
	TablePreferences       = "preferences"
	TableSessions          = "sessions"
	TablePushSubscriptions = "push_subscriptions"
)

// Quote is a cached quote row. CategoryName is denormalized from the joined category.
type Quote struct {
	ID             string `gorm:"primaryKey"`
	Text           string `gorm:"not null"`
	Author         string `gorm:"not null;index"`
	AuthorImageURL *string
	CategoryID     *string `gorm:"index"`
	CategoryName   *string
	Source         *string
	IsFeatured     bool       `gorm:"not null"`
	CreatedAt      *time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime:false"`
}

func (Quote) TableName() string { return TableQuotes }

// Category is a cached category row.
type Category struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	DisplayName string `gorm:"not null"`
	IconName    *string
	ColorHex    *string
	SortOrder   int        `gorm:"not null"`
	CreatedAt   *time.Time `gorm:"autoCreateTime:false"`
}

func (Category) TableName() string { return TableCategories }

// Favorite marks a quote as favorite for a user. A user favorites a quote at most once.
type Favorite struct {
	ID        string     `gorm:"primaryKey"`
	UserID    string     `gorm:"not null;uniqueIndex:idx_favorites_user_quote"`
	QuoteID   string     `gorm:"not null;uniqueIndex:idx_favorites_user_quote"`
	CreatedAt *time.Time `gorm:"autoCreateTime:false"`
}

func (Favorite) TableName() string { return TableFavorites }

// Collection is a cached collection row.
type Collection struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description *string
	CoverColor  string     `gorm:"not null;default:'#6366F1'"`
	IsPublic    bool       `gorm:"not null"`
	CreatedAt   *time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (Collection) TableName() string { return TableCollections }

// CollectionQuote links a quote to a collection. A quote is in a collection at most once.
type CollectionQuote struct {
	ID           string     `gorm:"primaryKey"`
	CollectionID string     `gorm:"not null;uniqueIndex:idx_collection_quotes_pair"`
	QuoteID      string     `gorm:"not null;uniqueIndex:idx_collection_quotes_pair;index"`
	AddedAt      *time.Time `gorm:"index"`
}

func (CollectionQuote) TableName() string { return TableCollectionQuotes }

// Preference is a single scalar setting.
type Preference struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Preference) TableName() string { return TablePreferences }

// Session holds the persisted backend session. The table has at most one row.
type Session struct {
	ID           uint   `gorm:"primaryKey"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string `gorm:"not null"`
	ExpiresAt    time.Time
	UserID       string `gorm:"not null"`
	Email        string
	UpdatedAt    time.Time
}

func (Session) TableName() string { return TableSessions }

// PushSubscription is a registered web push endpoint.
type PushSubscription struct {
	Endpoint  string `gorm:"primaryKey"`
	P256dh    string `gorm:"not null"`
	Auth      string `gorm:"not null"`
	UserAgent string
	CreatedAt time.Time
}

func (PushSubscription) TableName() string { return TablePushSubscriptions }
