// Package mapper converts between the backend wire shapes, the cache rows and the domain types.
package mapper

import (
	"strconv"
	"time"

	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/samber/lo"
)

// Preference keys of the local settings.
const (
	KeyThemeMode           = "theme_mode"
	KeyAccentColor         = "accent_color"
	KeyFontSize            = "font_size"
	KeyNotificationEnabled = "notification_enabled"
	KeyNotificationTime    = "notification_time"
)

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// Quotes

func QuoteRowFromDTO(dto remote.QuoteDTO) database.Quote {
	row := database.Quote{
		ID:             dto.ID,
		Text:           dto.Text,
		Author:         dto.Author,
		AuthorImageURL: dto.AuthorImageURL,
		CategoryID:     dto.CategoryID,
		Source:         dto.Source,
		IsFeatured:     dto.IsFeatured,
		CreatedAt:      utc(dto.CreatedAt),
		UpdatedAt:      utc(dto.UpdatedAt),
	}
	if dto.Category != nil {
		row.CategoryName = lo.ToPtr(dto.Category.DisplayName)
	}
	return row
}

func QuoteRowsFromDTOs(dtos []remote.QuoteDTO) []database.Quote {
	return lo.Map(dtos, func(dto remote.QuoteDTO, _ int) database.Quote {
		return QuoteRowFromDTO(dto)
	})
}

func QuoteFromRow(row database.Quote, isFavorite bool) domain.Quote {
	return domain.Quote{
		ID:             row.ID,
		Text:           row.Text,
		Author:         row.Author,
		AuthorImageURL: row.AuthorImageURL,
		CategoryID:     row.CategoryID,
		CategoryName:   row.CategoryName,
		Source:         row.Source,
		IsFeatured:     row.IsFeatured,
		IsFavorite:     isFavorite,
		CreatedAt:      row.CreatedAt,
	}
}

// QuotesFromRows flags every quote whose id is in favorites.
func QuotesFromRows(rows []database.Quote, favorites map[string]struct{}) []domain.Quote {
	return lo.Map(rows, func(row database.Quote, _ int) domain.Quote {
		_, fav := favorites[row.ID]
		return QuoteFromRow(row, fav)
	})
}

// QuoteFromDTO maps a joined remote quote straight to the domain shape.
func QuoteFromDTO(dto remote.QuoteDTO, isFavorite bool) domain.Quote {
	return QuoteFromRow(QuoteRowFromDTO(dto), isFavorite)
}

// Categories

func CategoryRowFromDTO(dto remote.CategoryDTO) database.Category {
	return database.Category{
		ID:          dto.ID,
		Name:        dto.Name,
		DisplayName: dto.DisplayName,
		IconName:    dto.IconName,
		ColorHex:    dto.ColorHex,
		SortOrder:   dto.SortOrder,
		CreatedAt:   utc(dto.CreatedAt),
	}
}

func CategoryRowsFromDTOs(dtos []remote.CategoryDTO) []database.Category {
	return lo.Map(dtos, func(dto remote.CategoryDTO, _ int) database.Category {
		return CategoryRowFromDTO(dto)
	})
}

func CategoryFromRow(row database.Category, quoteCount int) domain.Category {
	return domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		DisplayName: row.DisplayName,
		IconName:    row.IconName,
		ColorHex:    row.ColorHex,
		SortOrder:   row.SortOrder,
		QuoteCount:  quoteCount,
	}
}

// Favorites

func FavoriteRowFromDTO(dto remote.FavoriteDTO) database.Favorite {
	return database.Favorite{
		ID:        dto.ID,
		UserID:    dto.UserID,
		QuoteID:   dto.QuoteID,
		CreatedAt: utc(dto.CreatedAt),
	}
}

func FavoriteRowsFromDTOs(dtos []remote.FavoriteDTO) []database.Favorite {
	return lo.Map(dtos, func(dto remote.FavoriteDTO, _ int) database.Favorite {
		return FavoriteRowFromDTO(dto)
	})
}

// Collections

func CollectionRowFromDTO(dto remote.CollectionDTO) database.Collection {
	return database.Collection{
		ID:          dto.ID,
		UserID:      dto.UserID,
		Name:        dto.Name,
		Description: dto.Description,
		CoverColor:  lo.Ternary(dto.CoverColor == "", domain.DefaultCoverColor, dto.CoverColor),
		IsPublic:    dto.IsPublic,
		CreatedAt:   utc(dto.CreatedAt),
		UpdatedAt:   utc(dto.UpdatedAt),
	}
}

func CollectionRowsFromDTOs(dtos []remote.CollectionDTO) []database.Collection {
	return lo.Map(dtos, func(dto remote.CollectionDTO, _ int) database.Collection {
		return CollectionRowFromDTO(dto)
	})
}

func CollectionFromRow(row database.Collection, quoteCount int) domain.Collection {
	return domain.Collection{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Description: row.Description,
		CoverColor:  row.CoverColor,
		IsPublic:    row.IsPublic,
		QuoteCount:  quoteCount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func CollectionQuoteRowFromDTO(dto remote.CollectionQuoteDTO) database.CollectionQuote {
	return database.CollectionQuote{
		ID:           dto.ID,
		CollectionID: dto.CollectionID,
		QuoteID:      dto.QuoteID,
		AddedAt:      utc(dto.AddedAt),
	}
}

func CollectionQuoteRowsFromDTOs(dtos []remote.CollectionQuoteDTO) []database.CollectionQuote {
	return lo.Map(dtos, func(dto remote.CollectionQuoteDTO, _ int) database.CollectionQuote {
		return CollectionQuoteRowFromDTO(dto)
	})
}

// Users

// UserFromAuth merges the auth identity with the optional profile row.
func UserFromAuth(auth remote.AuthUser, profile *remote.ProfileDTO) domain.User {
	user := domain.User{
		ID:        auth.ID,
		Email:     auth.Email,
		CreatedAt: auth.CreatedAt,
	}
	if profile != nil {
		user.DisplayName = profile.DisplayName
		user.AvatarURL = profile.AvatarURL
		if profile.CreatedAt != nil {
			user.CreatedAt = profile.CreatedAt
		}
	}
	return user
}

// Settings

// SettingsFromPreferences reads settings from the local key/value store.
// Missing or malformed values fall back to their defaults.
func SettingsFromPreferences(prefs map[string]string) domain.UserSettings {
	s := domain.DefaultSettings()
	if v, ok := prefs[KeyThemeMode]; ok {
		s.ThemeMode = domain.ParseThemeMode(v)
	}
	if v, ok := prefs[KeyAccentColor]; ok {
		s.AccentColor = domain.ParseAccentColor(v)
	}
	if v, ok := prefs[KeyFontSize]; ok {
		s.FontSize = domain.ParseFontSize(v)
	}
	if v, ok := prefs[KeyNotificationEnabled]; ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			s.NotificationEnabled = enabled
		}
	}
	if v, ok := prefs[KeyNotificationTime]; ok {
		s.NotificationTime = domain.ParseTimeOfDay(v)
	}
	return s
}

// SettingsToPreferences writes all five settings as key/value pairs.
func SettingsToPreferences(s domain.UserSettings) map[string]string {
	return map[string]string{
		KeyThemeMode:           string(s.ThemeMode),
		KeyAccentColor:         string(s.AccentColor),
		KeyFontSize:            string(s.FontSize),
		KeyNotificationEnabled: strconv.FormatBool(s.NotificationEnabled),
		KeyNotificationTime:    s.NotificationTime.String(),
	}
}

// SettingsFromDTO reads the remote row. Only the HH:MM prefix of the remote time is used.
func SettingsFromDTO(dto remote.SettingsDTO) domain.UserSettings {
	t := dto.NotificationTime
	if len(t) > 5 {
		t = t[:5]
	}
	return domain.UserSettings{
		ThemeMode:           domain.ParseThemeMode(dto.ThemeMode),
		AccentColor:         domain.ParseAccentColor(dto.AccentColor),
		FontSize:            domain.ParseFontSize(dto.FontSize),
		NotificationEnabled: dto.NotificationEnabled,
		NotificationTime:    domain.ParseTimeOfDay(t),
	}
}

func SettingsToInsert(userID string, s domain.UserSettings) remote.SettingsInsert {
	return remote.SettingsInsert{
		UserID:              userID,
		ThemeMode:           string(s.ThemeMode),
		AccentColor:         string(s.AccentColor),
		FontSize:            string(s.FontSize),
		NotificationEnabled: s.NotificationEnabled,
		NotificationTime:    s.NotificationTime.RemoteString(),
	}
}

func SettingsToUpdate(s domain.UserSettings) remote.SettingsUpdate {
	return remote.SettingsUpdate{
		ThemeMode:           string(s.ThemeMode),
		AccentColor:         string(s.AccentColor),
		FontSize:            string(s.FontSize),
		NotificationEnabled: s.NotificationEnabled,
		NotificationTime:    s.NotificationTime.RemoteString(),
	}
}
