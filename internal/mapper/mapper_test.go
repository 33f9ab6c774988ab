package mapper

import (
	"testing"
	"time"

	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestQuoteRowFromDTO(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	row := QuoteRowFromDTO(remote.QuoteDTO{
		ID:         "q1",
		Text:       "Be yourself",
		Author:     "Oscar Wilde",
		CategoryID: lo.ToPtr("c1"),
		CreatedAt:  &created,
		Category:   &remote.CategoryDTO{ID: "c1", DisplayName: "Wisdom"},
	})

	assert.Equal(t, "Wisdom", *row.CategoryName)
	assert.Equal(t, time.UTC, row.CreatedAt.Location())
	assert.True(t, created.Equal(*row.CreatedAt))

	row = QuoteRowFromDTO(remote.QuoteDTO{ID: "q2"})
	assert.Nil(t, row.CategoryName)
	assert.Nil(t, row.CreatedAt)
}

func TestQuotesFromRows_FlagsFavorites(t *testing.T) {
	quotes := QuotesFromRows(
		[]database.Quote{{ID: "a"}, {ID: "b"}},
		map[string]struct{}{"b": {}},
	)
	assert.False(t, quotes[0].IsFavorite)
	assert.True(t, quotes[1].IsFavorite)
}

func TestCollectionRowFromDTO_DefaultColor(t *testing.T) {
	row := CollectionRowFromDTO(remote.CollectionDTO{ID: "c"})
	assert.Equal(t, domain.DefaultCoverColor, row.CoverColor)
}

func TestUserFromAuth(t *testing.T) {
	auth := remote.AuthUser{ID: "u", Email: "jane@example.com"}

	user := UserFromAuth(auth, nil)
	assert.Equal(t, "u", user.ID)
	assert.Nil(t, user.DisplayName)

	user = UserFromAuth(auth, &remote.ProfileDTO{ID: "u", DisplayName: lo.ToPtr("Jane"), AvatarURL: lo.ToPtr("https://a")})
	assert.Equal(t, "Jane", *user.DisplayName)
	assert.Equal(t, "https://a", *user.AvatarURL)
}

func TestSettingsPreferencesRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.UserSettings
	}{
		{name: "defaults", settings: domain.DefaultSettings()},
		{
			name: "midnight",
			settings: domain.UserSettings{
				ThemeMode:        domain.ThemeDark,
				AccentColor:      domain.AccentPurple,
				FontSize:         domain.FontExtraLarge,
				NotificationTime: domain.TimeOfDay{Hour: 0, Minute: 0},
			},
		},
		{
			name: "last minute",
			settings: domain.UserSettings{
				ThemeMode:           domain.ThemeLight,
				AccentColor:         domain.AccentOrange,
				FontSize:            domain.FontSmall,
				NotificationEnabled: true,
				NotificationTime:    domain.TimeOfDay{Hour: 23, Minute: 59},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.settings, SettingsFromPreferences(SettingsToPreferences(tt.settings)))
		})
	}
}

func TestSettingsFromPreferences_Malformed(t *testing.T) {
	s := SettingsFromPreferences(map[string]string{
		KeyThemeMode:           "DARK",
		KeyNotificationEnabled: "maybe",
		KeyNotificationTime:    "25:00",
	})
	assert.Equal(t, domain.ThemeDark, s.ThemeMode)
	assert.True(t, s.NotificationEnabled)
	assert.Equal(t, domain.DefaultNotificationTime, s.NotificationTime)
}

func TestSettingsRemoteTime(t *testing.T) {
	s := domain.UserSettings{NotificationTime: domain.TimeOfDay{Hour: 7, Minute: 5}}
	assert.Equal(t, "07:05:00", SettingsToInsert("u", s).NotificationTime)
	assert.Equal(t, "07:05:00", SettingsToUpdate(s).NotificationTime)

	got := SettingsFromDTO(remote.SettingsDTO{NotificationTime: "07:05:00", ThemeMode: "light"})
	assert.Equal(t, domain.TimeOfDay{Hour: 7, Minute: 5}, got.NotificationTime)
	assert.Equal(t, domain.ThemeLight, got.ThemeMode)
}
