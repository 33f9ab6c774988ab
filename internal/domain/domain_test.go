package domain

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteText(t *testing.T) {
	q := Quote{Text: "Stay hungry", Author: "Steve Jobs"}

	assert.Equal(t, `"Stay hungry"`, q.FormattedQuote())
	assert.Equal(t, "\"Stay hungry\"\n\n\u2014 Steve Jobs", q.ShareText())
	assert.Equal(t, "\"Stay hungry\"\n\n- Steve Jobs\n\nShared via QuoteVault", ShareMessage(q))
}

func TestCategoryIconAndColor(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		icon     string
		color    string
	}{
		{name: "known name", category: Category{Name: "Love"}, icon: "❤️", color: "#EC4899"},
		{name: "explicit icon wins", category: Category{Name: "love", IconName: lo.ToPtr("heart")}, icon: "heart", color: "#EC4899"},
		{name: "unknown name", category: Category{Name: "stoicism"}, icon: "💡", color: "#8B5CF6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.icon, tt.category.Icon())
			assert.Equal(t, tt.color, tt.category.Color())
		})
	}
}

func TestCollectionColor(t *testing.T) {
	assert.Equal(t, "#22C55E", Collection{CoverColor: "#22C55E"}.Color())
	assert.Equal(t, DefaultCoverColor, Collection{CoverColor: "green"}.Color())
	assert.Equal(t, DefaultCoverColor, Collection{}.Color())
}

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{name: "two words", user: User{DisplayName: lo.ToPtr("ada lovelace")}, expected: "AL"},
		{name: "three words", user: User{DisplayName: lo.ToPtr("Grace Brewster Hopper")}, expected: "GB"},
		{name: "single word", user: User{DisplayName: lo.ToPtr("plato")}, expected: "P"},
		{name: "email fallback", user: User{Email: "seneca@example.com"}, expected: "S"},
		{name: "nothing", user: User{}, expected: "U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.Initials())
		})
	}
}

func TestUserDisplayNameOrEmail(t *testing.T) {
	assert.Equal(t, "Ada", User{DisplayName: lo.ToPtr("Ada"), Email: "ada@example.com"}.DisplayNameOrEmail())
	assert.Equal(t, "ada", User{Email: "ada@example.com"}.DisplayNameOrEmail())
}

func TestUserAvatar(t *testing.T) {
	assert.Equal(t, "https://cdn/a.jpg", User{AvatarURL: lo.ToPtr("https://cdn/a.jpg"), FallbackAvatarURL: "g"}.Avatar())
	assert.Equal(t, "g", User{FallbackAvatarURL: "g"}.Avatar())
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseThemeMode("DARK"))
	assert.Equal(t, ThemeSystem, ParseThemeMode("sepia"))
	assert.Equal(t, AccentPurple, ParseAccentColor("Purple"))
	assert.Equal(t, AccentDefault, ParseAccentColor(""))
	assert.Equal(t, FontExtraLarge, ParseFontSize("EXTRA_LARGE"))
	assert.Equal(t, FontMedium, ParseFontSize("huge"))
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in       string
		expected TimeOfDay
	}{
		{in: "00:00", expected: TimeOfDay{Hour: 0, Minute: 0}},
		{in: "23:59", expected: TimeOfDay{Hour: 23, Minute: 59}},
		{in: "07", expected: TimeOfDay{Hour: 7}},
		{in: "18:30:00", expected: TimeOfDay{Hour: 18, Minute: 30}},
		{in: "24:00", expected: DefaultNotificationTime},
		{in: "ab:cd", expected: DefaultNotificationTime},
		{in: "", expected: DefaultNotificationTime},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimeOfDay(tt.in))
		})
	}

	assert.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
	assert.Equal(t, "07:05:00", TimeOfDay{Hour: 7, Minute: 5}.RemoteString())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, ThemeSystem, s.ThemeMode)
	assert.Equal(t, AccentDefault, s.AccentColor)
	assert.Equal(t, FontMedium, s.FontSize)
	assert.True(t, s.NotificationEnabled)
	assert.Equal(t, "09:00", s.NotificationTime.String())
}

func TestUserSettingsValidate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name   string
		mutate func(*UserSettings)
	}{
		{name: "empty theme", mutate: func(s *UserSettings) { s.ThemeMode = "" }},
		{name: "unknown accent", mutate: func(s *UserSettings) { s.AccentColor = "red" }},
		{name: "unknown font size", mutate: func(s *UserSettings) { s.FontSize = "MEDIUM" }},
		{name: "negative minute", mutate: func(s *UserSettings) { s.NotificationTime = TimeOfDay{Hour: 1, Minute: -1} }},
		{name: "hour 24", mutate: func(s *UserSettings) { s.NotificationTime = TimeOfDay{Hour: 24} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}

func TestDeepLinks(t *testing.T) {
	link, err := ParseLink(QuoteLink("q-1"))
	require.NoError(t, err)
	assert.Equal(t, Link{Kind: LinkQuote, ID: "q-1"}, link)

	link, err = ParseLink(" quotevault://collection/c-9/ ")
	require.NoError(t, err)
	assert.Equal(t, Link{Kind: LinkCollection, ID: "c-9"}, link)

	_, err = ParseLink("quotevault://quote/")
	assert.Error(t, err)

	_, err = ParseLink("https://example.com/quote/1")
	assert.Error(t, err)
}
