package gravatar

import (
	"testing"

	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b"

func TestResolverURL(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		config   *config.GravatarConfig
		expected string
	}{
		{
			name:     "disabled gravatar",
			email:    "test@example.com",
			config:   &config.GravatarConfig{Enabled: false},
			expected: "",
		},
		{
			name:     "nil config",
			email:    "test@example.com",
			config:   nil,
			expected: "",
		},
		{
			name:     "empty email",
			email:    "",
			config:   &config.GravatarConfig{Enabled: true},
			expected: "",
		},
		{
			name:     "basic enabled config",
			email:    "test@example.com",
			config:   &config.GravatarConfig{Enabled: true},
			expected: baseURL + testHash,
		},
		{
			name:  "config with all options",
			email: "  TEST@EXAMPLE.COM ",
			config: &config.GravatarConfig{
				Enabled:      true,
				DefaultImage: "identicon",
				Rating:       "pg",
				Size:         120,
			},
			expected: baseURL + testHash + "?d=identicon&r=pg&s=120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.URL(tt.email))
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *config.GravatarConfig
	}{
		{name: "default image", config: &config.GravatarConfig{Enabled: true, DefaultImage: "MP"}},
		{name: "rating", config: &config.GravatarConfig{Enabled: true, Rating: "nc17"}},
		{name: "size", config: &config.GravatarConfig{Enabled: true, Size: 4096}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestDecorate(t *testing.T) {
	r, err := New(&config.GravatarConfig{Enabled: true})
	require.NoError(t, err)

	user := domain.User{Email: "test@example.com"}
	r.Decorate(&user)
	assert.Equal(t, baseURL+testHash, user.FallbackAvatarURL)

	uploaded := domain.User{Email: "test@example.com", AvatarURL: lo.ToPtr("https://cdn/a.jpg")}
	r.Decorate(&uploaded)
	assert.Empty(t, uploaded.FallbackAvatarURL)

	var disabled *Resolver
	disabled.Decorate(&user)
}

func TestValidators(t *testing.T) {
	for _, img := range []string{"404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"} {
		assert.True(t, IsValidDefaultImage(img), "Expected %s to be valid", img)
	}
	for _, img := range []string{"invalid", "", "404x", "MP"} {
		assert.False(t, IsValidDefaultImage(img), "Expected %s to be invalid", img)
	}

	for _, rating := range []string{"g", "pg", "r", "x"} {
		assert.True(t, IsValidRating(rating), "Expected %s to be valid", rating)
	}
	for _, rating := range []string{"", "G", "nc17"} {
		assert.False(t, IsValidRating(rating), "Expected %s to be invalid", rating)
	}

	for _, size := range []int{1, 80, 2048} {
		assert.True(t, IsValidSize(size), "Expected %d to be valid", size)
	}
	for _, size := range []int{0, -1, 2049} {
		assert.False(t, IsValidSize(size), "Expected %d to be invalid", size)
	}
}
