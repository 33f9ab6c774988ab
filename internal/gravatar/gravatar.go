// Package gravatar builds fallback avatar URLs for users without an uploaded avatar.
package gravatar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/domain"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Resolver decorates users with a Gravatar fallback avatar.
// A nil Resolver is valid and never sets a fallback.
type Resolver struct {
	params url.Values
}

// New validates cfg and returns a Resolver. It returns nil when Gravatar is disabled.
func New(cfg *config.GravatarConfig) (*Resolver, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	params := url.Values{}
	if cfg.DefaultImage != "" {
		if !IsValidDefaultImage(cfg.DefaultImage) {
			return nil, fmt.Errorf("invalid gravatar default image: %s", cfg.DefaultImage)
		}
		params.Set("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		if !IsValidRating(cfg.Rating) {
			return nil, fmt.Errorf("invalid gravatar rating: %s", cfg.Rating)
		}
		params.Set("r", cfg.Rating)
	}
	if cfg.Size != 0 {
		if !IsValidSize(cfg.Size) {
			return nil, fmt.Errorf("invalid gravatar size: %d", cfg.Size)
		}
		params.Set("s", strconv.Itoa(cfg.Size))
	}
	return &Resolver{params: params}, nil
}

// URL returns the Gravatar URL for email, or an empty string if email is empty.
func (r *Resolver) URL(email string) string {
	if r == nil {
		return ""
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}

	hash := sha256.Sum256([]byte(email))
	u := baseURL + hex.EncodeToString(hash[:])
	if len(r.params) > 0 {
		u += "?" + r.params.Encode()
	}
	return u
}

// Decorate sets the fallback avatar of user when no avatar was uploaded.
func (r *Resolver) Decorate(user *domain.User) {
	if r == nil || user == nil {
		return
	}
	if user.AvatarURL != nil && *user.AvatarURL != "" {
		return
	}
	user.FallbackAvatarURL = r.URL(user.Email)
}

var validDefaults = map[string]bool{
	"404":       true,
	"mp":        true,
	"identicon": true,
	"monsterid": true,
	"wavatar":   true,
	"retro":     true,
	"robohash":  true,
	"blank":     true,
}

// IsValidDefaultImage reports whether defaultImage is a Gravatar default image keyword.
func IsValidDefaultImage(defaultImage string) bool {
	return validDefaults[defaultImage]
}

var validRatings = map[string]bool{"g": true, "pg": true, "r": true, "x": true}

// IsValidRating reports whether rating is a Gravatar rating.
func IsValidRating(rating string) bool {
	return validRatings[rating]
}

// IsValidSize checks if the provided size value is valid for Gravatar (1-2048 pixels).
func IsValidSize(size int) bool {
	return size >= 1 && size <= 2048
}
