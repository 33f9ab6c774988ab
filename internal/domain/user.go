package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User is the authenticated user merged with their profile row.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	// FallbackAvatarURL is a generated avatar used when AvatarURL is unset.
	FallbackAvatarURL string `json:"fallbackAvatarUrl,omitempty"`
}

// Initials returns up to two upper-cased initials of the display name,
// or the first letter of the email when there is no display name.
func (u User) Initials() string {
	if u.DisplayName != nil {
		var b strings.Builder
		for i, word := range strings.Split(*u.DisplayName, " ") {
			if i == 2 {
				break
			}
			if r, _ := utf8.DecodeRuneInString(word); r != utf8.RuneError {
				b.WriteRune(unicode.ToUpper(r))
			}
		}
		return b.String()
	}
	if r, _ := utf8.DecodeRuneInString(u.Email); r != utf8.RuneError {
		return string(unicode.ToUpper(r))
	}
	return "U"
}

// DisplayNameOrEmail returns the display name, or the local part of the email.
func (u User) DisplayNameOrEmail() string {
	if u.DisplayName != nil {
		return *u.DisplayName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// Avatar returns the avatar to show for the user.
func (u User) Avatar() string {
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		return *u.AvatarURL
	}
	return u.FallbackAvatarURL
}
