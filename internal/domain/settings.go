package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSettings is returned for settings holding a value outside their enum or a time outside the day.
var ErrInvalidSettings = errors.New("invalid settings")

// ThemeMode selects the light or dark appearance.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ParseThemeMode is case insensitive and falls back to ThemeSystem.
func ParseThemeMode(s string) ThemeMode {
	switch ThemeMode(strings.ToLower(s)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark || m == ThemeSystem
}

// AccentColor is one of the fixed palette choices.
type AccentColor string

const (
	AccentDefault AccentColor = "default"
	AccentBlue    AccentColor = "blue"
	AccentGreen   AccentColor = "green"
	AccentPurple  AccentColor = "purple"
	AccentOrange  AccentColor = "orange"
)

// ParseAccentColor is case insensitive and falls back to AccentDefault.
func ParseAccentColor(s string) AccentColor {
	switch c := AccentColor(strings.ToLower(s)); c {
	case AccentBlue, AccentGreen, AccentPurple, AccentOrange:
		return c
	default:
		return AccentDefault
	}
}

func (c AccentColor) Valid() bool {
	switch c {
	case AccentDefault, AccentBlue, AccentGreen, AccentPurple, AccentOrange:
		return true
	}
	return false
}

// FontSize is the text scale preference.
type FontSize string

const (
	FontSmall      FontSize = "small"
	FontMedium     FontSize = "medium"
	FontLarge      FontSize = "large"
	FontExtraLarge FontSize = "extra_large"
)

// ParseFontSize is case insensitive and falls back to FontMedium.
func ParseFontSize(s string) FontSize {
	switch f := FontSize(strings.ToLower(s)); f {
	case FontSmall, FontLarge, FontExtraLarge:
		return f
	default:
		return FontMedium
	}
}

func (f FontSize) Valid() bool {
	switch f {
	case FontSmall, FontMedium, FontLarge, FontExtraLarge:
		return true
	}
	return false
}

// TimeOfDay is a wall clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultNotificationTime is 09:00.
var DefaultNotificationTime = TimeOfDay{Hour: 9}

// ParseTimeOfDay parses "HH:MM" (the minute part is optional).
// Anything it cannot parse yields DefaultNotificationTime.
func ParseTimeOfDay(s string) TimeOfDay {
	parts := strings.Split(s, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return DefaultNotificationTime
	}
	minute := 0
	if len(parts) > 1 {
		if minute, err = strconv.Atoi(parts[1]); err != nil {
			return DefaultNotificationTime
		}
	}
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return DefaultNotificationTime
	}
	return t
}

// Valid reports whether the time lies within a day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// RemoteString formats the time as HH:MM:SS, the remote column format.
func (t TimeOfDay) RemoteString() string {
	return t.String() + ":00"
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	*t = ParseTimeOfDay(string(b))
	return nil
}

// UserSettings are the per device preferences.
type UserSettings struct {
	ThemeMode           ThemeMode   `json:"themeMode"`
	AccentColor         AccentColor `json:"accentColor"`
	FontSize            FontSize    `json:"fontSize"`
	NotificationEnabled bool        `json:"notificationEnabled"`
	NotificationTime    TimeOfDay   `json:"notificationTime"`
}

// DefaultSettings returns the settings used before anything was stored.
func DefaultSettings() UserSettings {
	return UserSettings{
		ThemeMode:           ThemeSystem,
		AccentColor:         AccentDefault,
		FontSize:            FontMedium,
		NotificationEnabled: true,
		NotificationTime:    DefaultNotificationTime,
	}
}

// Validate reports the first field of s that holds an invalid value.
func (s UserSettings) Validate() error {
	switch {
	case !s.ThemeMode.Valid():
		return fmt.Errorf("%w: theme mode %q", ErrInvalidSettings, s.ThemeMode)
	case !s.AccentColor.Valid():
		return fmt.Errorf("%w: accent color %q", ErrInvalidSettings, s.AccentColor)
	case !s.FontSize.Valid():
		return fmt.Errorf("%w: font size %q", ErrInvalidSettings, s.FontSize)
	case !s.NotificationTime.Valid():
		return fmt.Errorf("%w: notification time %02d:%02d", ErrInvalidSettings, s.NotificationTime.Hour, s.NotificationTime.Minute)
	}
	return nil
}
