// Package models holds the request and response bodies of the HTTP API.
package models

import (
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/jon4hz/quotevault/internal/notify/webpush"
)

// CollectionRequest is the body of the create and update collection endpoints.
type CollectionRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	CoverColor  string  `json:"coverColor,omitempty" validate:"omitempty,hexcolor"`
}

// SettingsRequest is the body of the update settings endpoint.
type SettingsRequest struct {
	ThemeMode           string `json:"themeMode" validate:"required,oneof=light dark system"`
	AccentColor         string `json:"accentColor" validate:"required,oneof=default blue green purple orange"`
	FontSize            string `json:"fontSize" validate:"required,oneof=small medium large extra_large"`
	NotificationEnabled bool   `json:"notificationEnabled"`
	NotificationTime    string `json:"notificationTime" validate:"required,timeofday"`
}

// ToSettings converts a validated request to domain settings.
func (r SettingsRequest) ToSettings() domain.UserSettings {
	return domain.UserSettings{
		ThemeMode:           domain.ParseThemeMode(r.ThemeMode),
		AccentColor:         domain.ParseAccentColor(r.AccentColor),
		FontSize:            domain.ParseFontSize(r.FontSize),
		NotificationEnabled: r.NotificationEnabled,
		NotificationTime:    domain.ParseTimeOfDay(r.NotificationTime),
	}
}

// ShareRequest is the body of the share endpoint. Without channels only the message is returned.
type ShareRequest struct {
	Channels []string `json:"channels,omitempty" validate:"omitempty,dive,oneof=ntfy email webpush"`
}

// ShareResponse carries the rendered share message.
type ShareResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// SubscribeRequest is the body of the push subscription endpoint.
type SubscribeRequest struct {
	Subscription webpush.Subscription `json:"subscription"`
}

// UnsubscribeRequest is the body of the push unsubscribe endpoint.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
}

// ToggleResponse reports the favorite state after a toggle.
type ToggleResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

// StatusResponse wraps the engine status.
type StatusResponse struct {
	Success bool `json:"success"`
	engine.Status
}
