package domain

import (
	"regexp"
	"time"
)

// DefaultCoverColor is the cover color of a collection created without one.
const DefaultCoverColor = "#6366F1"

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Collection is a user curated, named set of quotes.
type Collection struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CoverColor  string     `json:"coverColor"`
	IsPublic    bool       `json:"isPublic"`
	QuoteCount  int        `json:"quoteCount"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Color returns the cover color if it is a valid hex color, otherwise the default.
func (c Collection) Color() string {
	if hexColorPattern.MatchString(c.CoverColor) {
		return c.CoverColor
	}
	return DefaultCoverColor
}
