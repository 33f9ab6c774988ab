package domain

import "strings"

// Well known category names. They drive the icon and color lookup.
const (
	CategoryMotivation = "motivation"
	CategoryLove       = "love"
	CategorySuccess    = "success"
	CategoryWisdom     = "wisdom"
	CategoryHumor      = "humor"
)

// Category groups quotes. QuoteCount is computed from the local cache.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	IconName    *string `json:"iconName,omitempty"`
	ColorHex    *string `json:"colorHex,omitempty"`
	SortOrder   int     `json:"sortOrder"`
	QuoteCount  int     `json:"quoteCount"`
}

var categoryIcons = map[string]string{
	CategoryMotivation: "🔥",
	CategoryLove:       "❤️",
	CategorySuccess:    "🏆",
	CategoryWisdom:     "🧠",
	CategoryHumor:      "😄",
}

var categoryColors = map[string]string{
	CategoryMotivation: "#F97316",
	CategoryLove:       "#EC4899",
	CategorySuccess:    "#22C55E",
	CategoryWisdom:     "#8B5CF6",
	CategoryHumor:      "#EAB308",
}

// Icon returns the configured icon, or a glyph picked by category name.
func (c Category) Icon() string {
	if c.IconName != nil && *c.IconName != "" {
		return *c.IconName
	}
	if icon, ok := categoryIcons[strings.ToLower(c.Name)]; ok {
		return icon
	}
	return "💡"
}

// Color returns the display color for the category name. Unknown names use the wisdom color.
func (c Category) Color() string {
	if color, ok := categoryColors[strings.ToLower(c.Name)]; ok {
		return color
	}
	return categoryColors[CategoryWisdom]
}
