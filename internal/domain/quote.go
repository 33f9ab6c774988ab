package domain

import "time"

const (
	// DefaultPageSize is the page size used when a caller does not pick one.
	DefaultPageSize = 20
	// MaxPageSize is the largest page a paginated read returns.
	MaxPageSize = 100
)

// Quote is a quote as presented to consumers.
// IsFavorite is computed for the viewing user and is never stored with the quote.
type Quote struct {
	ID             string     `json:"id"`
	Text           string     `json:"text"`
	Author         string     `json:"author"`
	AuthorImageURL *string    `json:"authorImageUrl,omitempty"`
	CategoryID     *string    `json:"categoryId,omitempty"`
	CategoryName   *string    `json:"categoryName,omitempty"`
	Source         *string    `json:"source,omitempty"`
	IsFeatured     bool       `json:"isFeatured"`
	IsFavorite     bool       `json:"isFavorite"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// FormattedQuote returns the quote text wrapped in double quotes.
func (q Quote) FormattedQuote() string {
	return "\"" + q.Text + "\""
}

// ShareText returns the short attribution form used by the quote card.
func (q Quote) ShareText() string {
	return q.FormattedQuote() + "\n\n\u2014 " + q.Author
}
