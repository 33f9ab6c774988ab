package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/mergestat/timediff"
)

func since(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "unknown"
	}
	return timediff.TimeDiff(*t)
}

func count(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + singular + "s"
}

func printQuote(w io.Writer, q domain.Quote) {
	star := " "
	if q.IsFavorite {
		star = "*"
	}
	fmt.Fprintf(w, "%s [%s] %s\n", star, q.ID, q.FormattedQuote())
	fmt.Fprintf(w, "    - %s", q.Author)
	if q.CategoryName != nil {
		fmt.Fprintf(w, " (%s)", *q.CategoryName)
	}
	fmt.Fprintln(w)
}

func printQuoteDetail(w io.Writer, q domain.Quote) {
	fmt.Fprintln(w, q.ShareText())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ID:       %s\n", q.ID)
	if q.CategoryName != nil {
		fmt.Fprintf(w, "Category: %s\n", *q.CategoryName)
	}
	if q.Source != nil {
		fmt.Fprintf(w, "Source:   %s\n", *q.Source)
	}
	fmt.Fprintf(w, "Favorite: %t\n", q.IsFavorite)
	fmt.Fprintf(w, "Added:    %s\n", since(q.CreatedAt))
	fmt.Fprintf(w, "Link:     %s\n", domain.QuoteLink(q.ID))
}

func printQuotes(w io.Writer, quotes []domain.Quote) {
	if len(quotes) == 0 {
		fmt.Fprintln(w, "No quotes found.")
		return
	}
	for _, q := range quotes {
		printQuote(w, q)
	}
	fmt.Fprintf(w, "\n%s\n", count(len(quotes), "quote"))
}

func printPage(w io.Writer, p repository.Page[domain.Quote]) {
	if len(p.Items) == 0 {
		fmt.Fprintln(w, "No quotes found.")
		return
	}
	for _, q := range p.Items {
		printQuote(w, q)
	}
	more := ""
	if p.HasMore {
		more = fmt.Sprintf(", next page: --page %d", p.Page+1)
	}
	fmt.Fprintf(w, "\npage %d, %s%s\n", p.Page, count(len(p.Items), "quote"), more)
}

func printCollection(w io.Writer, c domain.Collection) {
	fmt.Fprintf(w, "[%s] %s (%s, %s) updated %s\n", c.ID, c.Name, count(c.QuoteCount, "quote"), c.Color(), since(c.UpdatedAt))
	if c.Description != nil && strings.TrimSpace(*c.Description) != "" {
		fmt.Fprintf(w, "    %s\n", *c.Description)
	}
}

func printUser(w io.Writer, u domain.User) {
	fmt.Fprintf(w, "%s (%s)\n", u.DisplayNameOrEmail(), u.Initials())
	fmt.Fprintf(w, "ID:     %s\n", u.ID)
	fmt.Fprintf(w, "Email:  %s\n", u.Email)
	if avatar := u.Avatar(); avatar != "" {
		fmt.Fprintf(w, "Avatar: %s\n", avatar)
	}
	fmt.Fprintf(w, "Joined: %s\n", since(u.CreatedAt))
}

func printSettings(w io.Writer, s domain.UserSettings) {
	fmt.Fprintf(w, "Theme:         %s\n", s.ThemeMode)
	fmt.Fprintf(w, "Accent color:  %s\n", s.AccentColor)
	fmt.Fprintf(w, "Font size:     %s\n", s.FontSize)
	fmt.Fprintf(w, "Notifications: %t\n", s.NotificationEnabled)
	fmt.Fprintf(w, "Delivery time: %s\n", s.NotificationTime)
}
