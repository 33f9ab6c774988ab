package domain

import (
	"fmt"
	"strings"
)

// AppName is used in share messages and notification titles.
const AppName = "QuoteVault"

const shareTemplate = "\"%s\"\n\n- %s\n\nShared via " + AppName

// ShareMessage renders the text sent when a quote is shared.
func ShareMessage(q Quote) string {
	return fmt.Sprintf(shareTemplate, q.Text, q.Author)
}

const (
	quoteLinkPrefix      = "quotevault://quote/"
	collectionLinkPrefix = "quotevault://collection/"
)

// LinkKind identifies the target of a deep link.
type LinkKind string

const (
	LinkQuote      LinkKind = "quote"
	LinkCollection LinkKind = "collection"
)

// Link is a parsed deep link.
type Link struct {
	Kind LinkKind `json:"kind"`
	ID   string   `json:"id"`
}

// QuoteLink returns the deep link that opens a quote.
func QuoteLink(id string) string {
	return quoteLinkPrefix + id
}

// CollectionLink returns the deep link that opens a collection.
func CollectionLink(id string) string {
	return collectionLinkPrefix + id
}

// ParseLink parses a quote or collection deep link.
func ParseLink(raw string) (Link, error) {
	raw = strings.TrimSpace(raw)
	for prefix, kind := range map[string]LinkKind{
		quoteLinkPrefix:      LinkQuote,
		collectionLinkPrefix: LinkCollection,
	} {
		if id, ok := strings.CutPrefix(raw, prefix); ok {
			id = strings.Trim(id, "/")
			if id == "" {
				return Link{}, fmt.Errorf("deep link %q has no identifier", raw)
			}
			return Link{Kind: kind, ID: id}, nil
		}
	}
	return Link{}, fmt.Errorf("unsupported deep link %q", raw)
}
