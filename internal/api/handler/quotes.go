package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/engine"
)

// ListQuotes returns a page of quotes, optionally restricted to one category.
func (h *Handler) ListQuotes(c *gin.Context) {
	page, pageSize, err := h.pagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	quotes := h.engine.Quotes()
	var result any
	if category := c.Query("category"); category != "" {
		result, err = quotes.QuotesByCategoryPaginated(c.Request.Context(), category, page, pageSize)
	} else {
		result, err = quotes.QuotesPaginated(c.Request.Context(), page, pageSize)
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

// SearchQuotes matches the text and author of quotes.
func (h *Handler) SearchQuotes(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, "query parameter q is required")
		return
	}
	quotes, err := h.engine.Quotes().SearchQuotesNow(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, quotes)
}

// QuotesByAuthor lists the quotes of an author.
func (h *Handler) QuotesByAuthor(c *gin.Context) {
	quotes, err := h.engine.Quotes().QuotesByAuthorNow(c.Request.Context(), c.Param("author"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, quotes)
}

func (h *Handler) GetQuote(c *gin.Context) {
	q, err := h.engine.Quotes().GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if q == nil {
		fail(c, engine.ErrQuoteNotFound)
		return
	}
	ok(c, q)
}

// StreamQuotes pushes the quote list as server sent events whenever the local cache changes.
func (h *Handler) StreamQuotes(c *gin.Context) {
	ctx := c.Request.Context()

	var updates <-chan []domain.Quote
	switch {
	case c.Query("q") != "":
		updates = h.engine.Quotes().SearchQuotes(ctx, c.Query("q"))
	case c.Query("category") != "":
		updates = h.engine.Quotes().QuotesByCategory(ctx, c.Query("category"))
	default:
		updates = h.engine.Quotes().Quotes(ctx)
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(_ io.Writer) bool {
		select {
		case quotes, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("quotes", quotes)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *Handler) QuoteOfDay(c *gin.Context) {
	q, err := h.engine.Quotes().GetQuoteOfDay(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if q == nil {
		fail(c, engine.ErrNoQuoteOfDay)
		return
	}
	ok(c, q)
}

func (h *Handler) RandomQuote(c *gin.Context) {
	q, err := h.engine.Quotes().GetRandomQuote(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if q == nil {
		fail(c, engine.ErrQuoteNotFound)
		return
	}
	ok(c, q)
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.engine.Quotes().CategoriesNow(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, categories)
}

// ShareQuote renders the share message and optionally delivers it through notification channels.
func (h *Handler) ShareQuote(c *gin.Context) {
	var req models.ShareRequest
	if !h.bind(c, &req, true) {
		return
	}

	id := c.Param("id")
	msg, err := h.engine.Share(c.Request.Context(), id, req.Channels...)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ShareResponse{
		Success: true,
		Message: msg,
		Link:    domain.QuoteLink(id),
	})
}
