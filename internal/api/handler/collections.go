package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/repository"
)

func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.engine.Collections().CollectionsNow(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, collections)
}

func (h *Handler) CreateCollection(c *gin.Context) {
	var req models.CollectionRequest
	if !h.bind(c, &req, false) {
		return
	}
	collection, err := h.engine.Collections().CreateCollection(c.Request.Context(), req.Name, req.Description, req.CoverColor)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    collection,
	})
}

func (h *Handler) GetCollection(c *gin.Context) {
	collection, err := h.engine.Collections().GetCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if collection == nil {
		fail(c, repository.ErrCollectionNotFound)
		return
	}
	ok(c, collection)
}

func (h *Handler) UpdateCollection(c *gin.Context) {
	var req models.CollectionRequest
	if !h.bind(c, &req, false) {
		return
	}
	color := req.CoverColor
	if color == "" {
		color = domain.DefaultCoverColor
	}
	collection, err := h.engine.Collections().UpdateCollection(c.Request.Context(), c.Param("id"), req.Name, req.Description, color)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, collection)
}

func (h *Handler) DeleteCollection(c *gin.Context) {
	if err := h.engine.Collections().DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Collection deleted",
	})
}

func (h *Handler) CollectionQuotes(c *gin.Context) {
	page, pageSize, err := h.pagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.engine.Collections().QuotesInCollectionPaginated(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *Handler) AddQuoteToCollection(c *gin.Context) {
	h.membership(c, h.engine.Collections().AddQuoteToCollection, "Quote added to collection")
}

func (h *Handler) RemoveQuoteFromCollection(c *gin.Context) {
	h.membership(c, h.engine.Collections().RemoveQuoteFromCollection, "Quote removed from collection")
}

func (h *Handler) membership(c *gin.Context, op func(ctx context.Context, collectionID, quoteID string) error, message string) {
	if err := op(c.Request.Context(), c.Param("id"), c.Param("quoteId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}
