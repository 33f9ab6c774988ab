package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	page, pageSize, err := h.pagination(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.engine.Favorites().FavoriteQuotesPaginated(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	isFavorite, err := h.engine.Favorites().ToggleFavorite(c.Request.Context(), c.Param("quoteId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ToggleResponse{
		Success:    true,
		IsFavorite: isFavorite,
	})
}
