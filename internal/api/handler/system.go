package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/repository"
)

// Me returns the signed in user.
func (h *Handler) Me(c *gin.Context) {
	user := h.engine.Auth().GetCurrentUser(c.Request.Context())
	if user == nil {
		fail(c, repository.ErrNotLoggedIn)
		return
	}
	ok(c, user)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.engine.Refresh(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Catalog refreshed",
	})
}

func (h *Handler) Sync(c *gin.Context) {
	if err := h.engine.Sync(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User data synced",
	})
}

// DeliverDaily sends the quote of the day through the enabled channels.
func (h *Handler) DeliverDaily(c *gin.Context) {
	if err := h.engine.DeliverDailyQuote(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Daily quote delivered",
	})
}

// ResolveLink resolves a quotevault:// deep link.
func (h *Handler) ResolveLink(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		badRequest(c, "query parameter url is required")
		return
	}
	res, err := h.engine.ResolveLink(c.Request.Context(), raw)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, res)
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Status:  h.engine.Status(),
	})
}

// RunJob triggers a scheduled job outside of its schedule.
func (h *Handler) RunJob(c *gin.Context) {
	if err := h.engine.RunJob(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job triggered",
	})
}
