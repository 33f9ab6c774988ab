package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/notify/webpush"
)

// GetVAPIDKey returns the VAPID public key for client subscription.
func (h *Handler) GetVAPIDKey(c *gin.Context) {
	client := h.engine.WebPush()
	if client == nil {
		fail(c, webpush.ErrDisabled)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"publicKey": client.PublicKey(),
	})
}

// Subscribe stores a push subscription of a browser.
func (h *Handler) Subscribe(c *gin.Context) {
	client := h.engine.WebPush()
	if client == nil {
		fail(c, webpush.ErrDisabled)
		return
	}

	var req models.SubscribeRequest
	if !h.bind(c, &req, false) {
		return
	}
	if req.Subscription.UserAgent == "" {
		req.Subscription.UserAgent = c.GetHeader("User-Agent")
	}

	if err := client.Subscribe(c.Request.Context(), req.Subscription); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully subscribed to push notifications",
	})
}

// Unsubscribe removes a push subscription.
func (h *Handler) Unsubscribe(c *gin.Context) {
	client := h.engine.WebPush()
	if client == nil {
		fail(c, webpush.ErrDisabled)
		return
	}

	var req models.UnsubscribeRequest
	if !h.bind(c, &req, false) {
		return
	}
	if err := client.Unsubscribe(c.Request.Context(), req.Endpoint); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully unsubscribed from push notifications",
	})
}
