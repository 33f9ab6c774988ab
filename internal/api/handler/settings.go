package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/models"
)

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.engine.Settings().GetSettings(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req models.SettingsRequest
	if !h.bind(c, &req, false) {
		return
	}
	settings := req.ToSettings()
	if err := h.engine.Settings().UpdateSettings(c.Request.Context(), settings); err != nil {
		fail(c, err)
		return
	}
	ok(c, settings)
}
