package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/jon4hz/quotevault/internal/notify/webpush"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/jon4hz/quotevault/internal/validation"
)

type Handler struct {
	engine    *engine.Engine
	validator *validation.Validator
	pageSize  int
}

func New(eng *engine.Engine, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Handler{
		engine:    eng,
		validator: validation.New(),
		pageSize:  pageSize,
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		verr   *validation.Error
		apiErr *remote.APIError
	)
	switch {
	case errors.As(err, &verr),
		errors.Is(err, engine.ErrUnknownNotifier),
		errors.Is(err, engine.ErrInvalidLink),
		errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrCollectionNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, engine.ErrQuoteNotFound),
		errors.Is(err, engine.ErrNoQuoteOfDay):
		return http.StatusNotFound
	case errors.Is(err, webpush.ErrNoSubscriptions):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNoNotifiers),
		errors.Is(err, webpush.ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope. Validation errors carry their field messages.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "error", err)
	}

	body := gin.H{
		"success": false,
		"error":   err.Error(),
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

// bind decodes the JSON body into req and validates it. An empty body is accepted when optional is set.
func (h *Handler) bind(c *gin.Context, req any, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if !optional || !errors.Is(err, io.EOF) {
			badRequest(c, "invalid request body")
			return false
		}
	}
	if err := h.validator.Validate(req); err != nil {
		fail(c, err)
		return false
	}
	return true
}

// pagination reads the zero based page and the page size from the query.
func (h *Handler) pagination(c *gin.Context) (page, pageSize int, err error) {
	if page, err = queryInt(c, "page", 0); err != nil {
		return 0, 0, err
	}
	if pageSize, err = queryInt(c, "pageSize", h.pageSize); err != nil {
		return 0, 0, err
	}
	if pageSize == 0 || pageSize > domain.MaxPageSize {
		return 0, 0, fmt.Errorf("pageSize must be between 1 and %d", domain.MaxPageSize)
	}
	return page, pageSize, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", key)
	}
	return safecast.Convert[int](n)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
