package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/webring/internal/app"
	"github.com/dkeye/webring/internal/domain"
)

type handlers struct {
	ring   *app.Webring
	cookie preferenceCookie
}

// StatusRequest is the body of POST /embed/status. Enabled is a pointer so
// that a missing field fails validation instead of reading as false.
type StatusRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}

// GET /members
func (h *handlers) listMembers(c *gin.Context) {
	members, err := h.ring.Members(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /members/:id
func (h *handlers) getMember(c *gin.Context) {
	resp, err := h.ring.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /embed
func (h *handlers) getEmbed(c *gin.Context) {
	resp, err := h.ring.Embed(c.Request.Context(), c.GetHeader("Origin"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /embed/status
func (h *handlers) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Preference{Enabled: h.cookie.enabled(c)})
}

// POST /embed/status
func (h *handlers) setStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Enabled {
		h.cookie.set(c)
	} else {
		h.cookie.clear(c)
	}
	log.Debug().
		Str("module", "adapters.http").
		Str("rid", c.GetString(requestIDKey)).
		Bool("enabled", *req.Enabled).
		Msg("preference updated")
	c.JSON(http.StatusOK, StatusResponse{Success: true})
}

// fail maps service errors onto plain-text responses.
func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidOrigin):
		c.String(http.StatusBadRequest, "Origin header missing or invalid")
	case errors.Is(err, app.ErrMemberNotFound):
		c.String(http.StatusNotFound, "Member not found")
	case errors.Is(err, app.ErrSourceFailed):
		c.String(http.StatusBadGateway, "Member source unavailable")
	default:
		log.Error().Err(err).Str("module", "adapters.http").Str("rid", c.GetString(requestIDKey)).Msg("unhandled error")
		c.String(http.StatusInternalServerError, "Internal server error")
	}
}
