package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/ai"
)

// IntakeHandler serves manifest suggestions from free-text inventory lists.
// The suggester is optional; without one the endpoint reports unavailable.
type IntakeHandler struct {
	suggester ai.ManifestSuggester
}

func NewIntakeHandler(suggester ai.ManifestSuggester) *IntakeHandler {
	return &IntakeHandler{suggester: suggester}
}

type suggestReq struct {
	Text string `json:"text"`
}

func (h *IntakeHandler) Suggest(c *gin.Context) {
	if h.suggester == nil {
		writeError(c, http.StatusServiceUnavailable, "intake suggestions not configured")
		return
	}
	var body suggestReq
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		writeError(c, http.StatusBadRequest, "missing text")
		return
	}
	suggestions, err := h.suggester.SuggestManifest(c.Request.Context(), body.Text)
	if err != nil {
		writeError(c, http.StatusBadGateway, "suggestion provider error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
