package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type trackRequest struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

type eventResponse struct {
	ID         int64          `json:"id"`
	Event      string         `json:"event"`
	Data       map[string]any `json:"data"`
	ClientID   string         `json:"clientId,omitempty"`
	ReceivedAt time.Time      `json:"receivedAt"`
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), msg)
		msg = http.StatusText(code)
	}
	c.JSON(code, gin.H{"success": false, "error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTemplates(c *gin.Context) {
	period := c.Param("period")
	c.JSON(http.StatusOK, gin.H{
		"period":        period,
		"templateCount": s.catalogue.TemplateCount(period),
	})
}

func (s *Server) handleTrack(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
		return
	}
	if req.Event == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "event is required"})
		return
	}

	if err := s.analytics.Track(c.Request.Context(), c.GetHeader(ClientIDHeader), req.Event, req.Data); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSummary(c *gin.Context) {
	counts, err := s.analytics.Summary(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make(map[string]int64, len(counts))
	for _, ec := range counts {
		out[ec.Name] = ec.Count
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (s *Server) handleRecent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	list, err := s.analytics.Recent(c.Request.Context(), c.Param("event"), limit)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]eventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, eventResponse{
			ID:         e.ID,
			Event:      e.Name,
			Data:       e.Data,
			ClientID:   e.ClientID,
			ReceivedAt: e.ReceivedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}
