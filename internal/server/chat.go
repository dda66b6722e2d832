package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	Reply  string `json:"reply"`
	TurnID string `json:"turn_id"`
	Intent string `json:"intent,omitempty"`
	Route  string `json:"route,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.TurnTimeout)
	defer cancel()

	res := s.cfg.Turns.ProcessTurn(ctx, s.cfg.SessionID, req.Message)
	out := chatResponse{Reply: res.Reply, TurnID: res.TurnID, Route: string(res.Route)}
	if res.Intent != "" {
		out.Intent = res.Intent.String()
	}
	c.JSON(http.StatusOK, out)
}
