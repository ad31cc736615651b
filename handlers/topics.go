// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/bokesys/cliparse"
	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/middleware"
)

type TopicHandler struct {
	engine *contest.Engine
	cfg    cliparse.Config
}

func NewTopicHandler(engine *contest.Engine, cfg cliparse.Config) *TopicHandler {
	return &TopicHandler{engine: engine, cfg: cfg}
}

// ListTopics handles GET /topics
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.engine.ListTopics(r.Context(), false)
	if err != nil {
		writeError(w, r, err, "list topics")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, topics)
}

// GetTopic handles GET /topics/{id}
// Frozen topics are only visible with a valid X-Admin-Key.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")
	if topicID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "topic_id is required")
		return
	}

	operator := middleware.IsAdmin(r, h.cfg.AdminKey)
	view, err := h.engine.TopicView(r.Context(), topicID, middleware.GetClientIP(r, h.cfg.TrustProxy), operator)
	if err != nil {
		writeError(w, r, err, "get topic")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}
