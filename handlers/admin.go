// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bokesys/auth"
	"github.com/danielhkuo/bokesys/cliparse"
	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/middleware"
	"github.com/danielhkuo/bokesys/models"
)

// AdminHandler serves the operator surface. Every route is wrapped in
// middleware.RequireAdmin by the router.
type AdminHandler struct {
	engine *contest.Engine
	cfg    cliparse.Config
}

func NewAdminHandler(engine *contest.Engine, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{engine: engine, cfg: cfg}
}

// ListTopics handles GET /admin/topics
func (h *AdminHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.engine.ListTopics(r.Context(), true)
	if err != nil {
		writeError(w, r, err, "admin list topics")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, topics)
}

// CreateTopic handles POST /admin/topics
func (h *AdminHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.TopicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	topic, err := h.engine.CreateTopic(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "create topic")
		return
	}

	slog.Info("topic created", "topic_id", topic.ID, "title", topic.Title, "override", topic.Override)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateTopicResponse{TopicID: topic.ID})
}

// GetTopic handles GET /admin/topics/{id}
func (h *AdminHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.engine.GetTopic(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "admin get topic")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, topic)
}

// UpdateTopic handles PUT /admin/topics/{id}
func (h *AdminHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.TopicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	topic, err := h.engine.UpdateTopic(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err, "update topic")
		return
	}

	slog.Info("topic updated", "topic_id", topic.ID, "override", topic.Override)

	middleware.JSONResponse(w, http.StatusOK, topic)
}

// DeleteTopic handles DELETE /admin/topics/{id}
func (h *AdminHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")
	if err := h.engine.DeleteTopic(r.Context(), topicID); err != nil {
		writeError(w, r, err, "delete topic")
		return
	}
	slog.Info("topic deleted", "topic_id", topicID)
	w.WriteHeader(http.StatusNoContent)
}

// ListVotes handles GET /admin/topics/{id}/votes
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.engine.ListVotes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "list votes")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}

// ListComments handles GET /admin/topics/{id}/comments
func (h *AdminHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.engine.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "list comments")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, comments)
}

// DeletePost handles DELETE /admin/posts/{id}
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.engine.DeletePost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "delete post")
		return
	}
	slog.Info("post deleted", "post_id", post.ID, "topic_id", post.TopicID, "score", post.Score)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteVote handles DELETE /admin/votes/{id}
// The vote's point is subtracted from the post in the same transaction.
func (h *AdminHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	vote, err := h.engine.DeleteVote(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "delete vote")
		return
	}
	slog.Info("vote deleted", "vote_id", vote.ID, "post_id", vote.PostID, "point", vote.Point)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteVoteResponse{
		VoteID: vote.ID,
		PostID: vote.PostID,
		Point:  vote.Point,
	})
}

// DeleteComment handles DELETE /admin/comments/{id}
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("id")
	if err := h.engine.DeleteComment(r.Context(), commentID); err != nil {
		writeError(w, r, err, "delete comment")
		return
	}
	slog.Info("comment deleted", "comment_id", commentID)
	w.WriteHeader(http.StatusNoContent)
}

// ListBlocked handles GET /admin/blocked
func (h *AdminHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.ListBlocked(r.Context())
	if err != nil {
		writeError(w, r, err, "list blocked")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// Block handles POST /admin/blocked
func (h *AdminHandler) Block(w http.ResponseWriter, r *http.Request) {
	var req models.BlockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.engine.Block(r.Context(), req.Origin, req.Reason); err != nil {
		writeError(w, r, err, "block origin")
		return
	}
	slog.Info("origin blocked", "origin_hash", auth.HashIP(req.Origin, h.cfg.LogSalt))
	w.WriteHeader(http.StatusNoContent)
}

// Unblock handles DELETE /admin/blocked/{origin}
func (h *AdminHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	origin := r.PathValue("origin")
	if err := h.engine.Unblock(r.Context(), origin); err != nil {
		writeError(w, r, err, "unblock origin")
		return
	}
	slog.Info("origin unblocked", "origin_hash", auth.HashIP(origin, h.cfg.LogSalt))
	w.WriteHeader(http.StatusNoContent)
}
