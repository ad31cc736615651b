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

// ActionHandler serves the three participant writes: posting an answer,
// voting for one and commenting on one.
type ActionHandler struct {
	engine *contest.Engine
	cfg    cliparse.Config
}

func NewActionHandler(engine *contest.Engine, cfg cliparse.Config) *ActionHandler {
	return &ActionHandler{engine: engine, cfg: cfg}
}

// SubmitPost handles POST /topics/{id}/posts
func (h *ActionHandler) SubmitPost(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")

	var req models.SubmitPostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	origin := middleware.GetClientIP(r, h.cfg.TrustProxy)
	postID, err := h.engine.Submit(r.Context(), contest.SubmitInput{
		TopicID: topicID,
		Origin:  origin,
		Name:    req.Name,
		URL:     req.URL,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, err, "submit post")
		return
	}

	slog.Info("post submitted",
		"topic_id", topicID,
		"post_id", postID,
		"origin_hash", auth.HashIP(origin, h.cfg.LogSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitPostResponse{
		PostID:  postID,
		Message: "Post submitted",
	})
}

// Vote handles POST /topics/{id}/posts/{postID}/votes
func (h *ActionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")
	postID := r.PathValue("postID")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	origin := middleware.GetClientIP(r, h.cfg.TrustProxy)
	voteID, err := h.engine.Vote(r.Context(), contest.VoteInput{
		TopicID: topicID,
		PostID:  postID,
		Origin:  origin,
		Point:   req.Point,
		Name:    req.Name,
		URL:     req.URL,
	})
	if err != nil {
		writeError(w, r, err, "vote")
		return
	}

	slog.Info("vote recorded",
		"topic_id", topicID,
		"post_id", postID,
		"vote_id", voteID,
		"point", req.Point,
		"origin_hash", auth.HashIP(origin, h.cfg.LogSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		VoteID:  voteID,
		Message: "Vote recorded",
	})
}

// Comment handles POST /topics/{id}/posts/{postID}/comments
func (h *ActionHandler) Comment(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("id")
	postID := r.PathValue("postID")

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	origin := middleware.GetClientIP(r, h.cfg.TrustProxy)
	commentID, err := h.engine.Comment(r.Context(), contest.CommentInput{
		TopicID: topicID,
		PostID:  postID,
		Origin:  origin,
		Name:    req.Name,
		URL:     req.URL,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, err, "comment")
		return
	}

	slog.Info("comment added",
		"topic_id", topicID,
		"post_id", postID,
		"comment_id", commentID,
		"origin_hash", auth.HashIP(origin, h.cfg.LogSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CommentResponse{
		CommentID: commentID,
		Message:   "Comment added",
	})
}
