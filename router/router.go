// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bokesys/cliparse"
	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/handlers"
	"github.com/danielhkuo/bokesys/middleware"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	store := db.NewStore(conn, db.DialectFor(cfg.DatabaseType))
	return NewRouterWithEngine(conn, contest.NewEngine(store, cfg), cfg)
}

// NewRouterWithEngine registers every route against an existing engine,
// letting callers control its clock.
func NewRouterWithEngine(conn *sql.DB, engine *contest.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	topicHandler := handlers.NewTopicHandler(engine, cfg)
	actionHandler := handlers.NewActionHandler(engine, cfg)
	rankingHandler := handlers.NewRankingHandler(engine)
	adminHandler := handlers.NewAdminHandler(engine, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := conn.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public topic pages
	mux.HandleFunc("GET /topics", middleware.WithLogging(topicHandler.ListTopics))
	mux.HandleFunc("GET /topics/{id}", middleware.WithLogging(topicHandler.GetTopic))

	// Participant actions
	mux.HandleFunc("POST /topics/{id}/posts", middleware.WithLogging(actionHandler.SubmitPost))
	mux.HandleFunc("POST /topics/{id}/posts/{postID}/votes", middleware.WithLogging(actionHandler.Vote))
	mux.HandleFunc("POST /topics/{id}/posts/{postID}/comments", middleware.WithLogging(actionHandler.Comment))

	// Leaderboards (published topics only)
	mux.HandleFunc("GET /ranking/players", middleware.WithLogging(rankingHandler.Players))
	mux.HandleFunc("GET /ranking/posts", middleware.WithLogging(rankingHandler.Posts))

	// Operator (requires X-Admin-Key)
	mux.HandleFunc("GET /admin/topics", admin(adminHandler.ListTopics))
	mux.HandleFunc("POST /admin/topics", admin(adminHandler.CreateTopic))
	mux.HandleFunc("GET /admin/topics/{id}", admin(adminHandler.GetTopic))
	mux.HandleFunc("PUT /admin/topics/{id}", admin(adminHandler.UpdateTopic))
	mux.HandleFunc("DELETE /admin/topics/{id}", admin(adminHandler.DeleteTopic))
	mux.HandleFunc("GET /admin/topics/{id}/votes", admin(adminHandler.ListVotes))
	mux.HandleFunc("GET /admin/topics/{id}/comments", admin(adminHandler.ListComments))
	mux.HandleFunc("DELETE /admin/posts/{id}", admin(adminHandler.DeletePost))
	mux.HandleFunc("DELETE /admin/votes/{id}", admin(adminHandler.DeleteVote))
	mux.HandleFunc("DELETE /admin/comments/{id}", admin(adminHandler.DeleteComment))
	mux.HandleFunc("GET /admin/blocked", admin(adminHandler.ListBlocked))
	mux.HandleFunc("POST /admin/blocked", admin(adminHandler.Block))
	mux.HandleFunc("DELETE /admin/blocked/{origin}", admin(adminHandler.Unblock))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "No such endpoint")
			return
		}
		w.Write([]byte("bokesys API v1"))
	})

	return mux
}
