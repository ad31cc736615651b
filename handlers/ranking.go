// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/middleware"
)

type RankingHandler struct {
	engine *contest.Engine
}

func NewRankingHandler(engine *contest.Engine) *RankingHandler {
	return &RankingHandler{engine: engine}
}

// Players handles GET /ranking/players
func (h *RankingHandler) Players(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.engine.PlayerRanking(r.Context())
	if err != nil {
		writeError(w, r, err, "player ranking")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ranks)
}

// Posts handles GET /ranking/posts
func (h *RankingHandler) Posts(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.engine.PostRanking(r.Context())
	if err != nil {
		writeError(w, r, err, "post ranking")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ranks)
}
