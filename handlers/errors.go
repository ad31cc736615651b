// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/middleware"
)

// guardErrors maps every guard rejection to its HTTP shape. Order matters
// only in that the first errors.Is match wins.
var guardErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{contest.ErrNotFound, http.StatusNotFound, "not_found", "Not found"},
	{contest.ErrPhaseMismatch, http.StatusConflict, "phase_mismatch", "This action is not open in the topic's current phase"},
	{contest.ErrCommentsDisabled, http.StatusConflict, "comments_disabled", "Comments are disabled for this topic"},
	{contest.ErrDuplicateVote, http.StatusConflict, "duplicate_vote", "You have already voted for this post"},
	{contest.ErrOriginBlocked, http.StatusForbidden, "origin_blocked", "Your address is blocked"},
	{contest.ErrSelfVoteForbidden, http.StatusForbidden, "self_vote_forbidden", "You cannot vote for your own post"},
	{contest.ErrQuotaExceeded, http.StatusTooManyRequests, "quota_exceeded", "You have reached the post limit for this topic"},
	{contest.ErrPointLimitReached, http.StatusTooManyRequests, "point_limit_reached", "You have used up this point value for this topic"},
	{contest.ErrInvalidPoint, http.StatusBadRequest, "invalid_point", "Point is not one of the topic's values"},
	{contest.ErrValidationFailed, http.StatusBadRequest, "validation_failed", "Invalid input"},
}

// writeError turns an engine error into a JSON error response. Anything
// that is not a guard rejection is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	for _, ge := range guardErrors {
		if !errors.Is(err, ge.err) {
			continue
		}
		var reasons []string
		var ve *contest.ValidationError
		if errors.As(err, &ve) {
			reasons = ve.Reasons
		}
		middleware.CodedErrorResponse(w, ge.status, ge.code, ge.message, reasons)
		return
	}

	slog.Error("request failed",
		"request_id", middleware.RequestID(r.Context()),
		"action", action,
		"error", err,
	)
	middleware.CodedErrorResponse(w, http.StatusInternalServerError, "internal", "Database error", nil)
}
