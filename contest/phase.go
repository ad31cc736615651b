// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"time"

	"github.com/danielhkuo/bokesys/models"
)

// Resolve returns the phase a topic is in at now. A forced override wins;
// otherwise the schedule is consulted in order, first match wins:
//
//	post_start set, now < post_start                       → awaiting_start
//	post_start set, now ≥ post_start, before post_end       → posting
//	vote_start set, now ≥ vote_start, before vote_end       → voting
//	result_at set, now ≥ result_at                          → results
//	otherwise                                               → posting
//
// An unset end bound means the window never closes.
func Resolve(t models.Topic, now time.Time) models.Phase {
	if p, ok := t.Override.Forced(); ok {
		return p
	}

	if t.PostStart != nil {
		if now.Before(*t.PostStart) {
			return models.PhaseAwaitingStart
		}
		if t.PostEnd == nil || now.Before(*t.PostEnd) {
			return models.PhasePosting
		}
	}
	if t.VoteStart != nil && !now.Before(*t.VoteStart) {
		if t.VoteEnd == nil || now.Before(*t.VoteEnd) {
			return models.PhaseVoting
		}
	}
	if t.ResultAt != nil && !now.Before(*t.ResultAt) {
		return models.PhaseResults
	}
	return models.PhasePosting
}

// NextTransition returns the earliest schedule instant strictly after now.
// ok is false for forced topics and when no instant lies ahead.
func NextTransition(t models.Topic, now time.Time) (next time.Time, ok bool) {
	if !t.Override.IsAuto() {
		return time.Time{}, false
	}
	for _, at := range []*time.Time{t.PostStart, t.PostEnd, t.VoteStart, t.VoteEnd, t.ResultAt} {
		if at == nil || !at.After(now) {
			continue
		}
		if !ok || at.Before(next) {
			next, ok = *at, true
		}
	}
	return next, ok
}
