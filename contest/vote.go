// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"
	"errors"
	"strings"

	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/models"
)

type VoteInput struct {
	TopicID string
	PostID  string
	Origin  string
	Point   int
	Name    string
	URL     string
}

// Vote awards Point to a post. Checks run in order: phase, blocklist, post
// membership, self vote, duplicate, point value, tier limit, voter
// name/url. The vote row, the tier counter and the score increment are
// written in one transaction; a concurrent duplicate still fails with
// ErrDuplicateVote through the unique constraint.
func (e *Engine) Vote(ctx context.Context, in VoteInput) (string, error) {
	t, err := e.topic(ctx, in.TopicID)
	if err != nil {
		return "", err
	}
	now := e.now()
	if Resolve(t, now) != models.PhaseVoting {
		return "", ErrPhaseMismatch
	}
	if err := e.checkNotBlocked(ctx, in.Origin); err != nil {
		return "", err
	}

	post, err := e.postIn(ctx, t.ID, in.PostID)
	if err != nil {
		return "", err
	}
	if !t.SelfVoteAllowed && post.Origin == in.Origin {
		return "", ErrSelfVoteForbidden
	}

	voted, err := e.store.HasVoted(ctx, t.ID, post.ID, in.Origin)
	if err != nil {
		return "", err
	}
	if voted {
		return "", ErrDuplicateVote
	}

	limit, ok := t.PointLimit(in.Point)
	if !ok {
		return "", ErrInvalidPoint
	}
	if limit > 0 {
		used, err := e.store.CountTierVotes(ctx, t.ID, in.Origin, in.Point)
		if err != nil {
			return "", err
		}
		if used >= limit {
			return "", ErrPointLimitReached
		}
	}

	name := strings.TrimSpace(in.Name)
	url := strings.TrimSpace(in.URL)
	var reasons []string
	reasons = append(reasons, checkName(name, e.cfg.NameLimit, false)...)
	reasons = append(reasons, checkURL(url)...)
	if err := invalid(reasons); err != nil {
		return "", err
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	err = e.store.InsertVote(ctx, models.Vote{
		ID:        id,
		TopicID:   t.ID,
		PostID:    post.ID,
		Point:     in.Point,
		Origin:    in.Origin,
		Name:      name,
		URL:       url,
		CreatedAt: now,
	}, limit)
	switch {
	case errors.Is(err, db.ErrDuplicate):
		return "", ErrDuplicateVote
	case errors.Is(err, db.ErrPointLimit):
		return "", ErrPointLimitReached
	case errors.Is(err, db.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", err
	}
	return id, nil
}

// DeleteVote reverses a vote: the row is removed and its point subtracted
// from the post's score atomically. A vote can only be deleted once.
func (e *Engine) DeleteVote(ctx context.Context, voteID string) (models.Vote, error) {
	v, err := e.store.DeleteVote(ctx, voteID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Vote{}, ErrNotFound
	}
	return v, err
}
