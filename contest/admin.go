// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/models"
)

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// applyRequest copies req onto base. Nil points, limits and flags keep the
// values already in base.
func applyRequest(base models.Topic, req models.TopicRequest) (models.Topic, error) {
	override, err := models.ParseOverride(strings.TrimSpace(req.Override))
	if err != nil {
		return models.Topic{}, &ValidationError{Reasons: []string{"override must be auto or a phase name"}}
	}

	t := base
	t.Title = strings.TrimSpace(req.Title)
	t.Description = req.Description
	t.Format = req.Format
	if t.Format == "" {
		t.Format = models.FormatPlain
	}
	t.LineBefore = req.LineBefore
	t.LineAfter = req.LineAfter
	t.PostStart = utc(req.PostStart)
	t.PostEnd = utc(req.PostEnd)
	t.VoteStart = utc(req.VoteStart)
	t.VoteEnd = utc(req.VoteEnd)
	t.ResultAt = utc(req.ResultAt)
	t.Override = override
	t.PointA = intOr(req.PointA, base.PointA)
	t.PointB = intOr(req.PointB, base.PointB)
	t.PointC = intOr(req.PointC, base.PointC)
	t.LimitA = intOr(req.LimitA, base.LimitA)
	t.LimitB = intOr(req.LimitB, base.LimitB)
	t.LimitC = intOr(req.LimitC, base.LimitC)
	t.CommentsAllowed = boolOr(req.CommentsAllowed, base.CommentsAllowed)
	t.SelfVoteAllowed = req.SelfVoteAllowed
	if req.RemoveImage {
		t.Image = nil
		t.ImageFormat = ""
	}
	if len(req.Image) > 0 {
		t.Image = req.Image
		t.ImageFormat = req.ImageFormat
	} else if req.ImageFormat != "" {
		t.ImageFormat = req.ImageFormat
	}
	return t, nil
}

// CreateTopic validates req, fills unset points and limits from the
// configured defaults and stores the new topic.
func (e *Engine) CreateTopic(ctx context.Context, req models.TopicRequest) (models.Topic, error) {
	id, err := newID()
	if err != nil {
		return models.Topic{}, err
	}
	now := e.now()
	base := models.Topic{
		ID:              id,
		PointA:          e.cfg.DefaultPointA,
		PointB:          e.cfg.DefaultPointB,
		PointC:          e.cfg.DefaultPointC,
		LimitA:          e.cfg.DefaultLimitA,
		LimitB:          e.cfg.DefaultLimitB,
		LimitC:          e.cfg.DefaultLimitC,
		CommentsAllowed: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t, err := applyRequest(base, req)
	if err != nil {
		return models.Topic{}, err
	}
	if err := checkTopic(t); err != nil {
		return models.Topic{}, err
	}
	if err := e.store.CreateTopic(ctx, t); err != nil {
		return models.Topic{}, err
	}
	return t, nil
}

// UpdateTopic replaces a topic's settings. Unset points, limits, flags and
// image keep their stored values; RemoveImage drops the image.
func (e *Engine) UpdateTopic(ctx context.Context, id string, req models.TopicRequest) (models.Topic, error) {
	current, err := e.topic(ctx, id)
	if err != nil {
		return models.Topic{}, err
	}
	t, err := applyRequest(current, req)
	if err != nil {
		return models.Topic{}, err
	}
	t.UpdatedAt = e.now()
	if err := checkTopic(t); err != nil {
		return models.Topic{}, err
	}
	err = e.store.UpdateTopic(ctx, t)
	if errors.Is(err, db.ErrNotFound) {
		return models.Topic{}, ErrNotFound
	}
	if err != nil {
		return models.Topic{}, err
	}
	return t, nil
}

// GetTopic returns a topic regardless of its phase.
func (e *Engine) GetTopic(ctx context.Context, id string) (models.Topic, error) {
	return e.topic(ctx, id)
}

func (e *Engine) DeleteTopic(ctx context.Context, id string) error {
	err := e.store.DeleteTopic(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ListTopics summarizes topics newest first. Frozen topics are included
// only when includeFrozen is set.
func (e *Engine) ListTopics(ctx context.Context, includeFrozen bool) ([]models.TopicSummary, error) {
	topics, err := e.store.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	summaries := make([]models.TopicSummary, 0, len(topics))
	for _, t := range topics {
		phase := Resolve(t, now)
		if phase == models.PhaseFrozen && !includeFrozen {
			continue
		}
		summaries = append(summaries, models.TopicSummary{
			ID:        t.ID,
			Title:     t.Title,
			Phase:     phase,
			PostStart: t.PostStart,
			PostEnd:   t.PostEnd,
			ResultAt:  t.ResultAt,
			HasImage:  t.ImageFormat != "",
			CreatedAt: t.CreatedAt,
		})
	}
	return summaries, nil
}

// DeletePost removes a post with its votes and comments and gives back the
// quota slots they consumed.
func (e *Engine) DeletePost(ctx context.Context, id string) (models.Post, error) {
	p, err := e.store.DeletePost(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.Post{}, ErrNotFound
	}
	return p, err
}

func (e *Engine) ListVotes(ctx context.Context, topicID string) ([]models.Vote, error) {
	if _, err := e.topic(ctx, topicID); err != nil {
		return nil, err
	}
	return e.store.ListVotes(ctx, topicID)
}

func (e *Engine) ListComments(ctx context.Context, topicID string) ([]models.Comment, error) {
	if _, err := e.topic(ctx, topicID); err != nil {
		return nil, err
	}
	return e.store.ListComments(ctx, topicID)
}

// Block bars origin from every write. Blocking twice keeps one entry.
func (e *Engine) Block(ctx context.Context, origin, reason string) error {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return &ValidationError{Reasons: []string{"origin is required"}}
	}
	if err := e.store.Block(ctx, origin, strings.TrimSpace(reason), e.now()); err != nil {
		return fmt.Errorf("block %s: %w", origin, err)
	}
	return nil
}

func (e *Engine) Unblock(ctx context.Context, origin string) error {
	err := e.store.Unblock(ctx, origin)
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (e *Engine) ListBlocked(ctx context.Context) ([]models.BlockedOrigin, error) {
	return e.store.ListBlocked(ctx)
}
