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

type CommentInput struct {
	TopicID string
	PostID  string
	Origin  string
	Name    string
	URL     string
	Content string
}

func commentPhase(p models.Phase) bool {
	return p == models.PhaseVoting || p == models.PhaseResults
}

// Comment attaches a comment to a post. Comments are open only while the
// topic allows them and is in voting or results.
func (e *Engine) Comment(ctx context.Context, in CommentInput) (string, error) {
	t, err := e.topic(ctx, in.TopicID)
	if err != nil {
		return "", err
	}
	if !t.CommentsAllowed {
		return "", ErrCommentsDisabled
	}
	now := e.now()
	if !commentPhase(Resolve(t, now)) {
		return "", ErrPhaseMismatch
	}
	if err := e.checkNotBlocked(ctx, in.Origin); err != nil {
		return "", err
	}
	post, err := e.postIn(ctx, t.ID, in.PostID)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(in.Name)
	url := strings.TrimSpace(in.URL)
	content := strings.TrimSpace(in.Content)
	if err := checkEntry(name, url, content, e.cfg.NameLimit, e.cfg.CommentBodyLimit); err != nil {
		return "", err
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	err = e.store.InsertComment(ctx, models.Comment{
		ID:        id,
		TopicID:   t.ID,
		PostID:    post.ID,
		Name:      name,
		URL:       url,
		Content:   content,
		Origin:    in.Origin,
		CreatedAt: now,
	})
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (e *Engine) DeleteComment(ctx context.Context, id string) error {
	err := e.store.DeleteComment(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
