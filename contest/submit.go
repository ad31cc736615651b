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

type SubmitInput struct {
	TopicID string
	Origin  string
	Name    string
	URL     string
	Content string
}

// Submit admits a new answer into a topic. Checks run in order and the
// first failure is returned: phase, blocklist, name/url/content, quota.
func (e *Engine) Submit(ctx context.Context, in SubmitInput) (string, error) {
	t, err := e.topic(ctx, in.TopicID)
	if err != nil {
		return "", err
	}
	now := e.now()
	if Resolve(t, now) != models.PhasePosting {
		return "", ErrPhaseMismatch
	}
	if err := e.checkNotBlocked(ctx, in.Origin); err != nil {
		return "", err
	}

	name := strings.TrimSpace(in.Name)
	url := strings.TrimSpace(in.URL)
	content := strings.TrimSpace(in.Content)
	if err := checkEntry(name, url, content, e.cfg.NameLimit, e.cfg.PostBodyLimit); err != nil {
		return "", err
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	err = e.store.InsertPost(ctx, models.Post{
		ID:        id,
		TopicID:   t.ID,
		Name:      name,
		URL:       url,
		Content:   content,
		Origin:    in.Origin,
		CreatedAt: now,
	}, e.cfg.IPPostLimit)
	switch {
	case errors.Is(err, db.ErrQuotaFull):
		return "", ErrQuotaExceeded
	case errors.Is(err, db.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", err
	}
	return id, nil
}
