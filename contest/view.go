// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/bokesys/models"
)

// TopicView assembles the public page of a topic as seen from origin.
// Frozen topics are NotFound unless operator is set. Scores are shown only
// once results are published, and then posts are ordered by score.
func (e *Engine) TopicView(ctx context.Context, topicID, origin string, operator bool) (models.TopicView, error) {
	t, err := e.topic(ctx, topicID)
	if err != nil {
		return models.TopicView{}, err
	}
	now := e.now()
	phase := Resolve(t, now)
	if phase == models.PhaseFrozen && !operator {
		return models.TopicView{}, ErrNotFound
	}

	results := phase == models.PhaseResults
	posts, err := e.store.ListPosts(ctx, t.ID, results)
	if err != nil {
		return models.TopicView{}, err
	}

	commentsByPost := map[string][]models.Comment{}
	if t.CommentsAllowed && commentPhase(phase) {
		comments, err := e.store.ListComments(ctx, t.ID)
		if err != nil {
			return models.TopicView{}, err
		}
		for _, c := range comments {
			commentsByPost[c.PostID] = append(commentsByPost[c.PostID], c)
		}
	}

	view := models.TopicView{
		Topic: t,
		Phase: phase,
		Posts: make([]models.PostView, 0, len(posts)),
		Viewer: models.ViewerInfo{
			PostIDs:      []string{},
			VotedPostIDs: []string{},
		},
	}
	if next, ok := NextTransition(t, now); ok {
		view.NextTransition = &next
		view.NextTransitionIn = humanize.RelTime(next, now, "ago", "from now")
	}

	for _, p := range posts {
		pv := models.PostView{
			ID:        p.ID,
			Name:      p.Name,
			URL:       p.URL,
			Content:   p.Content,
			Rendered:  t.Render(p.Content),
			CreatedAt: p.CreatedAt,
			Comments:  commentsByPost[p.ID],
		}
		if results || operator {
			score := p.Score
			pv.Score = &score
		}
		view.Posts = append(view.Posts, pv)

		if origin != "" && p.Origin == origin {
			view.Viewer.PostIDs = append(view.Viewer.PostIDs, p.ID)
		}
	}

	if origin != "" {
		blocked, err := e.store.IsBlocked(ctx, origin)
		if err != nil {
			return models.TopicView{}, err
		}
		voted, err := e.store.VotedPostIDs(ctx, t.ID, origin)
		if err != nil {
			return models.TopicView{}, err
		}
		own, err := e.store.CountPostsByOrigin(ctx, t.ID, origin)
		if err != nil {
			return models.TopicView{}, err
		}
		view.Viewer.Blocked = blocked
		view.Viewer.VotedPostIDs = voted
		view.Viewer.RemainingPosts = max(0, e.cfg.IPPostLimit-own)
	} else {
		view.Viewer.RemainingPosts = e.cfg.IPPostLimit
	}

	return view, nil
}
