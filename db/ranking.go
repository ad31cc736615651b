// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/bokesys/models"
)

// PlayerTotal is one participant's aggregate across the given topics.
type PlayerTotal struct {
	Name       string
	URL        string
	TotalScore int
	TopicCount int
	PostCount  int
}

// PostEntry is one post joined with the title of its topic.
type PostEntry struct {
	Post       models.Post
	TopicTitle string
}

// PlayerTotals aggregates posts by display name over topicIDs, ordered by
// total score descending then name ascending. An empty topicIDs yields nil.
func (s *Store) PlayerTotals(ctx context.Context, topicIDs []string, limit int) ([]PlayerTotal, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(topicIDs)+1)
	for _, id := range topicIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT name, MAX(COALESCE(url, '')), SUM(score), COUNT(DISTINCT topic_id), COUNT(*)
		FROM posts
		WHERE topic_id IN (`+placeholders(len(topicIDs))+`)
		GROUP BY name
		ORDER BY SUM(score) DESC, name ASC
		LIMIT ?
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player ranking: %w", err)
	}
	defer rows.Close()

	var totals []PlayerTotal
	for rows.Next() {
		var t PlayerTotal
		if err := rows.Scan(&t.Name, &t.URL, &t.TotalScore, &t.TopicCount, &t.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan player ranking: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// TopPosts returns the highest scoring posts over topicIDs, ties broken by
// submission time then id. An empty topicIDs yields nil.
func (s *Store) TopPosts(ctx context.Context, topicIDs []string, limit int) ([]PostEntry, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(topicIDs)+1)
	for _, id := range topicIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT p.id, p.topic_id, p.name, p.url, p.content, p.origin, p.score, p.created_at,
			t.title
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE p.topic_id IN (`+placeholders(len(topicIDs))+`)
		ORDER BY p.score DESC, p.created_at ASC, p.id ASC
		LIMIT ?
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post ranking: %w", err)
	}
	defer rows.Close()

	var entries []PostEntry
	for rows.Next() {
		var e PostEntry
		var url sql.NullString
		if err := rows.Scan(&e.Post.ID, &e.Post.TopicID, &e.Post.Name, &url, &e.Post.Content, &e.Post.Origin,
			&e.Post.Score, &e.Post.CreatedAt, &e.TopicTitle); err != nil {
			return nil, fmt.Errorf("failed to scan post ranking: %w", err)
		}
		e.Post.URL = url.String
		e.Post.CreatedAt = e.Post.CreatedAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
