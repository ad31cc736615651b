// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/bokesys/models"
)

func (s *Store) InsertComment(ctx context.Context, c models.Comment) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO comments (id, topic_id, post_id, name, url, content, origin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.TopicID, c.PostID, c.Name, nullString(c.URL), c.Content, c.Origin, c.CreatedAt.UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListComments returns every comment in a topic, oldest first.
func (s *Store) ListComments(ctx context.Context, topicID string) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, topic_id, post_id, name, url, content, origin, created_at
		FROM comments WHERE topic_id = ? ORDER BY created_at ASC, id ASC
	`), topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var url sql.NullString
		if err := rows.Scan(&c.ID, &c.TopicID, &c.PostID, &c.Name, &url, &c.Content, &c.Origin, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.URL = url.String
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM comments WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
