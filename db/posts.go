// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/bokesys/models"
)

const postColumns = `id, topic_id, name, url, content, origin, score, created_at`

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	var url sql.NullString
	if err := row.Scan(&p.ID, &p.TopicID, &p.Name, &url, &p.Content, &p.Origin, &p.Score, &p.CreatedAt); err != nil {
		return models.Post{}, err
	}
	p.URL = url.String
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

// InsertPost claims a slot in the origin's post quota for the topic and
// inserts the post in the same transaction. ErrQuotaFull is returned when
// the origin already holds quota posts; ErrNotFound when the topic is gone.
func (s *Store) InsertPost(ctx context.Context, p models.Post, quota int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO post_quotas (topic_id, origin, used) VALUES (?, ?, 1)
			ON CONFLICT (topic_id, origin) DO UPDATE SET used = post_quotas.used + 1
			WHERE post_quotas.used < ?
		`), p.TopicID, p.Origin, quota)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to claim post quota: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to claim post quota: %w", err)
		}
		if n == 0 {
			return ErrQuotaFull
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO posts (id, topic_id, name, url, content, origin, score, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		`), p.ID, p.TopicID, p.Name, nullString(p.URL), p.Content, p.Origin, p.CreatedAt.UTC())
		if err != nil {
			if IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			if IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return nil
	})
}

func (s *Store) GetPost(ctx context.Context, id string) (models.Post, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+postColumns+` FROM posts WHERE id = ?`), id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

// ListPosts returns a topic's posts. With byScore the highest score comes
// first; otherwise posts are in submission order.
func (s *Store) ListPosts(ctx context.Context, topicID string, byScore bool) ([]models.Post, error) {
	order := `created_at ASC, id ASC`
	if byScore {
		order = `score DESC, created_at ASC, id ASC`
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+postColumns+` FROM posts WHERE topic_id = ? ORDER BY `+order,
	), topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPostsByOrigin returns how many live posts an origin holds in a topic.
func (s *Store) CountPostsByOrigin(ctx context.Context, topicID, origin string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM posts WHERE topic_id = ? AND origin = ?
	`), topicID, origin).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// DeletePost removes a post together with its votes and comments. The
// author's post quota slot and every tier slot consumed by the post's votes
// are released in the same transaction.
func (s *Store) DeletePost(ctx context.Context, id string) (models.Post, error) {
	var deleted models.Post
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := scanPost(tx.QueryRowContext(ctx, s.rebind(`SELECT `+postColumns+` FROM posts WHERE id = ?`), id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query post: %w", err)
		}

		type tierUse struct {
			origin string
			point  int
			n      int
		}
		var uses []tierUse
		rows, err := tx.QueryContext(ctx, s.rebind(`
			SELECT origin, point, COUNT(*) FROM votes WHERE post_id = ? GROUP BY origin, point
		`), id)
		if err != nil {
			return fmt.Errorf("failed to query votes: %w", err)
		}
		for rows.Next() {
			var u tierUse
			if err := rows.Scan(&u.origin, &u.point, &u.n); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan vote: %w", err)
			}
			uses = append(uses, u)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, u := range uses {
			_, err := tx.ExecContext(ctx, s.rebind(`
				UPDATE point_quotas SET used = CASE WHEN used > ? THEN used - ? ELSE 0 END
				WHERE topic_id = ? AND origin = ? AND point = ?
			`), u.n, u.n, p.TopicID, u.origin, u.point)
			if err != nil {
				return fmt.Errorf("failed to release point quota: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM posts WHERE id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE post_quotas SET used = used - 1
			WHERE topic_id = ? AND origin = ? AND used > 0
		`), p.TopicID, p.Origin)
		if err != nil {
			return fmt.Errorf("failed to release post quota: %w", err)
		}

		deleted = p
		return nil
	})
	return deleted, err
}
