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

const voteColumns = `id, topic_id, post_id, point, origin, name, url, created_at`

func scanVote(row rowScanner) (models.Vote, error) {
	var v models.Vote
	var name, url sql.NullString
	if err := row.Scan(&v.ID, &v.TopicID, &v.PostID, &v.Point, &v.Origin, &name, &url, &v.CreatedAt); err != nil {
		return models.Vote{}, err
	}
	v.Name = name.String
	v.URL = url.String
	v.CreatedAt = v.CreatedAt.UTC()
	return v, nil
}

// HasVoted reports whether origin already voted for the post.
func (s *Store) HasVoted(ctx context.Context, topicID, postID, origin string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT EXISTS(SELECT 1 FROM votes WHERE topic_id = ? AND post_id = ? AND origin = ?)
	`), topicID, postID, origin).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// InsertVote records a vote, advances the origin's usage of the point tier
// and adds the point to the post's score, all in one transaction.
// pointLimit 0 means the tier is unlimited.
//
// The vote row goes in first, so a repeated vote reports ErrDuplicate even
// when the tier is also used up. Errors: ErrDuplicate when origin already
// voted for the post, ErrPointLimit when the tier is used up, ErrNotFound
// when the post vanished.
func (s *Store) InsertVote(ctx context.Context, v models.Vote, pointLimit int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO votes (id, topic_id, post_id, point, origin, name, url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), v.ID, v.TopicID, v.PostID, v.Point, v.Origin, nullString(v.Name), nullString(v.URL), v.CreatedAt.UTC())
		if err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicate
			}
			if IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to insert vote: %w", err)
		}

		res, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO point_quotas (topic_id, origin, point, used) VALUES (?, ?, ?, 1)
			ON CONFLICT (topic_id, origin, point) DO UPDATE SET used = point_quotas.used + 1
			WHERE ? = 0 OR point_quotas.used < ?
		`), v.TopicID, v.Origin, v.Point, pointLimit, pointLimit)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to claim point quota: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to claim point quota: %w", err)
		}
		if n == 0 {
			return ErrPointLimit
		}

		res, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE posts SET score = score + ? WHERE id = ? AND topic_id = ?
		`), v.Point, v.PostID, v.TopicID)
		if err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		} else if n != 1 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteVote removes a vote and reverses its effect on the post's score and
// the voter's tier usage. Deleting the same vote twice returns ErrNotFound
// the second time and changes nothing.
func (s *Store) DeleteVote(ctx context.Context, id string) (models.Vote, error) {
	var deleted models.Vote
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		v, err := scanVote(tx.QueryRowContext(ctx, s.rebind(`SELECT `+voteColumns+` FROM votes WHERE id = ?`), id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query vote: %w", err)
		}

		res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM votes WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
		if n != 1 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE posts SET score = score - ? WHERE id = ?`), v.Point, v.PostID); err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE point_quotas SET used = used - 1
			WHERE topic_id = ? AND origin = ? AND point = ? AND used > 0
		`), v.TopicID, v.Origin, v.Point)
		if err != nil {
			return fmt.Errorf("failed to release point quota: %w", err)
		}

		deleted = v
		return nil
	})
	return deleted, err
}

// ListVotes returns every vote in a topic, oldest first.
func (s *Store) ListVotes(ctx context.Context, topicID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+voteColumns+` FROM votes WHERE topic_id = ? ORDER BY created_at ASC, id ASC
	`), topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// VotedPostIDs lists the posts an origin has voted for in a topic.
func (s *Store) VotedPostIDs(ctx context.Context, topicID, origin string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT post_id FROM votes WHERE topic_id = ? AND origin = ? ORDER BY created_at ASC, post_id ASC
	`), topicID, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountTierVotes returns how many live votes of the given point origin has
// cast in a topic.
func (s *Store) CountTierVotes(ctx context.Context, topicID, origin string, point int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM votes WHERE topic_id = ? AND origin = ? AND point = ?
	`), topicID, origin, point).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}
