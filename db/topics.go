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

const topicColumns = `id, title, description, format, line_before, line_after,
	post_start, post_end, vote_start, vote_end, result_at, phase_override,
	point_a, point_b, point_c, limit_a, limit_b, limit_c,
	comments_allowed, self_vote_allowed, image_format, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner, withImage bool) (models.Topic, error) {
	var t models.Topic
	var postStart, postEnd, voteStart, voteEnd, resultAt sql.NullTime
	var override, imageFormat sql.NullString

	dest := []any{
		&t.ID, &t.Title, &t.Description, &t.Format, &t.LineBefore, &t.LineAfter,
		&postStart, &postEnd, &voteStart, &voteEnd, &resultAt, &override,
		&t.PointA, &t.PointB, &t.PointC, &t.LimitA, &t.LimitB, &t.LimitC,
		&t.CommentsAllowed, &t.SelfVoteAllowed, &imageFormat, &t.CreatedAt, &t.UpdatedAt,
	}
	if withImage {
		dest = append(dest, &t.Image)
	}
	if err := row.Scan(dest...); err != nil {
		return models.Topic{}, err
	}

	t.PostStart = timePtr(postStart)
	t.PostEnd = timePtr(postEnd)
	t.VoteStart = timePtr(voteStart)
	t.VoteEnd = timePtr(voteEnd)
	t.ResultAt = timePtr(resultAt)
	t.ImageFormat = imageFormat.String
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()

	ov, err := models.ParseOverride(override.String)
	if err != nil {
		return models.Topic{}, fmt.Errorf("topic %s: %w", t.ID, err)
	}
	t.Override = ov
	return t, nil
}

func overrideValue(o models.Override) sql.NullString {
	if p, ok := o.Forced(); ok {
		return sql.NullString{String: p.String(), Valid: true}
	}
	return sql.NullString{}
}

// CreateTopic inserts a fully validated topic.
func (s *Store) CreateTopic(ctx context.Context, t models.Topic) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO topics (id, title, description, format, line_before, line_after,
			post_start, post_end, vote_start, vote_end, result_at, phase_override,
			point_a, point_b, point_c, limit_a, limit_b, limit_c,
			comments_allowed, self_vote_allowed, image, image_format, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), t.ID, t.Title, t.Description, t.Format, t.LineBefore, t.LineAfter,
		utcPtr(t.PostStart), utcPtr(t.PostEnd), utcPtr(t.VoteStart), utcPtr(t.VoteEnd), utcPtr(t.ResultAt),
		overrideValue(t.Override),
		t.PointA, t.PointB, t.PointC, t.LimitA, t.LimitB, t.LimitC,
		t.CommentsAllowed, t.SelfVoteAllowed, t.Image, nullString(t.ImageFormat),
		t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert topic: %w", err)
	}
	return nil
}

// UpdateTopic replaces every operator-editable column of a topic.
func (s *Store) UpdateTopic(ctx context.Context, t models.Topic) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE topics SET title = ?, description = ?, format = ?, line_before = ?, line_after = ?,
			post_start = ?, post_end = ?, vote_start = ?, vote_end = ?, result_at = ?, phase_override = ?,
			point_a = ?, point_b = ?, point_c = ?, limit_a = ?, limit_b = ?, limit_c = ?,
			comments_allowed = ?, self_vote_allowed = ?, image = ?, image_format = ?, updated_at = ?
		WHERE id = ?
	`), t.Title, t.Description, t.Format, t.LineBefore, t.LineAfter,
		utcPtr(t.PostStart), utcPtr(t.PostEnd), utcPtr(t.VoteStart), utcPtr(t.VoteEnd), utcPtr(t.ResultAt),
		overrideValue(t.Override),
		t.PointA, t.PointB, t.PointC, t.LimitA, t.LimitB, t.LimitC,
		t.CommentsAllowed, t.SelfVoteAllowed, t.Image, nullString(t.ImageFormat),
		t.UpdatedAt.UTC(), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTopic loads one topic including its image.
func (s *Store) GetTopic(ctx context.Context, id string) (models.Topic, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+topicColumns+`, image FROM topics WHERE id = ?
	`), id)
	t, err := scanTopic(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Topic{}, ErrNotFound
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("failed to query topic: %w", err)
	}
	return t, nil
}

// ListTopics returns every topic, newest first, without image bytes.
func (s *Store) ListTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+topicColumns+` FROM topics ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// DeleteTopic removes a topic; posts, votes, comments and ledgers cascade.
func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM topics WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
