// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/bokesys/models"
)

func (s *Store) IsBlocked(ctx context.Context, origin string) (bool, error) {
	var blocked bool
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT EXISTS(SELECT 1 FROM blocked_origins WHERE origin = ?)
	`), origin).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("failed to check blocklist: %w", err)
	}
	return blocked, nil
}

// Block adds origin to the blocklist. Blocking an already blocked origin
// only refreshes the reason.
func (s *Store) Block(ctx context.Context, origin, reason string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO blocked_origins (origin, reason, created_at) VALUES (?, ?, ?)
		ON CONFLICT (origin) DO UPDATE SET reason = excluded.reason
	`), origin, nullString(reason), at.UTC())
	if err != nil {
		return fmt.Errorf("failed to block origin: %w", err)
	}
	return nil
}

func (s *Store) Unblock(ctx context.Context, origin string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM blocked_origins WHERE origin = ?`), origin)
	if err != nil {
		return fmt.Errorf("failed to unblock origin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to unblock origin: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListBlocked(ctx context.Context) ([]models.BlockedOrigin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT origin, reason, created_at FROM blocked_origins ORDER BY created_at DESC, origin ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocklist: %w", err)
	}
	defer rows.Close()

	list := []models.BlockedOrigin{}
	for rows.Next() {
		var b models.BlockedOrigin
		var reason sql.NullString
		if err := rows.Scan(&b.Origin, &reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blocked origin: %w", err)
		}
		b.Reason = reason.String
		b.CreatedAt = b.CreatedAt.UTC()
		list = append(list, b)
	}
	return list, rows.Err()
}
