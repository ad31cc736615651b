// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	schema := postgresSchema
	if dialect == DialectSQLite {
		schema = sqliteSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Topics
CREATE TABLE IF NOT EXISTS topics (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    format TEXT NOT NULL DEFAULT 'plain' CHECK (format IN ('plain', 'line')),
    line_before TEXT NOT NULL DEFAULT '',
    line_after TEXT NOT NULL DEFAULT '',
    post_start TIMESTAMPTZ,
    post_end TIMESTAMPTZ,
    vote_start TIMESTAMPTZ,
    vote_end TIMESTAMPTZ,
    result_at TIMESTAMPTZ,
    phase_override TEXT CHECK (phase_override IN ('posting', 'voting', 'results', 'awaiting_start', 'announcement', 'frozen')),
    point_a INTEGER NOT NULL DEFAULT 3,
    point_b INTEGER NOT NULL DEFAULT 2,
    point_c INTEGER NOT NULL DEFAULT 1,
    limit_a INTEGER NOT NULL DEFAULT 1 CHECK (limit_a >= 0),
    limit_b INTEGER NOT NULL DEFAULT 3 CHECK (limit_b >= 0),
    limit_c INTEGER NOT NULL DEFAULT 5 CHECK (limit_c >= 0),
    comments_allowed BOOLEAN NOT NULL DEFAULT TRUE,
    self_vote_allowed BOOLEAN NOT NULL DEFAULT FALSE,
    image BYTEA,
    image_format TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_topics_created_at ON topics(created_at);

-- Posts (answers)
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT,
    content TEXT NOT NULL,
    origin TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_posts_topic ON posts(topic_id);
CREATE INDEX IF NOT EXISTS idx_posts_topic_origin ON posts(topic_id, origin);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    point INTEGER NOT NULL,
    origin TEXT NOT NULL,
    name TEXT,
    url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (topic_id, post_id, origin)
);

CREATE INDEX IF NOT EXISTS idx_votes_topic ON votes(topic_id);
CREATE INDEX IF NOT EXISTS idx_votes_post ON votes(post_id);

-- Comments
CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT,
    content TEXT NOT NULL,
    origin TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);

-- Blocked origins
CREATE TABLE IF NOT EXISTS blocked_origins (
    origin TEXT PRIMARY KEY,
    reason TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Quota ledgers
CREATE TABLE IF NOT EXISTS post_quotas (
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    origin TEXT NOT NULL,
    used INTEGER NOT NULL CHECK (used >= 0),
    PRIMARY KEY (topic_id, origin)
);

CREATE TABLE IF NOT EXISTS point_quotas (
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    origin TEXT NOT NULL,
    point INTEGER NOT NULL,
    used INTEGER NOT NULL CHECK (used >= 0),
    PRIMARY KEY (topic_id, origin, point)
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS topics (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    format TEXT NOT NULL DEFAULT 'plain' CHECK (format IN ('plain', 'line')),
    line_before TEXT NOT NULL DEFAULT '',
    line_after TEXT NOT NULL DEFAULT '',
    post_start DATETIME,
    post_end DATETIME,
    vote_start DATETIME,
    vote_end DATETIME,
    result_at DATETIME,
    phase_override TEXT CHECK (phase_override IN ('posting', 'voting', 'results', 'awaiting_start', 'announcement', 'frozen')),
    point_a INTEGER NOT NULL DEFAULT 3,
    point_b INTEGER NOT NULL DEFAULT 2,
    point_c INTEGER NOT NULL DEFAULT 1,
    limit_a INTEGER NOT NULL DEFAULT 1 CHECK (limit_a >= 0),
    limit_b INTEGER NOT NULL DEFAULT 3 CHECK (limit_b >= 0),
    limit_c INTEGER NOT NULL DEFAULT 5 CHECK (limit_c >= 0),
    comments_allowed BOOLEAN NOT NULL DEFAULT 1,
    self_vote_allowed BOOLEAN NOT NULL DEFAULT 0,
    image BLOB,
    image_format TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_topics_created_at ON topics(created_at);

CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT,
    content TEXT NOT NULL,
    origin TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posts_topic ON posts(topic_id);
CREATE INDEX IF NOT EXISTS idx_posts_topic_origin ON posts(topic_id, origin);

CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    point INTEGER NOT NULL,
    origin TEXT NOT NULL,
    name TEXT,
    url TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (topic_id, post_id, origin)
);

CREATE INDEX IF NOT EXISTS idx_votes_topic ON votes(topic_id);
CREATE INDEX IF NOT EXISTS idx_votes_post ON votes(post_id);

CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT,
    content TEXT NOT NULL,
    origin TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);

CREATE TABLE IF NOT EXISTS blocked_origins (
    origin TEXT PRIMARY KEY,
    reason TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS post_quotas (
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    origin TEXT NOT NULL,
    used INTEGER NOT NULL CHECK (used >= 0),
    PRIMARY KEY (topic_id, origin)
);

CREATE TABLE IF NOT EXISTS point_quotas (
    topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    origin TEXT NOT NULL,
    point INTEGER NOT NULL,
    used INTEGER NOT NULL CHECK (used >= 0),
    PRIMARY KEY (topic_id, origin, point)
);
`
