// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the durable store: connection opening, schema creation and
every query the contest engine runs.

# Drivers

Open accepts three database types:

  - sqlite: modernc.org/sqlite, a file path (created if missing); foreign
    keys, busy timeout and WAL are always enabled and the pool holds a single
    connection
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

Queries are written once with ? placeholders and rebound to $n for the
PostgreSQL drivers.

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, db.DialectFor(cfg.DatabaseType)); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn, db.DialectFor(cfg.DatabaseType))

# Tables

	topics 1──* posts 1──* votes
	              posts 1──* comments
	topics 1──* post_quotas   (topic_id, origin) → used
	topics 1──* point_quotas  (topic_id, origin, point) → used
	blocked_origins

All foreign keys use ON DELETE CASCADE. votes carries UNIQUE(topic_id,
post_id, origin).

# Atomic write paths

InsertPost, InsertVote, DeleteVote and DeletePost each run in one
transaction. Per-origin caps are enforced by a conditional upsert on the
quota tables:

	INSERT ... ON CONFLICT (...) DO UPDATE SET used = used + 1 WHERE used < limit

zero affected rows means the cap is reached. posts.score is only ever
changed by an increment or decrement in the same transaction as the vote
row it accounts for.

# Errors

Store methods return ErrNotFound, ErrDuplicate, ErrQuotaFull and
ErrPointLimit for the conditions callers act on; everything else is wrapped
infrastructure failure. IsUniqueViolation and IsForeignKeyViolation classify
driver errors from all three drivers.
*/
package db
