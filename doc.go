// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the bokesys API server.

Bokesys runs timed answer contests. The operator posts a topic (a prompt,
optionally with an image or a fill-in-the-line template); players submit
answers while posting is open, everyone awards tiered points while voting
is open, and scores are revealed once results are published. Published
topics feed cumulative player and post leaderboards.

# Starting the Server

With no configuration beyond the operator key the server uses SQLite:

	ADMIN_KEY=secret go run .

Or against PostgreSQL:

	go run . -t pgx -d "postgres://..." -p 3318

# Configuration

Flags win over the environment, which wins over defaults. A .env file is
loaded first when present (-env or ENV_FILE to choose another).

Required settings:

  - ADMIN_KEY (--admin-key): operator key for /admin routes

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - DATABASE_URL (-d): connection string, or file path for sqlite
  - LOG_LEVEL (--log-level): debug, info, warn or error
  - LOG_SALT (--log-salt): salt for hashing addresses in logs
  - TRUST_PROXY (--trust-proxy): take the client address from
    X-Forwarded-For / X-Real-IP; enable only behind a proxy that sets them
  - NAME_LIMIT, POST_BODY_LIMIT, COMMENT_BODY_LIMIT: input lengths
  - IP_POST_LIMIT: answers per address per topic
  - RANKING_PLAYER, RANKING_POST: leaderboard sizes
  - DEFAULT_POINT_A..C, DEFAULT_LIMIT_A..C: defaults for new topics

Logs are text on a terminal and JSON otherwise.

# Architecture

  - contest: phase resolution, guards, views and rankings
  - db: schema and the transactional store
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, request IDs, logging, JSON helpers, admin check
  - models: request, response and domain types
  - auth: ID generation, operator key check, address hashing
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
