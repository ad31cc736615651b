// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse builds the server's immutable configuration snapshot.

# Sources

Values come from CLI flags, then environment variables, then defaults.
An optional .env file (-env or ENV_FILE, default ".env") is loaded into the
environment first; variables already set are never overridden and a missing
file is not an error.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

Server:

  - PORT (-p): listen port (default 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default sqlite)
  - DATABASE_URL (-d): DSN, or file path for sqlite (default data/bokesys.sqlite)
  - ADMIN_KEY (--admin-key): operator key, required
  - LOG_SALT (--log-salt): origin hashing salt (default: the admin key)
  - LOG_LEVEL (--log-level): debug, info, warn or error

Guards and rankings:

  - NAME_LIMIT (20), POST_BODY_LIMIT (200), COMMENT_BODY_LIMIT (200)
  - IP_POST_LIMIT (3): answers per origin per topic
  - RANKING_PLAYER (50), RANKING_POST (20)

Topic defaults:

  - DEFAULT_POINT_A/B/C (3/2/1), must be strictly decreasing
  - DEFAULT_LIMIT_A/B/C (1/3/5), 0 means unlimited
*/
package cliparse
