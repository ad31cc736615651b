// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the bokesys API.

# Handler Types

Each handler is a struct holding the contest engine and, where needed,
the config:

  - TopicHandler: public topic listing and topic pages
  - ActionHandler: answer submission, voting and commenting
  - RankingHandler: published player and post leaderboards
  - AdminHandler: topic management, moderation and the blocklist

	engine := contest.NewEngine(db.NewStore(conn, dialect), cfg)
	topicHandler := handlers.NewTopicHandler(engine, cfg)

Handlers decode JSON, take the caller's address from middleware.GetClientIP
(forwarding headers only with TRUST_PROXY) and hand the request to the
engine. They never touch SQL.

# Topic Lifecycle

A topic's phase comes from its schedule unless the operator forces one:

	awaiting_start → posting → voting → results

Posting accepts answers, voting accepts votes, and comments are open from
voting onward. Announcement and frozen are operator-only phases; frozen
topics are hidden from everyone without X-Admin-Key.

# Errors

Engine rejections map to a status and a machine-readable code:

	not_found            404
	phase_mismatch       409
	comments_disabled    409
	duplicate_vote       409
	origin_blocked       403
	self_vote_forbidden  403
	quota_exceeded       429
	point_limit_reached  429
	invalid_point        400
	validation_failed    400 (with reasons)

Anything else is logged with the request ID and returned as a 500.

# Privacy

Addresses are stored raw for quota checks and moderation but appear in
logs only as auth.HashIP digests.
*/
package handlers
