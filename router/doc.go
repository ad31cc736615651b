// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the bokesys API.

# Route Registration

NewRouter builds the store and contest engine and returns a configured
http.ServeMux:

	mux := router.NewRouter(conn, cfg)

NewRouterWithEngine accepts a prepared engine instead, which tests use to
pin the clock.

# Endpoints

Health:

	GET /health - pings the database

Topics (public):

	GET /topics      - Non-frozen topics with their resolved phase
	GET /topics/{id} - Topic page as seen from the caller's address

Participant actions (public, keyed on the caller's address):

	POST /topics/{id}/posts                    - Submit an answer
	POST /topics/{id}/posts/{postID}/votes     - Vote for an answer
	POST /topics/{id}/posts/{postID}/comments  - Comment on an answer

Rankings (topics with published results only):

	GET /ranking/players
	GET /ranking/posts

Operator (requires X-Admin-Key):

	GET|POST          /admin/topics
	GET|PUT|DELETE    /admin/topics/{id}
	GET               /admin/topics/{id}/votes
	GET               /admin/topics/{id}/comments
	DELETE            /admin/posts/{id}
	DELETE            /admin/votes/{id}
	DELETE            /admin/comments/{id}
	GET|POST          /admin/blocked
	DELETE            /admin/blocked/{origin}
*/
package router
