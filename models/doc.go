// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - TopicRequest: operator topic create/replace payload
  - SubmitPostRequest: name, url, content
  - VoteRequest: point plus optional name/url snapshot
  - CommentRequest: name, url, content
  - BlockRequest: origin, reason

# Response Types

  - CreateTopicResponse: topic_id
  - SubmitPostResponse, VoteResponse, CommentResponse: created IDs
  - TopicSummary, TopicView, PostView, ViewerInfo: public topic pages
  - PlayerRank, PostRank: published leaderboards
  - ErrorResponse: error, message, code, reasons

# Domain Types

  - Topic: one contest round with its schedule, points and flags
  - Post: a participant's answer (the score is a denormalized vote sum)
  - Vote: a point award from one origin to one post
  - Comment: free text attached to a post
  - BlockedOrigin: an address barred from all writes

# Phases

A topic is always in one of six phases:

	PhasePosting       = "posting"
	PhaseVoting        = "voting"
	PhaseResults       = "results"
	PhaseAwaitingStart = "awaiting_start"
	PhaseAnnouncement  = "announcement"
	PhaseFrozen        = "frozen"

The operator override is a tagged value, never a phase code:

	models.Auto()                    // derive the phase from the schedule
	models.Forced(models.PhaseFrozen) // pin the topic to one phase

Both marshal to their names in JSON ("auto", "frozen", ...).
*/
package models
