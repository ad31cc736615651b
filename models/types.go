package models

import (
	"time"
)

// Answer format constants
const (
	FormatPlain = "plain"
	FormatLine  = "line"
)

// Accepted topic image formats
var ImageFormats = []string{"png", "jpg", "gif"}

// Request types

// TopicRequest is the operator payload for creating or replacing a topic.
// Nil point/limit fields fall back to the configured defaults on create.
type TopicRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Format          string     `json:"format"`
	LineBefore      string     `json:"line_before"`
	LineAfter       string     `json:"line_after"`
	PostStart       *time.Time `json:"post_start"`
	PostEnd         *time.Time `json:"post_end"`
	VoteStart       *time.Time `json:"vote_start"`
	VoteEnd         *time.Time `json:"vote_end"`
	ResultAt        *time.Time `json:"result_at"`
	Override        string     `json:"override"`
	PointA          *int       `json:"point_a"`
	PointB          *int       `json:"point_b"`
	PointC          *int       `json:"point_c"`
	LimitA          *int       `json:"limit_a"`
	LimitB          *int       `json:"limit_b"`
	LimitC          *int       `json:"limit_c"`
	CommentsAllowed *bool      `json:"comments_allowed"`
	SelfVoteAllowed bool       `json:"self_vote_allowed"`
	Image           []byte     `json:"image,omitempty"` // base64 in JSON
	ImageFormat     string     `json:"image_format,omitempty"`
	// RemoveImage clears the stored image before any Image in the same
	// request is applied.
	RemoveImage     bool       `json:"remove_image,omitempty"`
}

type SubmitPostRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type VoteRequest struct {
	Point int    `json:"point"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type CommentRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type BlockRequest struct {
	Origin string `json:"origin"`
	Reason string `json:"reason"`
}

// Response types

type CreateTopicResponse struct {
	TopicID string `json:"topic_id"`
}

type SubmitPostResponse struct {
	PostID  string `json:"post_id"`
	Message string `json:"message"`
}

type VoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type CommentResponse struct {
	CommentID string `json:"comment_id"`
	Message   string `json:"message"`
}

type DeleteVoteResponse struct {
	VoteID string `json:"vote_id"`
	PostID string `json:"post_id"`
	Point  int    `json:"point"`
}

// TopicSummary is one row of the public topic listing.
type TopicSummary struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Phase     Phase      `json:"phase"`
	PostStart *time.Time `json:"post_start,omitempty"`
	PostEnd   *time.Time `json:"post_end,omitempty"`
	ResultAt  *time.Time `json:"result_at,omitempty"`
	HasImage  bool       `json:"has_image"`
	CreatedAt time.Time  `json:"created_at"`
}

// TopicView is the full public topic page.
type TopicView struct {
	Topic            Topic      `json:"topic"`
	Phase            Phase      `json:"phase"`
	NextTransition   *time.Time `json:"next_transition,omitempty"`
	NextTransitionIn string     `json:"next_transition_in,omitempty"`
	Posts            []PostView `json:"posts"`
	Viewer           ViewerInfo `json:"viewer"`
}

// ViewerInfo tells the caller what its own origin has done in the topic.
type ViewerInfo struct {
	Blocked        bool     `json:"blocked"`
	PostIDs        []string `json:"post_ids"`
	VotedPostIDs   []string `json:"voted_post_ids"`
	RemainingPosts int      `json:"remaining_posts"`
}

type PostView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content"`
	Rendered  string    `json:"rendered"`
	Score     *int      `json:"score,omitempty"` // hidden until results are published
	CreatedAt time.Time `json:"created_at"`
	Comments  []Comment `json:"comments,omitempty"`
}

// Domain types

type Topic struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Format          string     `json:"format"`
	LineBefore      string     `json:"line_before,omitempty"`
	LineAfter       string     `json:"line_after,omitempty"`
	PostStart       *time.Time `json:"post_start,omitempty"`
	PostEnd         *time.Time `json:"post_end,omitempty"`
	VoteStart       *time.Time `json:"vote_start,omitempty"`
	VoteEnd         *time.Time `json:"vote_end,omitempty"`
	ResultAt        *time.Time `json:"result_at,omitempty"`
	Override        Override   `json:"override"`
	PointA          int        `json:"point_a"`
	PointB          int        `json:"point_b"`
	PointC          int        `json:"point_c"`
	LimitA          int        `json:"limit_a"`
	LimitB          int        `json:"limit_b"`
	LimitC          int        `json:"limit_c"`
	CommentsAllowed bool       `json:"comments_allowed"`
	SelfVoteAllowed bool       `json:"self_vote_allowed"`
	Image           []byte     `json:"image,omitempty"`
	ImageFormat     string     `json:"image_format,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Points returns the permitted point values, highest first.
func (t Topic) Points() [3]int {
	return [3]int{t.PointA, t.PointB, t.PointC}
}

// PointLimit returns the per-origin usage ceiling for a point value.
// ok is false when point is not one of the topic's tiers.
func (t Topic) PointLimit(point int) (limit int, ok bool) {
	switch point {
	case t.PointA:
		return t.LimitA, true
	case t.PointB:
		return t.LimitB, true
	case t.PointC:
		return t.LimitC, true
	}
	return 0, false
}

// Render splices an answer into the topic's line template.
func (t Topic) Render(content string) string {
	if t.Format != FormatLine {
		return content
	}
	return t.LineBefore + content + t.LineAfter
}

type Post struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content"`
	Origin    string    `json:"-"` // Never expose in JSON
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	PostID    string    `json:"post_id"`
	Point     int       `json:"point"`
	Origin    string    `json:"origin"` // admin listings only
	Name      string    `json:"name,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	PostID    string    `json:"post_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content"`
	Origin    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type BlockedOrigin struct {
	Origin    string    `json:"origin"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Ranking types

type PlayerRank struct {
	Rank         int    `json:"rank"` // 1-indexed, ties share a rank
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	TotalScore   int    `json:"total_score"`
	TotalDisplay string `json:"total_display"`
	TopicCount   int    `json:"topic_count"`
	PostCount    int    `json:"post_count"`
}

type PostRank struct {
	Rank       int       `json:"rank"`
	PostID     string    `json:"post_id"`
	TopicID    string    `json:"topic_id"`
	TopicTitle string    `json:"topic_title"`
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	Content    string    `json:"content"`
	Rendered   string    `json:"rendered"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Code    string   `json:"code,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}
