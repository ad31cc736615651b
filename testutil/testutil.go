// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/bokesys/auth"
	"github.com/danielhkuo/bokesys/cliparse"
	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/models"
)

// TestAdminKey is the operator key used by GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB opens a fresh SQLite database under t.TempDir() with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a Store over a fresh test database
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t), db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.DBSQLite,
		AdminKey:         TestAdminKey,
		LogSalt:          "test-log-salt",
		LogLevel:         "info",
		NameLimit:        20,
		PostBodyLimit:    200,
		CommentBodyLimit: 200,
		IPPostLimit:      3,
		RankingPlayer:    50,
		RankingPost:      20,
		DefaultPointA:    3,
		DefaultPointB:    2,
		DefaultPointC:    1,
		DefaultLimitA:    1,
		DefaultLimitB:    3,
		DefaultLimitC:    5,
	}
}

// Schedule builds the canonical five-instant schedule starting at start:
// posting for one hour, voting for the next, results from start+2h.
func Schedule(start time.Time) (postStart, postEnd, voteStart, voteEnd, resultAt time.Time) {
	return start, start.Add(time.Hour), start.Add(time.Hour), start.Add(2 * time.Hour), start.Add(2 * time.Hour)
}

// CreateTestTopic inserts a topic pinned to the given override with
// 3/2/1 points, 1/3/5 tier limits and comments enabled. Use
// models.Auto() together with a schedule set by mutate for time-driven tests.
func CreateTestTopic(t *testing.T, store *db.Store, override models.Override, mutate ...func(*models.Topic)) models.Topic {
	t.Helper()

	id, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate topic ID: %v", err)
	}
	now := time.Now().UTC()
	topic := models.Topic{
		ID:              id,
		Title:           "Test Topic",
		Description:     "A test topic",
		Format:          models.FormatPlain,
		Override:        override,
		PointA:          3,
		PointB:          2,
		PointC:          1,
		LimitA:          1,
		LimitB:          3,
		LimitC:          5,
		CommentsAllowed: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, m := range mutate {
		m(&topic)
	}

	if err := store.CreateTopic(context.Background(), topic); err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}
	return topic
}

// AddTestPost inserts a post directly, bypassing the submission checks
func AddTestPost(t *testing.T, store *db.Store, topicID, origin, name string) models.Post {
	t.Helper()

	id, _ := auth.GenerateID(8)
	post := models.Post{
		ID:        id,
		TopicID:   topicID,
		Name:      name,
		Content:   "answer from " + name,
		Origin:    origin,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.InsertPost(context.Background(), post, 1000); err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// AddTestVote inserts a vote directly, bypassing the voting checks
func AddTestVote(t *testing.T, store *db.Store, topicID, postID, origin string, point int) models.Vote {
	t.Helper()

	id, _ := auth.GenerateID(8)
	vote := models.Vote{
		ID:        id,
		TopicID:   topicID,
		PostID:    postID,
		Point:     point,
		Origin:    origin,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.InsertVote(context.Background(), vote, 0); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return vote
}

// PostScore reads a post's stored score
func PostScore(t *testing.T, conn *sql.DB, postID string) int {
	t.Helper()

	var score int
	if err := conn.QueryRow(`SELECT score FROM posts WHERE id = ?`, postID).Scan(&score); err != nil {
		t.Fatalf("Failed to read score: %v", err)
	}
	return score
}

// VoteSum sums the points of a post's votes
func VoteSum(t *testing.T, conn *sql.DB, postID string) int {
	t.Helper()

	var sum int
	if err := conn.QueryRow(`SELECT COALESCE(SUM(point), 0) FROM votes WHERE post_id = ?`, postID).Scan(&sum); err != nil {
		t.Fatalf("Failed to sum votes: %v", err)
	}
	return sum
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AdminHeaders returns the headers an operator request carries
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
