// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/danielhkuo/bokesys/contest"
	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/testutil"
)

// testEnv bundles an engine over a fresh database with a movable clock
type testEnv struct {
	conn   *sql.DB
	store  *db.Store
	engine *contest.Engine
	clock  time.Time
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn, db.DialectSQLite)
	env := &testEnv{
		conn:   conn,
		store:  store,
		engine: contest.NewEngine(store, testutil.GetTestConfig()),
		clock:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	env.engine.Now = func() time.Time { return env.clock }
	return env
}

// fromOrigin makes a request arrive from addr the way the server sees
// a direct peer
func fromOrigin(r *http.Request, addr string) *http.Request {
	r.RemoteAddr = addr + ":40000"
	return r
}

// withPath sets path values the way the router would
func withPath(r *http.Request, kv ...string) *http.Request {
	for i := 0; i+1 < len(kv); i += 2 {
		r.SetPathValue(kv[i], kv[i+1])
	}
	return r
}

func commentInput(topicID, postID string) contest.CommentInput {
	return contest.CommentInput{
		TopicID: topicID,
		PostID:  postID,
		Origin:  "198.51.100.4",
		Name:    "eve",
		Content: "nice one",
	}
}
