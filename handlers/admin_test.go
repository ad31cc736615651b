// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/models"
	"github.com/danielhkuo/bokesys/testutil"
)

func TestCreateTopic(t *testing.T) {
	env := setupEnv(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(env.engine, cfg)

	ps, pe, vs, ve, ra := testutil.Schedule(env.clock)
	req := testutil.MakeRequest("POST", "/admin/topics", models.TopicRequest{
		Title:       "  Caption this  ",
		Format:      models.FormatLine,
		LineBefore:  "The cat said: ",
		PostStart:   &ps,
		PostEnd:     &pe,
		VoteStart:   &vs,
		VoteEnd:     &ve,
		ResultAt:    &ra,
		Image:       []byte{0x89, 'P', 'N', 'G'},
		ImageFormat: "png",
	}, testutil.AdminHeaders())
	w := httptest.NewRecorder()
	handler.CreateTopic(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateTopicResponse
	testutil.AssertJSON(t, w, &resp)

	topic, err := env.store.GetTopic(context.Background(), resp.TopicID)
	if err != nil {
		t.Fatalf("Failed to load topic: %v", err)
	}
	if topic.Title != "Caption this" {
		t.Errorf("Expected trimmed title, got %q", topic.Title)
	}
	if topic.PointA != cfg.DefaultPointA || topic.LimitC != cfg.DefaultLimitC {
		t.Errorf("Expected configured defaults, got points %v limit_c %d", topic.Points(), topic.LimitC)
	}
	if !topic.CommentsAllowed {
		t.Error("Expected comments enabled by default")
	}
	if !topic.Override.IsAuto() {
		t.Errorf("Expected auto override, got %s", topic.Override)
	}
	if string(topic.Image) != "\x89PNG" {
		t.Errorf("Expected stored image bytes, got %q", topic.Image)
	}
}

func TestCreateTopicValidation(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())

	late := env.clock
	early := env.clock.Add(-time.Hour)
	one, five := 1, 5

	tests := []struct {
		name string
		req  models.TopicRequest
	}{
		{"missing title", models.TopicRequest{}},
		{"unknown format", models.TopicRequest{Title: "t", Format: "rhyme"}},
		{"schedule out of order", models.TopicRequest{Title: "t", PostStart: &late, PostEnd: &early}},
		{"points not descending", models.TopicRequest{Title: "t", PointA: &one, PointB: &five}},
		{"unknown override", models.TopicRequest{Title: "t", Override: "sleeping"}},
		{"image format without image", models.TopicRequest{Title: "t", ImageFormat: "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/topics", tt.req, testutil.AdminHeaders())
			w := httptest.NewRecorder()
			handler.CreateTopic(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			resp := assertCode(t, w, "validation_failed")
			if len(resp.Reasons) == 0 {
				t.Error("Expected at least one reason")
			}
		})
	}
}

func TestUpdateTopic(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhasePosting), func(tp *models.Topic) {
		tp.Image = []byte("gif-bytes")
		tp.ImageFormat = "gif"
	})

	req := withPath(testutil.MakeRequest("PUT", "/admin/topics/"+topic.ID, models.TopicRequest{
		Title:    "Renamed",
		Override: "frozen",
	}, testutil.AdminHeaders()), "id", topic.ID)
	w := httptest.NewRecorder()
	handler.UpdateTopic(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	stored, err := env.store.GetTopic(context.Background(), topic.ID)
	if err != nil {
		t.Fatalf("Failed to load topic: %v", err)
	}
	if stored.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got %q", stored.Title)
	}
	if p, ok := stored.Override.Forced(); !ok || p != models.PhaseFrozen {
		t.Errorf("Expected forced frozen, got %s", stored.Override)
	}
	if stored.PointA != topic.PointA || stored.LimitB != topic.LimitB {
		t.Error("Expected omitted points and limits to be kept")
	}
	if string(stored.Image) != "gif-bytes" || stored.ImageFormat != "gif" {
		t.Error("Expected omitted image to be kept")
	}
}

func TestUpdateTopicRemoveImage(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhasePosting), func(tp *models.Topic) {
		tp.Image = []byte("gif-bytes")
		tp.ImageFormat = "gif"
	})

	req := withPath(testutil.MakeRequest("PUT", "/admin/topics/"+topic.ID, models.TopicRequest{
		Title:       topic.Title,
		RemoveImage: true,
	}, testutil.AdminHeaders()), "id", topic.ID)
	w := httptest.NewRecorder()
	handler.UpdateTopic(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	stored, err := env.store.GetTopic(context.Background(), topic.ID)
	if err != nil {
		t.Fatalf("Failed to load topic: %v", err)
	}
	if stored.Image != nil || stored.ImageFormat != "" {
		t.Errorf("Expected image removed, got %q %q", stored.Image, stored.ImageFormat)
	}
}

func TestUpdateTopicNotFound(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())

	req := withPath(testutil.MakeRequest("PUT", "/admin/topics/missing", models.TopicRequest{Title: "x"}, testutil.AdminHeaders()), "id", "missing")
	w := httptest.NewRecorder()
	handler.UpdateTopic(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetAndDeleteTopic(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhaseFrozen))
	testutil.AddTestPost(t, env.store, topic.ID, "198.51.100.1", "alice")

	req := withPath(testutil.MakeRequest("GET", "/admin/topics/"+topic.ID, nil, testutil.AdminHeaders()), "id", topic.ID)
	w := httptest.NewRecorder()
	handler.GetTopic(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var got models.Topic
	testutil.AssertJSON(t, w, &got)
	if got.ID != topic.ID {
		t.Errorf("Expected topic %s, got %s", topic.ID, got.ID)
	}

	req = withPath(testutil.MakeRequest("DELETE", "/admin/topics/"+topic.ID, nil, testutil.AdminHeaders()), "id", topic.ID)
	w = httptest.NewRecorder()
	handler.DeleteTopic(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if _, err := env.store.GetTopic(context.Background(), topic.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected topic gone, got %v", err)
	}

	var posts int
	env.conn.QueryRow(`SELECT COUNT(*) FROM posts WHERE topic_id = ?`, topic.ID).Scan(&posts)
	if posts != 0 {
		t.Errorf("Expected posts removed with topic, got %d", posts)
	}

	w = httptest.NewRecorder()
	handler.DeleteTopic(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAdminListTopicsIncludesFrozen(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())
	testutil.CreateTestTopic(t, env.store, models.Forced(models.PhasePosting))
	testutil.CreateTestTopic(t, env.store, models.Forced(models.PhaseFrozen))

	w := httptest.NewRecorder()
	handler.ListTopics(w, testutil.MakeRequest("GET", "/admin/topics", nil, testutil.AdminHeaders()))

	testutil.AssertStatus(t, w, http.StatusOK)

	var topics []models.TopicSummary
	testutil.AssertJSON(t, w, &topics)
	if len(topics) != 2 {
		t.Errorf("Expected 2 topics, got %d", len(topics))
	}
}

func TestModeration(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhaseVoting))
	post := testutil.AddTestPost(t, env.store, topic.ID, "198.51.100.1", "alice")
	keep := testutil.AddTestVote(t, env.store, topic.ID, post.ID, "198.51.100.2", 2)
	drop := testutil.AddTestVote(t, env.store, topic.ID, post.ID, "198.51.100.3", 3)

	// Votes are listed with their origins
	req := withPath(testutil.MakeRequest("GET", "/admin/topics/"+topic.ID+"/votes", nil, testutil.AdminHeaders()), "id", topic.ID)
	w := httptest.NewRecorder()
	handler.ListVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var votes []models.Vote
	testutil.AssertJSON(t, w, &votes)
	if len(votes) != 2 {
		t.Fatalf("Expected 2 votes, got %d", len(votes))
	}
	for _, v := range votes {
		if v.Origin == "" {
			t.Error("Expected origin on admin vote listing")
		}
	}

	// Deleting a vote subtracts its point
	req = withPath(testutil.MakeRequest("DELETE", "/admin/votes/"+drop.ID, nil, testutil.AdminHeaders()), "id", drop.ID)
	w = httptest.NewRecorder()
	handler.DeleteVote(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var deleted models.DeleteVoteResponse
	testutil.AssertJSON(t, w, &deleted)
	if deleted.Point != 3 || deleted.PostID != post.ID {
		t.Errorf("Unexpected delete response %+v", deleted)
	}
	if score := testutil.PostScore(t, env.conn, post.ID); score != keep.Point {
		t.Errorf("Expected score %d, got %d", keep.Point, score)
	}

	// Deleting it again finds nothing
	w = httptest.NewRecorder()
	handler.DeleteVote(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Comments can be removed one by one
	commentID, err := env.engine.Comment(context.Background(), commentInput(topic.ID, post.ID))
	if err != nil {
		t.Fatalf("Failed to add comment: %v", err)
	}
	req = withPath(testutil.MakeRequest("DELETE", "/admin/comments/"+commentID, nil, testutil.AdminHeaders()), "id", commentID)
	w = httptest.NewRecorder()
	handler.DeleteComment(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	req = withPath(testutil.MakeRequest("GET", "/admin/topics/"+topic.ID+"/comments", nil, testutil.AdminHeaders()), "id", topic.ID)
	w = httptest.NewRecorder()
	handler.ListComments(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var comments []models.Comment
	testutil.AssertJSON(t, w, &comments)
	if len(comments) != 0 {
		t.Errorf("Expected no comments, got %d", len(comments))
	}

	// Deleting the post takes the remaining vote with it
	req = withPath(testutil.MakeRequest("DELETE", "/admin/posts/"+post.ID, nil, testutil.AdminHeaders()), "id", post.ID)
	w = httptest.NewRecorder()
	handler.DeletePost(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if sum := testutil.VoteSum(t, env.conn, post.ID); sum != 0 {
		t.Errorf("Expected votes removed with post, got sum %d", sum)
	}
}

func TestModerationUnknownTopic(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())

	req := withPath(testutil.MakeRequest("GET", "/admin/topics/missing/votes", nil, testutil.AdminHeaders()), "id", "missing")
	w := httptest.NewRecorder()
	handler.ListVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	req = withPath(testutil.MakeRequest("DELETE", "/admin/posts/missing", nil, testutil.AdminHeaders()), "id", "missing")
	w = httptest.NewRecorder()
	handler.DeletePost(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestBlocklist(t *testing.T) {
	env := setupEnv(t)
	handler := NewAdminHandler(env.engine, testutil.GetTestConfig())

	block := func(origin string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/admin/blocked", models.BlockRequest{Origin: origin, Reason: "spam"}, testutil.AdminHeaders())
		w := httptest.NewRecorder()
		handler.Block(w, req)
		return w
	}

	testutil.AssertStatus(t, block("203.0.113.5"), http.StatusNoContent)
	testutil.AssertStatus(t, block("203.0.113.5"), http.StatusNoContent)
	testutil.AssertStatus(t, block("  "), http.StatusBadRequest)

	w := httptest.NewRecorder()
	handler.ListBlocked(w, testutil.MakeRequest("GET", "/admin/blocked", nil, testutil.AdminHeaders()))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.BlockedOrigin
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].Origin != "203.0.113.5" {
		t.Fatalf("Expected one blocked origin, got %+v", list)
	}

	req := withPath(testutil.MakeRequest("DELETE", "/admin/blocked/203.0.113.5", nil, testutil.AdminHeaders()), "origin", "203.0.113.5")
	w = httptest.NewRecorder()
	handler.Unblock(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = httptest.NewRecorder()
	handler.Unblock(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
