// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/bokesys/models"
	"github.com/danielhkuo/bokesys/testutil"
)

// TestConcurrentSubmissionsSameOrigin verifies the per-address post quota
// holds when one address fires many submissions at once
func TestConcurrentSubmissionsSameOrigin(t *testing.T) {
	env := setupEnv(t)
	cfg := testutil.GetTestConfig()
	handler := NewActionHandler(env.engine, cfg)
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhasePosting))

	attempts := 10
	var created, limited atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w := submitPost(handler, topic.ID, "198.51.100.50", models.SubmitPostRequest{
				Name:    "spammer",
				Content: fmt.Sprintf("answer %d", n),
			})
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusTooManyRequests:
				limited.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if int(created.Load()) != cfg.IPPostLimit {
		t.Errorf("Expected %d accepted posts, got %d", cfg.IPPostLimit, created.Load())
	}
	if int(limited.Load()) != attempts-cfg.IPPostLimit {
		t.Errorf("Expected %d rejected posts, got %d", attempts-cfg.IPPostLimit, limited.Load())
	}
}

// TestConcurrentVotesKeepScoreConsistent verifies that simultaneous votes
// from many addresses all land in the post's score
func TestConcurrentVotesKeepScoreConsistent(t *testing.T) {
	env := setupEnv(t)
	handler := NewActionHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhaseVoting))
	post := testutil.AddTestPost(t, env.store, topic.ID, "198.51.100.1", "alice")

	voters := 12
	var wg sync.WaitGroup
	var successCount atomic.Int32

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			point := []int{3, 2, 1}[n%3]
			w := castVote(handler, topic.ID, post.ID, fmt.Sprintf("203.0.113.%d", n+1), models.VoteRequest{Point: point})
			if w.Code == http.StatusCreated {
				successCount.Add(1)
				return
			}
			t.Errorf("Voter %d failed: %d - %s", n, w.Code, w.Body.String())
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != voters {
		t.Errorf("Expected %d votes, got %d", voters, successCount.Load())
	}
	score := testutil.PostScore(t, env.conn, post.ID)
	if score != 24 {
		t.Errorf("Expected score 24, got %d", score)
	}
	if sum := testutil.VoteSum(t, env.conn, post.ID); sum != score {
		t.Errorf("Score %d drifted from vote sum %d", score, sum)
	}
}

// TestConcurrentDuplicateVotes verifies one address cannot double-vote
// by racing itself
func TestConcurrentDuplicateVotes(t *testing.T) {
	env := setupEnv(t)
	handler := NewActionHandler(env.engine, testutil.GetTestConfig())
	topic := testutil.CreateTestTopic(t, env.store, models.Forced(models.PhaseVoting))
	post := testutil.AddTestPost(t, env.store, topic.ID, "198.51.100.1", "alice")

	var wg sync.WaitGroup
	var created atomic.Int32

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := castVote(handler, topic.ID, post.ID, "203.0.113.77", models.VoteRequest{Point: 1})
			if w.Code == http.StatusCreated {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 vote, got %d", created.Load())
	}
	if score := testutil.PostScore(t, env.conn, post.ID); score != 1 {
		t.Errorf("Expected score 1, got %d", score)
	}
}
