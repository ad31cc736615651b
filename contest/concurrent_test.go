// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/bokesys/models"
	"github.com/danielhkuo/bokesys/testutil"
)

// TestConcurrentVotesKeepScore verifies that simultaneous votes from many
// origins never lose a score increment
func TestConcurrentVotesKeepScore(t *testing.T) {
	engine, store, conn := setupEngine(t)
	topic := testutil.CreateTestTopic(t, store, models.Forced(models.PhaseVoting))
	post := testutil.AddTestPost(t, store, topic.ID, "author", "alice")

	numVoters := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			point := []int{3, 2, 1}[idx%3]
			_, err := engine.Vote(context.Background(), VoteInput{
				TopicID: topic.ID,
				PostID:  post.ID,
				Origin:  fmt.Sprintf("10.1.0.%d", idx),
				Point:   point,
			})
			if err == nil {
				successCount.Add(1)
			} else {
				t.Errorf("voter %d: %v", idx, err)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}
	score, sum := testutil.PostScore(t, conn, post.ID), testutil.VoteSum(t, conn, post.ID)
	if score != sum {
		t.Errorf("score %d does not match vote sum %d", score, sum)
	}
	// 7 threes, 7 twos, 6 ones
	if score != 7*3+7*2+6*1 {
		t.Errorf("score = %d, want %d", score, 7*3+7*2+6*1)
	}
}

// TestConcurrentDuplicateVotes verifies that only one of many simultaneous
// votes from the same origin on the same post is counted
func TestConcurrentDuplicateVotes(t *testing.T) {
	engine, store, conn := setupEngine(t)
	topic := testutil.CreateTestTopic(t, store, models.Forced(models.PhaseVoting))
	post := testutil.AddTestPost(t, store, topic.ID, "author", "alice")

	numAttempts := 10
	var successCount, duplicateCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Vote(context.Background(), VoteInput{
				TopicID: topic.ID, PostID: post.ID, Origin: "10.2.0.1", Point: 1,
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrDuplicateVote):
				duplicateCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 counted vote, got %d", successCount.Load())
	}
	if int(duplicateCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d duplicates, got %d", numAttempts-1, duplicateCount.Load())
	}
	if score := testutil.PostScore(t, conn, post.ID); score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
}

// TestConcurrentSubmissionsRespectQuota verifies that a burst of submissions
// from one origin never exceeds the per-topic quota
func TestConcurrentSubmissionsRespectQuota(t *testing.T) {
	engine, store, conn := setupEngine(t)
	topic := testutil.CreateTestTopic(t, store, models.Forced(models.PhasePosting))

	numAttempts := 10
	var successCount, quotaCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Submit(context.Background(), submitInput(topic.ID, "10.3.0.1", "alice"))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrQuotaExceeded):
				quotaCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	limit := testutil.GetTestConfig().IPPostLimit
	if int(successCount.Load()) != limit {
		t.Errorf("Expected %d accepted posts, got %d", limit, successCount.Load())
	}
	if int(quotaCount.Load()) != numAttempts-limit {
		t.Errorf("Expected %d quota rejections, got %d", numAttempts-limit, quotaCount.Load())
	}

	var stored int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM posts WHERE topic_id = ?`, topic.ID).Scan(&stored); err != nil {
		t.Fatalf("Failed to count posts: %v", err)
	}
	if stored != limit {
		t.Errorf("Expected %d posts in database, got %d", limit, stored)
	}
}

// TestConcurrentTierLimit verifies that a tier ceiling holds under a burst
// of votes from one origin across different posts
func TestConcurrentTierLimit(t *testing.T) {
	engine, store, _ := setupEngine(t)
	topic := testutil.CreateTestTopic(t, store, models.Forced(models.PhaseVoting))

	numPosts := 8
	posts := make([]models.Post, numPosts)
	for i := range posts {
		posts[i] = testutil.AddTestPost(t, store, topic.ID, "author", "alice")
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for _, p := range posts {
		wg.Add(1)
		go func(postID string) {
			defer wg.Done()
			_, err := engine.Vote(context.Background(), VoteInput{
				TopicID: topic.ID, PostID: postID, Origin: "10.4.0.1", Point: 2,
			})
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, ErrPointLimitReached) {
				t.Errorf("unexpected error: %v", err)
			}
		}(p.ID)
	}
	wg.Wait()

	if got := int(successCount.Load()); got != topic.LimitB {
		t.Errorf("Expected %d B votes, got %d", topic.LimitB, got)
	}
}
