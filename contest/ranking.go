// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/bokesys/models"
)

// publishedTopics returns the IDs of topics whose results are out, keyed
// to their topic for rendering.
func (e *Engine) publishedTopics(ctx context.Context) ([]string, map[string]models.Topic, error) {
	topics, err := e.store.ListTopics(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := e.now()
	var ids []string
	byID := map[string]models.Topic{}
	for _, t := range topics {
		if Resolve(t, now) != models.PhaseResults {
			continue
		}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	return ids, byID, nil
}

// competitionRanks assigns 1-based ranks where equal scores share a rank
// and the next distinct score skips ahead (1, 1, 3).
func competitionRanks(scores []int) []int {
	ranks := make([]int, len(scores))
	for i, s := range scores {
		if i > 0 && s == scores[i-1] {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}

// PlayerRanking totals scores by display name across every topic with
// published results.
func (e *Engine) PlayerRanking(ctx context.Context) ([]models.PlayerRank, error) {
	ids, _, err := e.publishedTopics(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := e.store.PlayerTotals(ctx, ids, e.cfg.RankingPlayer)
	if err != nil {
		return nil, err
	}

	scores := make([]int, len(totals))
	for i, t := range totals {
		scores[i] = t.TotalScore
	}
	ranks := competitionRanks(scores)

	out := make([]models.PlayerRank, len(totals))
	for i, t := range totals {
		out[i] = models.PlayerRank{
			Rank:         ranks[i],
			Name:         t.Name,
			URL:          t.URL,
			TotalScore:   t.TotalScore,
			TotalDisplay: humanize.Comma(int64(t.TotalScore)),
			TopicCount:   t.TopicCount,
			PostCount:    t.PostCount,
		}
	}
	return out, nil
}

// PostRanking lists the best individual posts across every topic with
// published results.
func (e *Engine) PostRanking(ctx context.Context) ([]models.PostRank, error) {
	ids, topics, err := e.publishedTopics(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := e.store.TopPosts(ctx, ids, e.cfg.RankingPost)
	if err != nil {
		return nil, err
	}

	scores := make([]int, len(entries))
	for i, en := range entries {
		scores[i] = en.Post.Score
	}
	ranks := competitionRanks(scores)

	out := make([]models.PostRank, len(entries))
	for i, en := range entries {
		out[i] = models.PostRank{
			Rank:       ranks[i],
			PostID:     en.Post.ID,
			TopicID:    en.Post.TopicID,
			TopicTitle: en.TopicTitle,
			Name:       en.Post.Name,
			URL:        en.Post.URL,
			Content:    en.Post.Content,
			Rendered:   topics[en.Post.TopicID].Render(en.Post.Content),
			Score:      en.Post.Score,
			CreatedAt:  en.Post.CreatedAt,
		}
	}
	return out, nil
}
