// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/bokesys/auth"
	"github.com/danielhkuo/bokesys/cliparse"
	"github.com/danielhkuo/bokesys/db"
	"github.com/danielhkuo/bokesys/models"
)

// Store is the persistence the engine needs. *db.Store implements it.
type Store interface {
	CreateTopic(ctx context.Context, t models.Topic) error
	UpdateTopic(ctx context.Context, t models.Topic) error
	GetTopic(ctx context.Context, id string) (models.Topic, error)
	ListTopics(ctx context.Context) ([]models.Topic, error)
	DeleteTopic(ctx context.Context, id string) error

	InsertPost(ctx context.Context, p models.Post, quota int) error
	GetPost(ctx context.Context, id string) (models.Post, error)
	ListPosts(ctx context.Context, topicID string, byScore bool) ([]models.Post, error)
	CountPostsByOrigin(ctx context.Context, topicID, origin string) (int, error)
	DeletePost(ctx context.Context, id string) (models.Post, error)

	HasVoted(ctx context.Context, topicID, postID, origin string) (bool, error)
	CountTierVotes(ctx context.Context, topicID, origin string, point int) (int, error)
	InsertVote(ctx context.Context, v models.Vote, pointLimit int) error
	DeleteVote(ctx context.Context, id string) (models.Vote, error)
	ListVotes(ctx context.Context, topicID string) ([]models.Vote, error)
	VotedPostIDs(ctx context.Context, topicID, origin string) ([]string, error)

	InsertComment(ctx context.Context, c models.Comment) error
	ListComments(ctx context.Context, topicID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	IsBlocked(ctx context.Context, origin string) (bool, error)
	Block(ctx context.Context, origin, reason string, at time.Time) error
	Unblock(ctx context.Context, origin string) error
	ListBlocked(ctx context.Context) ([]models.BlockedOrigin, error)

	PlayerTotals(ctx context.Context, topicIDs []string, limit int) ([]db.PlayerTotal, error)
	TopPosts(ctx context.Context, topicIDs []string, limit int) ([]db.PostEntry, error)
}

// Engine runs the guarded contest actions against a Store.
// It holds no mutable state of its own; every call resolves phases afresh.
type Engine struct {
	store Store
	cfg   cliparse.Config

	// Now is the clock used for phase resolution and timestamps.
	Now func() time.Time
}

func NewEngine(store Store, cfg cliparse.Config) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		Now:   time.Now,
	}
}

func (e *Engine) now() time.Time {
	return e.Now().UTC()
}

// topic loads a topic and maps a missing row to ErrNotFound.
func (e *Engine) topic(ctx context.Context, id string) (models.Topic, error) {
	t, err := e.store.GetTopic(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.Topic{}, ErrNotFound
	}
	if err != nil {
		return models.Topic{}, err
	}
	return t, nil
}

// postIn loads a post and checks it belongs to topicID.
func (e *Engine) postIn(ctx context.Context, topicID, postID string) (models.Post, error) {
	p, err := e.store.GetPost(ctx, postID)
	if errors.Is(err, db.ErrNotFound) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	if p.TopicID != topicID {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (e *Engine) checkNotBlocked(ctx context.Context, origin string) error {
	blocked, err := e.store.IsBlocked(ctx, origin)
	if err != nil {
		return err
	}
	if blocked {
		return ErrOriginBlocked
	}
	return nil
}

func newID() (string, error) {
	id, err := auth.GenerateID(12)
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id, nil
}

// Phase resolves a topic's current phase by ID.
func (e *Engine) Phase(ctx context.Context, topicID string) (models.Phase, error) {
	t, err := e.topic(ctx, topicID)
	if err != nil {
		return 0, err
	}
	return Resolve(t, e.now()), nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
