package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coachhub/database"
	communityRepo "coachhub/database/repository/community"
	"coachhub/metrics"
	"coachhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalid      = errors.New("invalid input")
	ErrNotFound     = errors.New("post not found")
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
	maxBodyLength    = 2000
)

type CommunityService interface {
	ListFeed(ctx context.Context, caller models.Caller, limit int) ([]models.Post, error)
	CreatePost(ctx context.Context, caller models.Caller, body string) (*models.Post, error)
	LikePost(ctx context.Context, caller models.Caller, postID string) (models.PostCounters, error)
	UnlikePost(ctx context.Context, caller models.Caller, postID string) (models.PostCounters, error)
	AddComment(ctx context.Context, caller models.Caller, postID, body string) (models.PostCounters, error)
}

type DefaultCommunityService struct {
	Repo   communityRepo.CommunityRepository
	Cache  *CounterCache
	Logger *zap.Logger
}

func (s *DefaultCommunityService) ListFeed(ctx context.Context, caller models.Caller, limit int) ([]models.Post, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	posts, err := s.Repo.ListRecent(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return s.Cache.Overlay(posts), nil
}

func (s *DefaultCommunityService) CreatePost(ctx context.Context, caller models.Caller, body string) (*models.Post, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	body, err := cleanBody(body)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	post, err := s.Repo.CreatePost(ctx, &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  caller.UserID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.apply(post)
	return post, nil
}

func (s *DefaultCommunityService) LikePost(ctx context.Context, caller models.Caller, postID string) (models.PostCounters, error) {
	if !caller.Authenticated() {
		return models.PostCounters{}, ErrUnauthorized
	}
	post, _, err := s.Repo.AddLike(ctx, postID, caller.UserID)
	return s.afterWrite(post, postID, err)
}

func (s *DefaultCommunityService) UnlikePost(ctx context.Context, caller models.Caller, postID string) (models.PostCounters, error) {
	if !caller.Authenticated() {
		return models.PostCounters{}, ErrUnauthorized
	}
	post, _, err := s.Repo.RemoveLike(ctx, postID, caller.UserID)
	return s.afterWrite(post, postID, err)
}

func (s *DefaultCommunityService) AddComment(ctx context.Context, caller models.Caller, postID, body string) (models.PostCounters, error) {
	if !caller.Authenticated() {
		return models.PostCounters{}, ErrUnauthorized
	}
	body, err := cleanBody(body)
	if err != nil {
		return models.PostCounters{}, err
	}
	post, err := s.Repo.AddComment(ctx, &models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  caller.UserID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	return s.afterWrite(post, postID, err)
}

// afterWrite applies the server's answer optimistically and returns the freshest counters known.
func (s *DefaultCommunityService) afterWrite(post *models.Post, postID string, err error) (models.PostCounters, error) {
	if errors.Is(err, database.ErrNotFound) {
		return models.PostCounters{}, fmt.Errorf("%s: %w", postID, ErrNotFound)
	}
	if err != nil {
		return models.PostCounters{}, err
	}
	s.apply(post)
	if cur, ok := s.Cache.Get(post.ID); ok {
		return cur, nil
	}
	return post.Counters(), nil
}

func (s *DefaultCommunityService) apply(post *models.Post) {
	applied := s.Cache.Apply(post.Counters())
	metrics.RecordFeedEvent("write", applied)
	if !applied && s.Logger != nil {
		s.Logger.Debug("Stale counter write ignored", zap.String("postID", post.ID), zap.Time("updatedAt", post.UpdatedAt))
	}
}

func cleanBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("%w: body is required", ErrInvalid)
	}
	if len(body) > maxBodyLength {
		return "", fmt.Errorf("%w: body exceeds %d characters", ErrInvalid, maxBodyLength)
	}
	return body, nil
}
