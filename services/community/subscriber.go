package community

import (
	"context"
	"time"

	communityRepo "coachhub/database/repository/community"
	"coachhub/metrics"
	"coachhub/models"

	"go.uber.org/zap"
)

// EventStream is the subset of *mongo.ChangeStream the subscriber reads.
type EventStream interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// postChange is the part of a change event we care about.
type postChange struct {
	OperationType string       `bson:"operationType"`
	FullDocument  *models.Post `bson:"fullDocument"`
}

// Subscriber feeds post changes from the database into a CounterCache.
type Subscriber struct {
	Open       func(ctx context.Context) (EventStream, error)
	Cache      *CounterCache
	Logger     *zap.Logger
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// WatchRepository opens post change streams from repo.
func WatchRepository(repo communityRepo.CommunityRepository) func(ctx context.Context) (EventStream, error) {
	return func(ctx context.Context) (EventStream, error) {
		stream, err := repo.WatchPosts(ctx)
		if err != nil {
			return nil, err
		}
		return stream, nil
	}
}

// Run tails the stream until ctx is done, reopening it with exponential backoff on failure.
func (s *Subscriber) Run(ctx context.Context) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	minBackoff, maxBackoff := s.MinBackoff, s.MaxBackoff
	if minBackoff <= 0 {
		minBackoff = time.Second
	}
	if maxBackoff < minBackoff {
		maxBackoff = 30 * time.Second
	}

	backoff := minBackoff
	for ctx.Err() == nil {
		consumed, err := s.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		if consumed > 0 {
			backoff = minBackoff
		}
		logger.Warn("Post change stream stopped; reopening",
			zap.Int("events", consumed), zap.Duration("backoff", backoff), zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (s *Subscriber) consume(ctx context.Context) (int, error) {
	stream, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer stream.Close(context.WithoutCancel(ctx))

	n := 0
	for stream.Next(ctx) {
		var ev postChange
		if err := stream.Decode(&ev); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("Undecodable post change", zap.Error(err))
			}
			continue
		}
		n++
		if ev.FullDocument == nil {
			continue
		}
		applied := s.Cache.Apply(ev.FullDocument.Counters())
		metrics.RecordFeedEvent("stream", applied)
	}
	return n, stream.Err()
}
