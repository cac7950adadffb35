package community

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachhub/database"
	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockCommunityRepo struct{ mock.Mock }

func (m *MockCommunityRepo) CreatePost(ctx context.Context, p *models.Post) (*models.Post, error) {
	args := m.Called(ctx, p)
	if v := args.Get(0); v != nil {
		return v.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) GetPost(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) ListRecent(ctx context.Context, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) AddLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	args := m.Called(ctx, postID, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.Post), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockCommunityRepo) RemoveLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	args := m.Called(ctx, postID, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.Post), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockCommunityRepo) AddComment(ctx context.Context, c *models.Comment) (*models.Post, error) {
	args := m.Called(ctx, c)
	if v := args.Get(0); v != nil {
		return v.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) WatchPosts(ctx context.Context) (*mongo.ChangeStream, error) {
	return nil, errors.New("not supported in tests")
}

func (m *MockCommunityRepo) EnsureIndexes(ctx context.Context) error { return nil }

var member = models.Caller{UserID: "u1", Email: "u1@example.com", Tier: models.TierMember}

func newService() (*DefaultCommunityService, *MockCommunityRepo) {
	repo := &MockCommunityRepo{}
	return &DefaultCommunityService{Repo: repo, Cache: NewCounterCache()}, repo
}

func TestLikePost_AppliesServerCounters(t *testing.T) {
	svc, repo := newService()
	repo.On("AddLike", mock.Anything, "p1", "u1").
		Return(&models.Post{ID: "p1", LikeCount: 5, UpdatedAt: t0}, true, nil)

	got, err := svc.LikePost(context.Background(), member, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Likes)

	cached, ok := svc.Cache.Get("p1")
	require.True(t, ok)
	assert.Equal(t, t0, cached.UpdatedAt)
}

func TestLikePost_StaleWriteReturnsCachedCounters(t *testing.T) {
	svc, repo := newService()
	svc.Cache.Apply(models.PostCounters{PostID: "p1", Likes: 8, UpdatedAt: t0.Add(time.Second)})
	repo.On("RemoveLike", mock.Anything, "p1", "u1").
		Return(&models.Post{ID: "p1", LikeCount: 6, UpdatedAt: t0}, true, nil)

	got, err := svc.UnlikePost(context.Background(), member, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Likes)
}

func TestCommunity_Errors(t *testing.T) {
	svc, repo := newService()
	repo.On("AddLike", mock.Anything, "gone", "u1").Return(nil, false, database.ErrNotFound)

	_, err := svc.LikePost(context.Background(), member, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.LikePost(context.Background(), models.Caller{}, "p1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.CreatePost(context.Background(), member, "   ")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.AddComment(context.Background(), member, "p1", "")
	assert.ErrorIs(t, err, ErrInvalid)
	repo.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything)
}

func TestAddComment(t *testing.T) {
	svc, repo := newService()
	repo.On("AddComment", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.PostID == "p1" && c.AuthorID == "u1" && c.Body == "nice set" && c.ID != ""
	})).Return(&models.Post{ID: "p1", CommentCount: 1, UpdatedAt: t0}, nil)

	got, err := svc.AddComment(context.Background(), member, "p1", "  nice set ")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Comments)
}

func TestListFeed_OverlaysAndClampsLimit(t *testing.T) {
	svc, repo := newService()
	svc.Cache.Apply(models.PostCounters{PostID: "p1", Likes: 3, UpdatedAt: t0.Add(time.Second)})
	repo.On("ListRecent", mock.Anything, int64(maxFeedLimit)).
		Return([]models.Post{{ID: "p1", LikeCount: 1, UpdatedAt: t0}}, nil)
	repo.On("ListRecent", mock.Anything, int64(defaultFeedLimit)).Return(nil, nil)

	posts, err := svc.ListFeed(context.Background(), member, 1000)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 3, posts[0].LikeCount)

	posts, err = svc.ListFeed(context.Background(), member, 0)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestCreatePost(t *testing.T) {
	svc, repo := newService()
	repo.On("CreatePost", mock.Anything, mock.AnythingOfType("*models.Post")).
		Return(&models.Post{ID: "p9", AuthorID: "u1", Body: "hello", UpdatedAt: t0}, nil)

	p, err := svc.CreatePost(context.Background(), member, "hello")
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
	_, ok := svc.Cache.Get("p9")
	assert.True(t, ok)
}

func TestCreatePost_CachedStampMatchesStoredStamp(t *testing.T) {
	svc, repo := newService()
	stored := &models.Post{}
	repo.On("CreatePost", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) { *stored = *args.Get(1).(*models.Post) }).
		Return(stored, nil)

	p, err := svc.CreatePost(context.Background(), member, "hello")
	require.NoError(t, err)

	// The change stream delivers the post as Mongo stored it, at millisecond precision.
	raw, err := bson.Marshal(stored)
	require.NoError(t, err)
	var fromStream models.Post
	require.NoError(t, bson.Unmarshal(raw, &fromStream))

	cached, ok := svc.Cache.Get(p.ID)
	require.True(t, ok)
	assert.True(t, cached.UpdatedAt.Equal(fromStream.UpdatedAt), "cached %s, stored %s", cached.UpdatedAt, fromStream.UpdatedAt)
	assert.True(t, p.CreatedAt.Equal(fromStream.CreatedAt))
}
