package communityRepo

import (
	"context"
	"testing"
	"time"

	"coachhub/database"
	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var postDoc = bson.D{
	{Key: "id", Value: "p1"},
	{Key: "author_id", Value: "u1"},
	{Key: "body", Value: "hello"},
	{Key: "like_count", Value: 2},
	{Key: "comment_count", Value: 0},
	{Key: "updated_at", Value: time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)},
}

func commands(mt *mtest.T) []string {
	var names []string
	for _, e := range mt.GetAllStartedEvents() {
		names = append(names, e.CommandName)
	}
	return names
}

func TestCommunityRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("like on a missing post writes nothing", func(mt *mtest.T) {
		repo := NewMongoCommunityRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coachhub.posts", mtest.FirstBatch))

		_, liked, err := repo.AddLike(context.Background(), "gone", "u2")
		assert.ErrorIs(mt, err, database.ErrNotFound)
		assert.False(mt, liked)
		assert.NotContains(mt, commands(mt), "insert")
	})

	mt.Run("comment on a missing post writes nothing", func(mt *mtest.T) {
		repo := NewMongoCommunityRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "coachhub.posts", mtest.FirstBatch))

		_, err := repo.AddComment(context.Background(), &models.Comment{ID: "c1", PostID: "gone", AuthorID: "u2", Body: "nice"})
		assert.ErrorIs(mt, err, database.ErrNotFound)
		assert.NotContains(mt, commands(mt), "insert")
	})

	mt.Run("like bumps the counter", func(mt *mtest.T) {
		repo := NewMongoCommunityRepo(mt.DB)
		bumped := bson.D{{Key: "id", Value: "p1"}, {Key: "like_count", Value: 3}}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "coachhub.posts", mtest.FirstBatch, postDoc),
			mtest.CreateSuccessResponse(),
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bumped}},
		)

		p, liked, err := repo.AddLike(context.Background(), "p1", "u2")
		require.NoError(mt, err)
		assert.True(mt, liked)
		assert.Equal(mt, 3, p.LikeCount)
	})

	mt.Run("repeat like returns the post unchanged", func(mt *mtest.T) {
		repo := NewMongoCommunityRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "coachhub.posts", mtest.FirstBatch, postDoc),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: post_likes index: unique_post_user",
			}),
		)

		p, liked, err := repo.AddLike(context.Background(), "p1", "u2")
		require.NoError(mt, err)
		assert.False(mt, liked)
		assert.Equal(mt, 2, p.LikeCount)
		assert.NotContains(mt, commands(mt), "findAndModify")
	})

	mt.Run("post deleted before the counter moved removes the comment", func(mt *mtest.T) {
		repo := NewMongoCommunityRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "coachhub.posts", mtest.FirstBatch, postDoc),
			mtest.CreateSuccessResponse(),
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}},
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		_, err := repo.AddComment(context.Background(), &models.Comment{ID: "c1", PostID: "p1", AuthorID: "u2", Body: "nice"})
		assert.ErrorIs(mt, err, database.ErrNotFound)
		assert.Equal(mt, []string{"find", "insert", "findAndModify", "delete"}, commands(mt))
	})
}
