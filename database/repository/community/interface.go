package communityRepo

import (
	"context"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommunityRepository stores Training Room posts, likes and comments.
// Counter writes stamp updated_at with the database server's clock.
type CommunityRepository interface {
	CreatePost(ctx context.Context, p *models.Post) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int64) ([]models.Post, error)
	// AddLike records the like and returns the post; liked is false if the user had already liked it.
	AddLike(ctx context.Context, postID, userID string) (post *models.Post, liked bool, err error)
	RemoveLike(ctx context.Context, postID, userID string) (post *models.Post, removed bool, err error)
	AddComment(ctx context.Context, c *models.Comment) (*models.Post, error)
	WatchPosts(ctx context.Context) (*mongo.ChangeStream, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoCommunityRepo struct {
	postColl    *mongo.Collection
	likeColl    *mongo.Collection
	commentColl *mongo.Collection
}

func NewMongoCommunityRepo(db *mongo.Database) CommunityRepository {
	return &mongoCommunityRepo{
		postColl:    db.Collection("posts"),
		likeColl:    db.Collection("post_likes"),
		commentColl: db.Collection("post_comments"),
	}
}
