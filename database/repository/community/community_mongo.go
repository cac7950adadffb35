package communityRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"coachhub/database"
	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCommunityRepo) CreatePost(ctx context.Context, p *models.Post) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.postColl.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating post: %w", database.Translate(err))
	}
	return p, nil
}

func (r *mongoCommunityRepo) GetPost(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Post
	if err := r.postColl.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

func (r *mongoCommunityRepo) ListRecent(ctx context.Context, limit int64) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.postColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching feed: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding feed: %w", err)
	}
	return posts, nil
}

func (r *mongoCommunityRepo) AddLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := r.GetPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	like := models.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()}
	if _, err := r.likeColl.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return current, false, nil
		}
		return nil, false, fmt.Errorf("error recording like: %w", err)
	}
	p, err := r.bumpCounter(ctx, postID, "like_count", 1)
	if err != nil {
		r.undoInsert(ctx, r.likeColl, bson.M{"post_id": postID, "user_id": userID})
		return nil, false, err
	}
	return p, true, nil
}

func (r *mongoCommunityRepo) RemoveLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.likeColl.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return nil, false, fmt.Errorf("error removing like: %w", err)
	}
	if res.DeletedCount == 0 {
		p, gerr := r.GetPost(ctx, postID)
		return p, false, gerr
	}
	p, err := r.bumpCounter(ctx, postID, "like_count", -1)
	return p, err == nil, err
}

func (r *mongoCommunityRepo) AddComment(ctx context.Context, c *models.Comment) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.GetPost(ctx, c.PostID); err != nil {
		return nil, err
	}
	if _, err := r.commentColl.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("error adding comment: %w", err)
	}
	p, err := r.bumpCounter(ctx, c.PostID, "comment_count", 1)
	if err != nil {
		r.undoInsert(ctx, r.commentColl, bson.M{"id": c.ID})
		return nil, err
	}
	return p, nil
}

// undoInsert removes a like or comment row whose post vanished before its counter moved.
func (r *mongoCommunityRepo) undoInsert(ctx context.Context, coll *mongo.Collection, filter bson.M) {
	if _, err := coll.DeleteOne(context.WithoutCancel(ctx), filter); err != nil {
		log.Printf("error removing orphaned %s row: %v", coll.Name(), err)
	}
}

func (r *mongoCommunityRepo) bumpCounter(ctx context.Context, postID, field string, delta int) (*models.Post, error) {
	update := bson.M{
		"$inc":         bson.M{field: delta},
		"$currentDate": bson.M{"updated_at": true},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	if err := r.postColl.FindOneAndUpdate(ctx, bson.M{"id": postID}, update, opts).Decode(&p); err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

// WatchPosts opens a change stream over post inserts and updates with the full document attached.
func (r *mongoCommunityRepo) WatchPosts(ctx context.Context) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.postColl.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("error opening post change stream: %w", err)
	}
	return stream, nil
}

func (r *mongoCommunityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.postColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_desc_idx")},
	}); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	if _, err := r.likeColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_post_user"),
	}); err != nil {
		return fmt.Errorf("failed to create like index: %w", err)
	}
	if _, err := r.commentColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("post_created_idx"),
	}); err != nil {
		return fmt.Errorf("failed to create comment index: %w", err)
	}
	return nil
}
