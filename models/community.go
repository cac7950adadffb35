package models

import "time"

// Post is an entry in the Training Room feed.
type Post struct {
	ID           string    `bson:"id" json:"id"`
	AuthorID     string    `bson:"author_id" json:"authorId"`
	Body         string    `bson:"body" json:"body"`
	LikeCount    int       `bson:"like_count" json:"likeCount"`
	CommentCount int       `bson:"comment_count" json:"commentCount"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Counters extracts the reconciled counter view of a post.
func (p Post) Counters() PostCounters {
	return PostCounters{PostID: p.ID, Likes: p.LikeCount, Comments: p.CommentCount, UpdatedAt: p.UpdatedAt}
}

type PostLike struct {
	PostID    string    `bson:"post_id" json:"postId"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

type Comment struct {
	ID        string    `bson:"id" json:"id"`
	PostID    string    `bson:"post_id" json:"postId"`
	AuthorID  string    `bson:"author_id" json:"authorId"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// PostCounters is the optimistic, locally cached state of a post's counters.
// UpdatedAt is the server timestamp of the write that produced it.
type PostCounters struct {
	PostID    string    `json:"postId"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	UpdatedAt time.Time `json:"updatedAt"`
}
