package models

import "time"

// Profile holds the per-user state this service needs beyond the token claims.
type Profile struct {
	UserID      string    `bson:"user_id" json:"userId"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name,omitempty" json:"displayName,omitempty"`
	Tier        string    `bson:"tier,omitempty" json:"tier,omitempty"`
	FCMToken    string    `bson:"fcm_token,omitempty" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
