package models

import "time"

// Relationship is a follower edge. The composite unique index rejects
// duplicate follows at the database level.
type Relationship struct {
	ID         uint      `gorm:"column:relation_id;primaryKey;autoIncrement" json:"relation_id"`
	FollowerID string    `gorm:"column:follower_id;type:text;not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID string    `gorm:"column:followed_id;type:text;not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Relationship) TableName() string {
	return "relationships"
}
