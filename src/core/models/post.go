package models

// Post owns its tags; they are inserted in the same transaction and
// removed with the post.
type Post struct {
	ID       uint    `gorm:"column:post_id;primaryKey;autoIncrement" json:"post_id"`
	UserID   string  `gorm:"column:user_id;type:text;not null;index" json:"user_id"`
	Title    *string `gorm:"column:title;type:text" json:"title"`
	ImageURL string  `gorm:"column:image_url;type:text;not null" json:"image_url"`
	Tags     []Tag   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"tags"`
}

func (Post) TableName() string {
	return "posts"
}
