package models

// Tag anchors a catalog reference at a fractional (x, y) position on the
// post's image.
type Tag struct {
	ID            uint     `gorm:"column:tag_id;primaryKey;autoIncrement" json:"tag_id"`
	PostID        uint     `gorm:"column:post_id;not null;index" json:"post_id"`
	XCoord        float64  `gorm:"column:x_coord;not null" json:"x_coord"`
	YCoord        float64  `gorm:"column:y_coord;not null" json:"y_coord"`
	ClothingName  string   `gorm:"column:clothing_name;type:text;not null" json:"clothing_name"`
	CurrentPrice  float64  `gorm:"column:current_price;not null;check:current_price >= 0" json:"current_price"`
	OriginalPrice *float64 `gorm:"column:original_price" json:"original_price"`
	Brand         string   `gorm:"column:brand;type:text;not null" json:"brand"`
	Link          string   `gorm:"column:link;type:text;not null" json:"link"`
}

func (Tag) TableName() string {
	return "tags"
}
