package models

type User struct {
	ID                string  `gorm:"column:user_id;type:text;primaryKey;not null" json:"user_id"`
	CompleteName      string  `gorm:"column:complete_name;type:text;not null" json:"complete_name"`
	Alias             string  `gorm:"column:user_alias;type:text;unique;not null" json:"user_alias"`
	Description       *string `gorm:"column:description;type:text" json:"description"`
	ProfilePictureURL *string `gorm:"column:profile_picture_url;type:text" json:"profile_picture_url"`
}

func (User) TableName() string {
	return "users"
}
