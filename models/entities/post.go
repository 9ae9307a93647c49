package entities

import (
	"slices"

	"gorm.io/datatypes"
)

// Post 帖子实体
// - Tags 取值限定在 enums.PostTag 词表内
// - Likes 为点赞用户 ID 集合，不含重复
// - CommentIDs 引用 PostComment 记录，评论独立存储
type Post struct {
	BaseModel

	Title    string `gorm:"type:varchar(255);not null"`
	Content  string `gorm:"type:longtext;not null"`
	Overview string `gorm:"type:text"`

	CoverImage MediaRef `gorm:"embedded;embeddedPrefix:cover_image_"`

	Tags     datatypes.JSONSlice[string]
	AuthorID uint64 `gorm:"index;not null"`

	Likes      datatypes.JSONSlice[uint64]
	CommentIDs datatypes.JSONSlice[uint64]
}

// LikedBy 判断用户是否已点赞
func (p *Post) LikedBy(userID uint64) bool {
	return slices.Contains(p.Likes, userID)
}
