package entities

import "gorm.io/datatypes"

// PostComment 帖子评论，独立成表
// - ParentID 为空表示顶级评论，否则为某条评论的回复
// - Replies 冗余保存直接回复的 ID，按追加顺序
type PostComment struct {
	BaseModel

	PostID   uint64  `gorm:"index;not null"`
	ParentID *uint64 `gorm:"index"`
	UserID   uint64  `gorm:"index;not null"`
	Text     string  `gorm:"type:text;not null"`

	Replies datatypes.JSONSlice[uint64]
}
