package entities

import (
	"time"

	"gorm.io/datatypes"
)

// AuthorSnapshot 创建时拷贝的作者资料，之后不随用户资料更新
type AuthorSnapshot struct {
	Username    string `gorm:"type:varchar(50)" json:"username,omitempty"`
	Email       string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Avatar      string `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	About       string `gorm:"type:text" json:"about,omitempty"`
	Location    string `gorm:"type:varchar(100)" json:"location,omitempty"`
	TwitterURL  string `gorm:"type:varchar(255)" json:"twitter_url,omitempty"`
	LinkedinURL string `gorm:"type:varchar(255)" json:"linkedin_url,omitempty"`
}

// Article 文章实体
// - Comments 以 JSON 列内嵌保存，随文章一起删除
// - Slug、ReadTime 由服务层根据 Title、Content 计算
type Article struct {
	BaseModel

	Title    string  `gorm:"type:varchar(255);not null"`
	Slug     string  `gorm:"type:varchar(255);index"`
	AuthorID *uint64 `gorm:"index"`
	// Author 自由填写的作者展示名
	Author     string         `gorm:"type:varchar(100)"`
	AuthorInfo AuthorSnapshot `gorm:"embedded;embeddedPrefix:author_"`

	Overview string `gorm:"type:text;not null"`
	Category string `gorm:"type:varchar(100);index;not null"`
	Content  string `gorm:"type:longtext;not null"`

	Thumbnail MediaRef `gorm:"embedded;embeddedPrefix:thumbnail_"`

	ReadTime int   `gorm:"not null;default:0"`
	Reads    int64 `gorm:"column:read_count;not null;default:0;index"`

	Comments datatypes.JSONSlice[ArticleComment]
}

// ArticleComment 内嵌在文章中的评论，按追加顺序展示
type ArticleComment struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	AuthorID  *uint64        `json:"author_id,omitempty"`
	Author    AuthorSnapshot `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Replies   []ArticleReply `json:"replies"`
}

// ArticleReply 评论下的回复
type ArticleReply struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	AuthorID  *uint64        `json:"author_id,omitempty"`
	Author    AuthorSnapshot `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

// FindComment 只在本文章的评论中按 ID 查找，返回下标，未找到为 -1
func (a *Article) FindComment(commentID string) int {
	for i := range a.Comments {
		if a.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}
