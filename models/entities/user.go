package entities

import (
	"slices"

	"gorm.io/datatypes"
)

// User 用户实体
// - 关注关系双向冗余存储：A 出现在 B.Followers 中，当且仅当 B 出现在 A.Following 中
// - 用户不会被删除
type User struct {
	BaseModel

	Username     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	About      string `gorm:"type:text"`
	Occupation string `gorm:"type:varchar(100)"`
	Location   string `gorm:"type:varchar(100)"`

	TwitterURL   string `gorm:"type:varchar(255)"`
	InstagramURL string `gorm:"type:varchar(255)"`
	FacebookURL  string `gorm:"type:varchar(255)"`
	YoutubeURL   string `gorm:"type:varchar(255)"`
	WhatsappURL  string `gorm:"type:varchar(255)"`
	LinkedinURL  string `gorm:"type:varchar(255)"`

	Avatar MediaRef `gorm:"embedded;embeddedPrefix:avatar_"`

	IsVerified bool `gorm:"not null;default:false"`

	Followers datatypes.JSONSlice[uint64]
	Following datatypes.JSONSlice[uint64]
}

// HasFollower 判断 userID 是否已关注该用户
func (u *User) HasFollower(userID uint64) bool {
	return slices.Contains(u.Followers, userID)
}

// IsFollowing 判断该用户是否已关注 userID
func (u *User) IsFollowing(userID uint64) bool {
	return slices.Contains(u.Following, userID)
}

// Snapshot 生成文章、评论中冗余保存的作者快照
func (u *User) Snapshot() AuthorSnapshot {
	return AuthorSnapshot{
		Username:    u.Username,
		Email:       u.Email,
		Avatar:      u.Avatar.URL,
		About:       u.About,
		Location:    u.Location,
		TwitterURL:  u.TwitterURL,
		LinkedinURL: u.LinkedinURL,
	}
}
