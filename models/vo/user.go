package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// AvatarVO 头像
type AvatarVO struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// UserVO 用户信息，不含密码哈希
type UserVO struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	About        string    `json:"about,omitempty"`
	Occupation   string    `json:"occupation,omitempty"`
	Location     string    `json:"location,omitempty"`
	TwitterURL   string    `json:"twitter_url,omitempty"`
	InstagramURL string    `json:"instagram_url,omitempty"`
	FacebookURL  string    `json:"facebook_url,omitempty"`
	YoutubeURL   string    `json:"youtube_url,omitempty"`
	WhatsappURL  string    `json:"whatsapp_url,omitempty"`
	LinkedinURL  string    `json:"linkedin_url,omitempty"`
	Avatar       AvatarVO  `json:"avatar"`
	IsVerified   bool      `json:"is_verified"`
	Followers    []uint64  `json:"followers"`
	Following    []uint64  `json:"following"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserVO 实体转视图
func NewUserVO(u *entities.User) *UserVO {
	return &UserVO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		About:        u.About,
		Occupation:   u.Occupation,
		Location:     u.Location,
		TwitterURL:   u.TwitterURL,
		InstagramURL: u.InstagramURL,
		FacebookURL:  u.FacebookURL,
		YoutubeURL:   u.YoutubeURL,
		WhatsappURL:  u.WhatsappURL,
		LinkedinURL:  u.LinkedinURL,
		Avatar:       AvatarVO{Title: u.Avatar.Title, ImageURL: u.Avatar.URL},
		IsVerified:   u.IsVerified,
		Followers:    nonNil(u.Followers),
		Following:    nonNil(u.Following),
		CreatedAt:    u.CreatedAt,
	}
}

// NewUserVOList 批量转换
func NewUserVOList(list []*entities.User) []*UserVO {
	out := make([]*UserVO, 0, len(list))
	for _, u := range list {
		out = append(out, NewUserVO(u))
	}
	return out
}

// AuthVO 注册、登录的返回，Token 同时写入 Cookie
type AuthVO struct {
	User  *UserVO `json:"user"`
	Token string  `json:"token"`
}

// FollowVO 关注后的双方视图
type FollowVO struct {
	Follower *UserVO `json:"follower"`
	Followee *UserVO `json:"followee"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
