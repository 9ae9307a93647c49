package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// CoverImageVO 帖子封面
type CoverImageVO struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// PostVO 帖子
type PostVO struct {
	ID              uint64                `json:"id"`
	Title           string                `json:"title"`
	Content         string                `json:"content"`
	Overview        string                `json:"overview,omitempty"`
	CoverImage      CoverImageVO          `json:"cover_image"`
	Tags            []string              `json:"tags"`
	AuthorID        uint64                `json:"author_id"`
	Likes           []uint64              `json:"likes"`
	LikeCount       int                   `json:"like_count"`
	CommentRelation enums.CommentRelation `json:"comment_relation"`
	CommentIDs      []uint64              `json:"comment_ids"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// NewPostVO 实体转视图
func NewPostVO(p *entities.Post) *PostVO {
	return &PostVO{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		Overview:        p.Overview,
		CoverImage:      CoverImageVO{Title: p.CoverImage.Title, ImageURL: p.CoverImage.URL},
		Tags:            nonNil(p.Tags),
		AuthorID:        p.AuthorID,
		Likes:           nonNil(p.Likes),
		LikeCount:       len(p.Likes),
		CommentRelation: enums.CommentReferenced,
		CommentIDs:      nonNil(p.CommentIDs),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewPostVOList 批量转换
func NewPostVOList(list []*entities.Post) []*PostVO {
	out := make([]*PostVO, 0, len(list))
	for _, p := range list {
		out = append(out, NewPostVO(p))
	}
	return out
}

// PostCommentVO 帖子评论
type PostCommentVO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	UserID    uint64    `json:"user_id"`
	Text      string    `json:"text"`
	Replies   []uint64  `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPostCommentVO 实体转视图
func NewPostCommentVO(c *entities.PostComment) *PostCommentVO {
	return &PostCommentVO{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		UserID:    c.UserID,
		Text:      c.Text,
		Replies:   nonNil(c.Replies),
		CreatedAt: c.CreatedAt,
	}
}

// NewPostCommentVOList 批量转换
func NewPostCommentVOList(list []*entities.PostComment) []*PostCommentVO {
	out := make([]*PostCommentVO, 0, len(list))
	for _, c := range list {
		out = append(out, NewPostCommentVO(c))
	}
	return out
}
