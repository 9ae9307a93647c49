package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// ThumbnailVO 缩略图
type ThumbnailVO struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// ArticleVO 文章详情
type ArticleVO struct {
	ID              uint64                    `json:"id"`
	Title           string                    `json:"title"`
	Slug            string                    `json:"slug"`
	AuthorID        *uint64                   `json:"author_id,omitempty"`
	Author          string                    `json:"author,omitempty"`
	AuthorDetails   entities.AuthorSnapshot   `json:"author_details"`
	Overview        string                    `json:"overview"`
	Category        string                    `json:"category"`
	Content         string                    `json:"content"`
	Thumbnail       ThumbnailVO               `json:"thumbnail"`
	ReadTime        int                       `json:"read_time"`
	Reads           int64                     `json:"reads"`
	CommentRelation enums.CommentRelation     `json:"comment_relation"`
	Comments        []entities.ArticleComment `json:"comments"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// NewArticleVO 实体转视图
func NewArticleVO(a *entities.Article) *ArticleVO {
	comments := []entities.ArticleComment(a.Comments)
	if comments == nil {
		comments = []entities.ArticleComment{}
	}
	return &ArticleVO{
		ID:              a.ID,
		Title:           a.Title,
		Slug:            a.Slug,
		AuthorID:        a.AuthorID,
		Author:          a.Author,
		AuthorDetails:   a.AuthorInfo,
		Overview:        a.Overview,
		Category:        a.Category,
		Content:         a.Content,
		Thumbnail:       ThumbnailVO{Title: a.Thumbnail.Title, ImageURL: a.Thumbnail.URL},
		ReadTime:        a.ReadTime,
		Reads:           a.Reads,
		CommentRelation: enums.CommentEmbedded,
		Comments:        comments,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// NewArticleVOList 批量转换，空结果返回空切片而不是 nil
func NewArticleVOList(list []*entities.Article) []*ArticleVO {
	out := make([]*ArticleVO, 0, len(list))
	for _, a := range list {
		out = append(out, NewArticleVO(a))
	}
	return out
}
