package dto

import (
	"bytes"
	"encoding/json"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// ThumbnailInput 创建文章时直接给出的缩略图
type ThumbnailInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// CreateArticleRequest 创建文章请求
// - Title、Overview、Category、Content 必填
// - Author 与 AuthorID 至少提供一个
type CreateArticleRequest struct {
	Title     string          `json:"title" example:"Go 并发入门"`
	Overview  string          `json:"overview" example:"goroutine 与 channel 的基本用法"`
	Category  string          `json:"category" example:"programming"`
	Content   string          `json:"content"`
	Author    string          `json:"author,omitempty" example:"Ada"`
	AuthorID  *uint64         `json:"author_id,omitempty" example:"1"`
	Thumbnail *ThumbnailInput `json:"thumbnail,omitempty"`
}

// ThumbnailPatch 局部更新缩略图
type ThumbnailPatch struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
}

// UpdateArticleRequest 局部更新文章
// - 字段为 nil 表示不修改；出现即覆盖，包括空字符串
// - 必填字段（Title、Overview、Category、Content）出现时不允许为空
type UpdateArticleRequest struct {
	Title     *string         `json:"title"`
	Author    *string         `json:"author"`
	Overview  *string         `json:"overview"`
	Category  *string         `json:"category"`
	Content   *string         `json:"content"`
	Thumbnail *ThumbnailPatch `json:"thumbnail"`
}

// AddCommentRequest 文章评论
type AddCommentRequest struct {
	Content  string  `json:"content" example:"写得很好"`
	AuthorID *uint64 `json:"author_id,omitempty" example:"1"`
}

// AddReplyRequest 评论回复，作者取当前登录用户
type AddReplyRequest struct {
	Content string `json:"content" example:"同意"`
}

// DecodeArticleBatch 解析批量创建的请求体，要求为 JSON 数组
func DecodeArticleBatch(data []byte) ([]CreateArticleRequest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, myErrors.ErrNotJSONArray
	}
	var list []CreateArticleRequest
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, myErrors.Validationf("文章列表格式错误: %v", err)
	}
	return list, nil
}
