package vo

import "github.com/Xushengqwer/blog_service/models/entities"

// 以下包装器仅用于 swagger 文档，对应 response.APIResponse[T] 的具体类型

// BaseResponseWrapper 只包含 Code 和 Message 的响应，错误响应与无数据的成功响应都用它
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:"success"`
}

// ArticleResponseWrapper 对应 response.APIResponse[vo.ArticleVO]
type ArticleResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    ArticleVO `json:"data"`
}

// ArticleListResponseWrapper 对应 response.APIResponse[[]vo.ArticleVO]
type ArticleListResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    []ArticleVO `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[entities.ArticleComment]
type CommentResponseWrapper struct {
	Code    int                     `json:"code" example:"0"`
	Message string                  `json:"message,omitempty" example:"success"`
	Data    entities.ArticleComment `json:"data"`
}

// ReplyResponseWrapper 对应 response.APIResponse[entities.ArticleReply]
type ReplyResponseWrapper struct {
	Code    int                   `json:"code" example:"0"`
	Message string                `json:"message,omitempty" example:"success"`
	Data    entities.ArticleReply `json:"data"`
}

// UserResponseWrapper 对应 response.APIResponse[vo.UserVO]
type UserResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    UserVO `json:"data"`
}

// UserListResponseWrapper 对应 response.APIResponse[[]vo.UserVO]
type UserListResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    []UserVO `json:"data"`
}

// AuthResponseWrapper 对应 response.APIResponse[vo.AuthVO]
type AuthResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    AuthVO `json:"data"`
}

// FollowResponseWrapper 对应 response.APIResponse[vo.FollowVO]
type FollowResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    FollowVO `json:"data"`
}

// PostResponseWrapper 对应 response.APIResponse[vo.PostVO]
type PostResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message,omitempty" example:"success"`
	Data    PostVO `json:"data"`
}

// PostListResponseWrapper 对应 response.APIResponse[[]vo.PostVO]
type PostListResponseWrapper struct {
	Code    int      `json:"code" example:"0"`
	Message string   `json:"message,omitempty" example:"success"`
	Data    []PostVO `json:"data"`
}

// PostCommentResponseWrapper 对应 response.APIResponse[vo.PostCommentVO]
type PostCommentResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    PostCommentVO `json:"data"`
}

// PostCommentListResponseWrapper 对应 response.APIResponse[[]vo.PostCommentVO]
type PostCommentListResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    []PostCommentVO `json:"data"`
}
