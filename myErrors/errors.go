package myErrors

import (
	"errors"
	"fmt"
)

// ErrRepoNotFound 仓库层统一使用的“记录不存在”错误，服务层负责翻译成具体的业务错误
var ErrRepoNotFound = errors.New("repo: record not found")

// 错误类别，控制器按类别映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error 携带类别的业务错误，Error() 只返回面向用户的消息
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Validationf 构造一个参数校验错误
func Validationf(format string, args ...interface{}) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound
var (
	ErrArticleNotFound = newError(ErrNotFound, "文章不存在")
	ErrCommentNotFound = newError(ErrNotFound, "评论不存在")
	ErrUserNotFound    = newError(ErrNotFound, "用户不存在")
	ErrPostNotFound    = newError(ErrNotFound, "帖子不存在")
)

// Validation
var (
	ErrInvalidInput  = newError(ErrValidation, "请求参数无效")
	ErrInvalidTag    = newError(ErrValidation, "标签不在允许的范围内")
	ErrWeakPassword  = newError(ErrValidation, "密码长度需在 8 到 72 字节之间，且必须同时包含大写字母、小写字母、数字和特殊字符 (@$!%*?&)")
	ErrSelfFollow    = newError(ErrValidation, "不能关注自己")
	ErrEmptyUpload   = newError(ErrValidation, "未上传文件")
	ErrInvalidMonth  = newError(ErrValidation, "月份必须在 1 到 12 之间")
	ErrEmptyContent  = newError(ErrValidation, "内容不能为空")
	ErrNotJSONArray  = newError(ErrValidation, "请求格式错误，需要一个文章数组")
	ErrMissingAuthor = newError(ErrValidation, "author 与 author_id 至少需要提供一个")
)

// Conflict
var (
	ErrDuplicateUsername = newError(ErrConflict, "用户名已被占用")
	ErrDuplicateEmail    = newError(ErrConflict, "邮箱已被注册")
	ErrAlreadyFollowing  = newError(ErrConflict, "已经关注过该用户")
	ErrNotFollowing      = newError(ErrConflict, "尚未关注该用户")
	ErrAlreadyLiked      = newError(ErrConflict, "已经点赞过该帖子")
	ErrNotLiked          = newError(ErrConflict, "尚未点赞该帖子")
)

// Forbidden / Unauthorized
var (
	ErrNotOwner          = newError(ErrForbidden, "没有权限操作该资源")
	ErrNoSuchUser        = newError(ErrUnauthorized, "该邮箱没有对应的用户")
	ErrIncorrectPassword = newError(ErrUnauthorized, "密码错误")
	ErrInvalidSession    = newError(ErrUnauthorized, "会话无效或已过期")
)
