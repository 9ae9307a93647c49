// Package authz 定义请求主体以及资源归属校验。
// 鉴权中间件把 Principal 放进 context，服务层只依赖这里的类型，不依赖 gin 或 JWT。
package authz

import (
	"context"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// Principal 当前请求的调用方
type Principal struct {
	UserID uint64
}

// Authorize 校验调用方是否为资源所有者
func (p Principal) Authorize(ownerID uint64) error {
	if p.UserID == 0 || p.UserID != ownerID {
		return myErrors.ErrNotOwner
	}
	return nil
}

type principalKey struct{}

// WithPrincipal 把调用方写入 context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext 读取调用方，未登录时 ok 为 false
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != 0
}
