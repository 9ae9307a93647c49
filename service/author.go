package service

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// resolveAuthorSnapshot 查询作者资料生成快照。
// authorID 为空或用户不存在时返回空快照，后者记一条警告；其他查询错误原样返回。
func resolveAuthorSnapshot(ctx context.Context, users mysql.UserRepository, logger *core.ZapLogger, authorID *uint64) (entities.AuthorSnapshot, error) {
	if authorID == nil {
		return entities.AuthorSnapshot{}, nil
	}
	user, err := users.GetUserByID(ctx, *authorID)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			logger.Warn("作者不存在，作者快照留空", zap.Uint64("authorID", *authorID))
			return entities.AuthorSnapshot{}, nil
		}
		return entities.AuthorSnapshot{}, err
	}
	return user.Snapshot(), nil
}
