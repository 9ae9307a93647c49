package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
)

// ArticleRankRepository 文章阅读量排行榜（Redis ZSet）。
// 榜单只用于展示热门文章，权威阅读量始终在 MySQL 中。
type ArticleRankRepository interface {
	// IncrementReads 文章阅读量 +1
	IncrementReads(ctx context.Context, articleID uint64) error

	// TopArticleIDs 按分数降序返回前 limit 个文章 ID
	TopArticleIDs(ctx context.Context, limit int) ([]uint64, error)

	// RemoveArticle 文章删除后移出榜单
	RemoveArticle(ctx context.Context, articleID uint64) error

	// ReplaceRank 用给定的阅读量整体替换榜单，先写临时 key 再 RENAME，读者不会看到中间状态
	ReplaceRank(ctx context.Context, reads map[uint64]int64) error
}

type articleRankRepository struct {
	client *redis.Client
	logger *core.ZapLogger
	key    string
}

// NewArticleRankRepository 创建 ArticleRankRepository
func NewArticleRankRepository(client *redis.Client, logger *core.ZapLogger) ArticleRankRepository {
	return &articleRankRepository{client: client, logger: logger, key: constant.ArticleReadsRankKey}
}

func (r *articleRankRepository) IncrementReads(ctx context.Context, articleID uint64) error {
	member := strconv.FormatUint(articleID, 10)
	if err := r.client.ZIncrBy(ctx, r.key, 1, member).Err(); err != nil {
		return fmt.Errorf("更新阅读排行榜失败 (article %d): %w", articleID, err)
	}
	return nil
}

func (r *articleRankRepository) TopArticleIDs(ctx context.Context, limit int) ([]uint64, error) {
	if limit <= 0 {
		return nil, nil
	}
	members, err := r.client.ZRevRange(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取阅读排行榜失败: %w", err)
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, parseErr := strconv.ParseUint(m, 10, 64)
		if parseErr != nil {
			r.logger.Warn("排行榜中存在无法解析的成员，已跳过", zap.String("member", m))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *articleRankRepository) RemoveArticle(ctx context.Context, articleID uint64) error {
	return r.client.ZRem(ctx, r.key, strconv.FormatUint(articleID, 10)).Err()
}

func (r *articleRankRepository) ReplaceRank(ctx context.Context, reads map[uint64]int64) error {
	if len(reads) == 0 {
		return r.client.Del(ctx, r.key).Err()
	}

	members := make([]redis.Z, 0, len(reads))
	for id, score := range reads {
		members = append(members, redis.Z{Score: float64(score), Member: strconv.FormatUint(id, 10)})
	}

	tmpKey := r.key + ":rebuild"
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, tmpKey)
		pipe.ZAdd(ctx, tmpKey, members...)
		pipe.Rename(ctx, tmpKey, r.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("重建阅读排行榜失败: %w", err)
	}
	return nil
}
