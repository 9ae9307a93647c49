package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// ArticleBulkCreator 批量导入所需的服务能力
type ArticleBulkCreator interface {
	BulkCreateArticles(ctx context.Context, reqs []dto.CreateArticleRequest) ([]*vo.ArticleVO, error)
}

// ArticleImportHandler 消费文章导入主题，消息体为文章 JSON 数组，整批在一个事务内写入
type ArticleImportHandler struct {
	articles ArticleBulkCreator
	logger   *core.ZapLogger
}

// NewArticleImportHandler 创建 ArticleImportHandler
func NewArticleImportHandler(articles ArticleBulkCreator, logger *core.ZapLogger) *ArticleImportHandler {
	return &ArticleImportHandler{articles: articles, logger: logger}
}

func (h *ArticleImportHandler) Handle(ctx context.Context, msg kafka.Message) error {
	reqs, err := dto.DecodeArticleBatch(msg.Value)
	if err != nil {
		h.logger.Warn("文章导入消息格式错误，已丢弃",
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return nil
	}

	created, err := h.articles.BulkCreateArticles(ctx, reqs)
	if errors.Is(err, myErrors.ErrValidation) || errors.Is(err, myErrors.ErrNotFound) {
		// 数据本身有问题，重试也不会成功
		h.logger.Warn("文章导入消息校验失败，已丢弃",
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("批量导入文章失败 (offset %d): %w", msg.Offset, err)
	}
	h.logger.Info("文章批量导入完成", zap.Int("count", len(created)), zap.Int64("offset", msg.Offset))
	return nil
}
