package producer

import (
	"context"
	"strconv"

	"github.com/Xushengqwer/blog_service/models/kafkaevents"
)

// NoopPublisher 丢弃所有事件
type NoopPublisher struct{}

func (NoopPublisher) PublishArticlePublished(context.Context, kafkaevents.ArticleData) error {
	return nil
}

func (NoopPublisher) PublishArticleDeleted(context.Context, uint64) error { return nil }

func (NoopPublisher) PublishUserFollowed(context.Context, uint64, uint64) error { return nil }

func idKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
