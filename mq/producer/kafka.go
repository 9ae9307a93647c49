package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/kafkaevents"
)

// Publisher 领域事件的发布方。服务层只依赖这个接口，未配置 Kafka 时注入 NoopPublisher。
type Publisher interface {
	PublishArticlePublished(ctx context.Context, article kafkaevents.ArticleData) error
	PublishArticleDeleted(ctx context.Context, articleID uint64) error
	PublishUserFollowed(ctx context.Context, followerID, followeeID uint64) error
}

// KafkaProducer 基于 kafka-go Writer 的 Publisher 实现
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建 KafkaProducer
func NewKafkaProducer(cfg config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: writer, logger: logger, topics: cfg.Topics}
}

// SendEvent 序列化事件并写入指定主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, key string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化 Kafka 事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
		return err
	}
	p.logger.Debug("Kafka 消息发送成功", zap.String("topic", topic), zap.String("key", key))
	return nil
}

func (p *KafkaProducer) PublishArticlePublished(ctx context.Context, article kafkaevents.ArticleData) error {
	event := kafkaevents.ArticlePublishedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now(),
		Article:   article,
	}
	return p.SendEvent(ctx, p.topics.ArticlePublished, idKey(article.ID), event)
}

func (p *KafkaProducer) PublishArticleDeleted(ctx context.Context, articleID uint64) error {
	event := kafkaevents.ArticleDeletedEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now(),
		ArticleID: articleID,
	}
	return p.SendEvent(ctx, p.topics.ArticleDeleted, idKey(articleID), event)
}

func (p *KafkaProducer) PublishUserFollowed(ctx context.Context, followerID, followeeID uint64) error {
	event := kafkaevents.UserFollowedEvent{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return p.SendEvent(ctx, p.topics.UserFollowed, idKey(followeeID), event)
}

// Close 刷新缓冲并关闭 Writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
