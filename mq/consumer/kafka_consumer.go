package consumer

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
)

const (
	handleTimeout = 30 * time.Second
	// maxAttempts 单条消息最多处理次数，用尽后记录日志并提交位移
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// MessageHandler 处理单条 Kafka 消息。返回错误表示可以重试。
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// messageReader kafka.Reader 中消费者用到的部分
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer 单主题消费者。处理结束后才提交位移，进程崩溃时消息会被重新投递。
type Consumer struct {
	reader  messageReader
	handler MessageHandler
	logger  *core.ZapLogger
	topic   string
	backoff time.Duration
}

// NewConsumer 创建消费者，topic 与 brokers 不能为空
func NewConsumer(cfg *config.KafkaConfig, groupID string, topic string, handler MessageHandler, logger *core.ZapLogger) (*Consumer, error) {
	if topic == "" {
		return nil, errors.New("kafka topic 名称不能为空")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 配置不能为空")
	}

	logger.Info("初始化 Kafka 消费者",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topic),
		zap.String("groupID", groupID))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  3 * time.Second,
	})
	return newConsumer(reader, topic, handler, logger), nil
}

func newConsumer(reader messageReader, topic string, handler MessageHandler, logger *core.ZapLogger) *Consumer {
	return &Consumer{reader: reader, handler: handler, logger: logger, topic: topic, backoff: retryBackoff}
}

// Start 阻塞消费直到 ctx 取消或 Reader 关闭
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Kafka 消费者已启动", zap.String("topic", c.topic))
	defer c.logger.Info("Kafka 消费者已停止", zap.String("topic", c.topic))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Error("拉取 Kafka 消息失败", zap.String("topic", c.topic), zap.Error(err))
			if !sleepCtx(ctx, time.Second) {
				return
			}
			continue
		}

		if !c.process(ctx, msg) {
			return
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("提交 Kafka 位移失败",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}
	}
}

// process 按 maxAttempts 重试处理。ctx 取消时返回 false，此时不提交位移。
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		handleCtx, cancel := context.WithTimeout(ctx, handleTimeout)
		err := c.handler.Handle(handleCtx, msg)
		cancel()
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		fields := []zap.Field{
			zap.Error(err),
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
		}
		if attempt == maxAttempts {
			c.logger.Error("Kafka 消息处理失败，重试次数已用尽，跳过该消息", fields...)
			return true
		}
		c.logger.Warn("Kafka 消息处理失败，稍后重试", fields...)
		if !sleepCtx(ctx, c.backoff*time.Duration(attempt)) {
			return false
		}
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Close 关闭 Reader
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("关闭 Kafka Reader 失败", zap.Error(err), zap.String("topic", c.topic))
		return err
	}
	return nil
}
