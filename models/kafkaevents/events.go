// Package kafkaevents 定义本服务发布与消费的 Kafka 消息体
package kafkaevents

import "time"

// ArticleData 文章事件携带的核心数据，不含正文与评论
type ArticleData struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	AuthorID  *uint64 `json:"author_id,omitempty"`
	Author    string  `json:"author,omitempty"`
	Category  string  `json:"category"`
	Overview  string  `json:"overview"`
	ReadTime  int     `json:"read_time"`
	CreatedAt int64   `json:"created_at"`
}

// ArticlePublishedEvent 文章创建成功
type ArticlePublishedEvent struct {
	EventID   string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Article   ArticleData `json:"article"`
}

// ArticleDeletedEvent 文章被删除
type ArticleDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	ArticleID uint64    `json:"article_id"`
}

// UserFollowedEvent 关注关系建立
type UserFollowedEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	FollowerID uint64    `json:"follower_id"`
	FolloweeID uint64    `json:"followee_id"`
}
