package constant

import "time"

const (
	ServiceName    = "blog-service"
	ServiceVersion = "1.0.0"
)

// 会话 Cookie
const (
	SessionCookieName = "jwt"
	SessionCookieTTL  = 24 * time.Hour
)

// DefaultConsumerGroupID 未配置 consumerGroupId 时使用
const DefaultConsumerGroupID = "blog_service_group"

// RandomArticleCount 随机推荐接口默认返回的文章数
const RandomArticleCount = 6

// 热门文章榜单
const (
	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 50
	// DefaultRankSyncSchedule 榜单重建任务的默认 cron 表达式
	DefaultRankSyncSchedule = "@every 5m"
	DefaultRankSyncTopN     = 100
)
