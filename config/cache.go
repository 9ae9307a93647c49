package config

// RedisConfig Redis 连接配置
// - Addr 为空表示不启用 Redis，阅读排行榜相关功能会退化为直接查 MySQL。
type RedisConfig struct {
	Addr         string `mapstructure:"addr" json:"addr" yaml:"addr"`
	Password     string `mapstructure:"password" json:"-" yaml:"password"`
	DB           int    `mapstructure:"db" json:"db" yaml:"db"`
	PoolSize     int    `mapstructure:"poolSize" json:"poolSize" yaml:"poolSize"`
	DialTimeout  int    `mapstructure:"dialTimeout" json:"dialTimeout" yaml:"dialTimeout"` // 秒
	ReadTimeout  int    `mapstructure:"readTimeout" json:"readTimeout" yaml:"readTimeout"` // 秒
	WriteTimeout int    `mapstructure:"writeTimeout" json:"writeTimeout" yaml:"writeTimeout"`
}

// RankSyncConfig 阅读量排行榜同步任务配置
type RankSyncConfig struct {
	// Schedule 是 cron 表达式，为空时使用 constant.DefaultRankSyncSchedule。
	Schedule string `mapstructure:"schedule" json:"schedule" yaml:"schedule"`

	// TopN 是每次从 MySQL 取出、写入 Redis 排行榜 ZSet 的文章数量。
	// 排行榜只保留头部文章，trending 接口的分页上限也由它决定。
	TopN int `mapstructure:"topN" json:"topN" yaml:"topN"`
}
