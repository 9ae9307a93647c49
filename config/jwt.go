package config

// JWTConfig 会话令牌配置
type JWTConfig struct {
	SecretKey string `mapstructure:"secretKey" json:"-" yaml:"secretKey"`
	// TTLHours 令牌有效期，默认 24 小时
	TTLHours int `mapstructure:"ttlHours" json:"ttlHours" yaml:"ttlHours"`
}
