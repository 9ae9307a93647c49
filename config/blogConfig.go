package config

import "github.com/Xushengqwer/go-common/config"

// BlogConfig 博客服务的根配置，对应 config/config.*.yaml
type BlogConfig struct {
	ZapConfig      config.ZapConfig     `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig  config.GormLogConfig `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig   config.ServerConfig  `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig   config.TracerConfig  `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	JWTConfig      JWTConfig            `mapstructure:"jwtConfig" json:"jwtConfig" yaml:"jwtConfig"`
	MySQLConfig    MySQLConfig          `mapstructure:"mysqlConfig" json:"mysqlConfig" yaml:"mysqlConfig"`
	RedisConfig    RedisConfig          `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig    KafkaConfig          `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	COSConfig      COSConfig            `mapstructure:"mediaCosConfig" json:"mediaCosConfig" yaml:"mediaCosConfig"`
	RankSyncConfig RankSyncConfig       `mapstructure:"rankSyncConfig" json:"rankSyncConfig" yaml:"rankSyncConfig"`
}
