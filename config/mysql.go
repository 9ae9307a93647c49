package config

// SourceConfig 单个数据库源（主库或从库）
type SourceConfig struct {
	DSN string `mapstructure:"dsn" json:"-" yaml:"dsn"`
	// 以下为可选覆盖项，nil 表示沿用 MySQLConfig 中的共享设置
	MaxIdleConns    *int `mapstructure:"max_idle_conns,omitempty" json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	MaxOpenConns    *int `mapstructure:"max_open_conns,omitempty" json:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`
	ConnMaxLifetime *int `mapstructure:"conn_max_lifetime,omitempty" json:"conn_max_lifetime,omitempty" yaml:"conn_max_lifetime,omitempty"` // 秒
}

// MySQLConfig 主库 + 从库配置，Read 为空时不启用读写分离
type MySQLConfig struct {
	Write SourceConfig   `mapstructure:"write" json:"write" yaml:"write"`
	Read  []SourceConfig `mapstructure:"read" json:"read" yaml:"read"`

	SharedMaxIdleConns    int `mapstructure:"max_idle_conns" json:"max_idle_conns" yaml:"max_idle_conns"`
	SharedMaxOpenConns    int `mapstructure:"max_open_conns" json:"max_open_conns" yaml:"max_open_conns"`
	SharedConnMaxLifetime int `mapstructure:"conn_max_lifetime" json:"conn_max_lifetime" yaml:"conn_max_lifetime"` // 秒
}
