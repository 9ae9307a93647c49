package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	ArticlePublished string `mapstructure:"articlePublished" yaml:"articlePublished"` //  文章发布主题
	ArticleDeleted   string `mapstructure:"articleDeleted" yaml:"articleDeleted"`     //  文章删除主题
	UserFollowed     string `mapstructure:"userFollowed" yaml:"userFollowed"`         //  关注关系变更主题
	ArticleImport    string `mapstructure:"articleImport" yaml:"articleImport"`       //  批量导入文章主题（本服务消费）
}
