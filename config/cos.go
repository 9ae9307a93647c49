package config

// COSConfig 腾讯云对象存储配置，头像和文章缩略图都上传到同一个存储桶
type COSConfig struct {
	SecretID   string `mapstructure:"secretId" json:"-" yaml:"secretId"`
	SecretKey  string `mapstructure:"secretKey" json:"-" yaml:"secretKey"`
	BucketName string `mapstructure:"bucketName" json:"bucketName" yaml:"bucketName"`
	AppID      string `mapstructure:"appId" json:"appId" yaml:"appId"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	// BaseURL 可选，CDN 或自定义域名；为空时使用存储桶默认域名
	BaseURL string `mapstructure:"baseUrl" json:"baseUrl" yaml:"baseUrl"`
}
