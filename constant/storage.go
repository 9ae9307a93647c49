package constant

// Redis Key
const (
	// ArticleReadsRankKey 文章阅读量排行榜，ZSet，member 为文章 ID，score 为阅读量
	ArticleReadsRankKey = "blog:article:reads_rank"
)

// COS 对象键前缀
const (
	COSObjectKeyPrefixAvatars    = "blog/avatars/"
	COSObjectKeyPrefixThumbnails = "blog/thumbnails/"
)

// 上传表单字段
const (
	FormFieldAvatar    = "avatar"
	FormFieldThumbnail = "thumbnail"
)
