package enums

// CommentRelation 标识评论与宿主的关系，视图层据此决定如何展示评论
type CommentRelation string

const (
	// CommentEmbedded 评论内嵌在宿主记录中（文章）
	CommentEmbedded CommentRelation = "embedded"
	// CommentReferenced 评论独立存储，宿主只保存 ID（帖子）
	CommentReferenced CommentRelation = "referenced"
)
