package dto

// CoverImageInput 帖子封面
type CoverImageInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// PostRequest 创建与编辑（整体替换）帖子共用的请求体
type PostRequest struct {
	Title      string           `json:"title" example:"周末徒步路线"`
	Content    string           `json:"content"`
	Overview   string           `json:"overview"`
	Tags       []string         `json:"tags" example:"travel,sports"`
	CoverImage *CoverImageInput `json:"cover_image,omitempty"`
}

// PostCommentRequest 帖子评论或回复
type PostCommentRequest struct {
	Text string `json:"text" example:"路线很棒"`
}
