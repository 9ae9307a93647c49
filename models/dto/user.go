package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" example:"ada"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"Strong1!"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"Strong1!"`
}

// UpdateProfileRequest 局部更新个人资料，nil 表示不修改
type UpdateProfileRequest struct {
	About        *string `json:"about"`
	Occupation   *string `json:"occupation"`
	Location     *string `json:"location"`
	TwitterURL   *string `json:"twitter_url"`
	InstagramURL *string `json:"instagram_url"`
	FacebookURL  *string `json:"facebook_url"`
	YoutubeURL   *string `json:"youtube_url"`
	WhatsappURL  *string `json:"whatsapp_url"`
	LinkedinURL  *string `json:"linkedin_url"`
}

// IsEmpty 没有任何字段需要更新
func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.About == nil && r.Occupation == nil && r.Location == nil &&
		r.TwitterURL == nil && r.InstagramURL == nil && r.FacebookURL == nil &&
		r.YoutubeURL == nil && r.WhatsappURL == nil && r.LinkedinURL == nil
}
