package controller

import (
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// CommentController 文章内嵌评论与帖子独立评论
type CommentController struct {
	commentService     service.CommentService
	postCommentService service.PostCommentService
	logger             *core.ZapLogger
}

// NewCommentController 创建 CommentController
func NewCommentController(commentService service.CommentService, postCommentService service.PostCommentService, logger *core.ZapLogger) *CommentController {
	return &CommentController{
		commentService:     commentService,
		postCommentService: postCommentService,
		logger:             logger,
	}
}

// AddArticleComment 文章评论
// @Summary      发表文章评论
// @Description  评论作者取请求体中的 author_id，可以为空。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Param        request body dto.AddCommentRequest true "评论内容"
// @Success      201 {object} vo.CommentResponseWrapper "评论成功"
// @Failure      400 {object} vo.BaseResponseWrapper "内容为空"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/articles/{id}/comment [post]
func (ctrl *CommentController) AddArticleComment(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := ctrl.commentService.AddComment(c.Request.Context(), articleID, req.Content, req.AuthorID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "发表评论失败")
		return
	}
	respondCreated(c, comment, "评论成功")
}

// AddArticleReply 回复文章评论
// @Summary      回复文章评论
// @Description  回复作者为当前登录用户。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Param        commentId path string true "评论 ID"
// @Param        request body dto.AddReplyRequest true "回复内容"
// @Success      201 {object} vo.ReplyResponseWrapper "回复成功"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "文章或评论不存在"
// @Router       /api/articles/{id}/comments/{commentId}/reply [post]
func (ctrl *CommentController) AddArticleReply(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	authorID := principal.UserID
	reply, err := ctrl.commentService.AddReply(c.Request.Context(), articleID, c.Param("commentId"), req.Content, &authorID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "回复评论失败")
		return
	}
	respondCreated(c, reply, "回复成功")
}

// AddPostComment 帖子评论
// @Summary      发表帖子评论
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Param        request body dto.PostCommentRequest true "评论内容"
// @Success      201 {object} vo.PostCommentResponseWrapper "评论成功"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/comments/{postId} [post]
func (ctrl *CommentController) AddPostComment(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	var req dto.PostCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := ctrl.postCommentService.AddComment(c.Request.Context(), principal, postID, req.Text)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "发表帖子评论失败")
		return
	}
	respondCreated(c, comment, "评论成功")
}

// AddPostReply 回复帖子评论
// @Summary      回复帖子评论
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        commentId path uint64 true "父评论 ID"
// @Param        request body dto.PostCommentRequest true "回复内容"
// @Success      201 {object} vo.PostCommentResponseWrapper "回复成功"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/comments/reply/{commentId} [post]
func (ctrl *CommentController) AddPostReply(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	parentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	var req dto.PostCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := ctrl.postCommentService.AddReply(c.Request.Context(), principal, parentID, req.Text)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "回复帖子评论失败")
		return
	}
	respondCreated(c, reply, "回复成功")
}

// ListPostComments 帖子评论列表
// @Summary      获取帖子的全部评论
// @Description  包含回复，按创建顺序返回；通过 parent_id 与 replies 还原树形结构。
// @Tags         comments (评论)
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Success      200 {object} vo.PostCommentListResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId}/comments [get]
func (ctrl *CommentController) ListPostComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	comments, err := ctrl.postCommentService.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取帖子评论失败")
		return
	}
	response.RespondSuccess(c, comments, "帖子评论获取成功")
}

// RegisterRoutes 注册评论路由，requireSession 为会话校验中间件
func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup, requireSession gin.HandlerFunc) {
	group.POST("/articles/:id/comment", ctrl.AddArticleComment)
	group.POST("/articles/:id/comments/:commentId/reply", requireSession, ctrl.AddArticleReply)
	group.GET("/posts/:postId/comments", ctrl.ListPostComments)

	comments := group.Group("/comments", requireSession)
	{
		comments.POST("/:postId", ctrl.AddPostComment)
		comments.POST("/reply/:commentId", ctrl.AddPostReply)
	}
}
