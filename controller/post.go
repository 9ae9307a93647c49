package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 帖子接口
type PostController struct {
	postService service.PostService
	logger      *core.ZapLogger
}

// NewPostController 创建 PostController
func NewPostController(postService service.PostService, logger *core.ZapLogger) *PostController {
	return &PostController{postService: postService, logger: logger}
}

// CreatePost 发帖
// @Summary      创建帖子
// @Description  作者为当前登录用户；标签会转小写、去重，并且必须在固定词表内。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        request body dto.PostRequest true "帖子内容"
// @Success      201 {object} vo.PostResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求参数无效或标签不合法"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Router       /api/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := ctrl.postService.CreatePost(c.Request.Context(), principal, &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "创建帖子失败")
		return
	}
	respondCreated(c, post, "帖子创建成功")
}

// EditPost 编辑帖子
// @Summary      编辑帖子
// @Description  整体替换标题、内容、概述、标签与封面，只有作者可以编辑。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Param        request body dto.PostRequest true "帖子内容"
// @Success      200 {object} vo.PostResponseWrapper "编辑成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求参数无效"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "不是帖子作者"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId} [put]
func (ctrl *PostController) EditPost(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := ctrl.postService.EditPost(c.Request.Context(), principal, postID, &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "编辑帖子失败")
		return
	}
	response.RespondSuccess(c, post, "帖子编辑成功")
}

// DeletePost 删除帖子
// @Summary      删除帖子
// @Tags         posts (帖子)
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      403 {object} vo.BaseResponseWrapper "不是帖子作者"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId} [delete]
func (ctrl *PostController) DeletePost(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	if err := ctrl.postService.DeletePost(c.Request.Context(), principal, postID); err != nil {
		respondServiceError(c, ctrl.logger, err, "删除帖子失败")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子删除成功")
}

// LikePost 点赞
// @Summary      点赞帖子
// @Tags         posts (帖子)
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "点赞成功"
// @Failure      400 {object} vo.BaseResponseWrapper "已经点赞"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId}/like [put]
func (ctrl *PostController) LikePost(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	post, err := ctrl.postService.LikePost(c.Request.Context(), principal, postID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "点赞失败")
		return
	}
	response.RespondSuccess(c, post, "点赞成功")
}

// UnlikePost 取消点赞
// @Summary      取消点赞
// @Tags         posts (帖子)
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "取消点赞成功"
// @Failure      400 {object} vo.BaseResponseWrapper "尚未点赞"
// @Failure      401 {object} vo.BaseResponseWrapper "未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId}/unlike [put]
func (ctrl *PostController) UnlikePost(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	post, err := ctrl.postService.UnlikePost(c.Request.Context(), principal, postID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "取消点赞失败")
		return
	}
	response.RespondSuccess(c, post, "取消点赞成功")
}

// ListPosts 帖子列表
// @Summary      获取全部帖子
// @Description  按创建时间倒序。
// @Tags         posts (帖子)
// @Produce      json
// @Success      200 {object} vo.PostListResponseWrapper "成功"
// @Router       /api/posts [get]
func (ctrl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctrl.postService.ListPosts(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取帖子列表失败")
		return
	}
	response.RespondSuccess(c, posts, "帖子列表获取成功")
}

// GetPost 帖子详情
// @Summary      获取帖子
// @Tags         posts (帖子)
// @Produce      json
// @Param        postId path uint64 true "帖子 ID"
// @Success      200 {object} vo.PostResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Router       /api/posts/{postId} [get]
func (ctrl *PostController) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	post, err := ctrl.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取帖子失败")
		return
	}
	response.RespondSuccess(c, post, "帖子获取成功")
}

// ListPostsByTag 按标签查询
// @Summary      按标签获取帖子
// @Tags         posts (帖子)
// @Produce      json
// @Param        tag path string true "标签" Enums(technology,programming,design,business,health,science,lifestyle,travel,food,education,entertainment,sports)
// @Success      200 {object} vo.PostListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "标签不在词表内"
// @Router       /api/posts/tags/{tag} [get]
func (ctrl *PostController) ListPostsByTag(c *gin.Context) {
	posts, err := ctrl.postService.ListPostsByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "按标签获取帖子失败")
		return
	}
	response.RespondSuccess(c, posts, "帖子列表获取成功")
}

// ListPostsByAuthor 按作者查询
// @Summary      获取指定作者的帖子
// @Tags         posts (帖子)
// @Produce      json
// @Param        authorId path uint64 true "作者 ID"
// @Success      200 {object} vo.PostListResponseWrapper "成功"
// @Router       /api/posts/author/{authorId} [get]
func (ctrl *PostController) ListPostsByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	posts, err := ctrl.postService.ListPostsByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "按作者获取帖子失败")
		return
	}
	response.RespondSuccess(c, posts, "帖子列表获取成功")
}

// ListPostsByMonth 按月份查询
// @Summary      获取某个月份发布的帖子
// @Description  只比较月份 (1-12)，不区分年份，按 UTC 计算。
// @Tags         posts (帖子)
// @Produce      json
// @Param        month path int true "月份" minimum(1) maximum(12)
// @Success      200 {object} vo.PostListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "月份无效"
// @Router       /api/posts/date/{month} [get]
func (ctrl *PostController) ListPostsByMonth(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "月份必须是整数")
		return
	}
	posts, err := ctrl.postService.ListPostsByMonth(c.Request.Context(), month)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "按月份获取帖子失败")
		return
	}
	response.RespondSuccess(c, posts, "帖子列表获取成功")
}

// RegisterRoutes 注册帖子路由，写操作需要登录
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup, requireSession gin.HandlerFunc) {
	posts := group.Group("/posts")
	{
		posts.GET("", ctrl.ListPosts)
		posts.GET("/:postId", ctrl.GetPost)
		posts.GET("/tags/:tag", ctrl.ListPostsByTag)
		posts.GET("/author/:authorId", ctrl.ListPostsByAuthor)
		posts.GET("/date/:month", ctrl.ListPostsByMonth)

		posts.POST("", requireSession, ctrl.CreatePost)
		posts.PUT("/:postId", requireSession, ctrl.EditPost)
		posts.DELETE("/:postId", requireSession, ctrl.DeletePost)
		posts.PUT("/:postId/like", requireSession, ctrl.LikePost)
		posts.PUT("/:postId/unlike", requireSession, ctrl.UnlikePost)
	}
}
