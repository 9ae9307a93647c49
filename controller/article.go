package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// ArticleController 文章相关接口
type ArticleController struct {
	articleService service.ArticleService
	logger         *core.ZapLogger
}

// NewArticleController 创建 ArticleController
func NewArticleController(articleService service.ArticleService, logger *core.ZapLogger) *ArticleController {
	return &ArticleController{articleService: articleService, logger: logger}
}

// CreateArticle 创建文章
// @Summary      创建文章
// @Description  title、overview、category、content 必填，author 与 author_id 至少提供一个。slug 与阅读时长由服务端计算。
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateArticleRequest true "文章内容"
// @Success      201 {object} vo.ArticleResponseWrapper "文章创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求参数无效"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/articles [post]
func (ctrl *ArticleController) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := ctrl.articleService.CreateArticle(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "创建文章失败")
		return
	}
	respondCreated(c, article, "文章创建成功")
}

// BulkCreateArticles 批量创建文章
// @Summary      批量创建文章
// @Description  请求体必须是文章数组；任意一篇校验失败则全部不写入。
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        request body []dto.CreateArticleRequest true "文章数组"
// @Success      201 {object} vo.ArticleListResponseWrapper "批量创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求体不是数组或某篇文章无效"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/articles/multi [post]
func (ctrl *ArticleController) BulkCreateArticles(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "读取请求体失败")
		return
	}
	reqs, err := dto.DecodeArticleBatch(body)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "解析文章列表失败")
		return
	}
	articles, err := ctrl.articleService.BulkCreateArticles(c.Request.Context(), reqs)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "批量创建文章失败")
		return
	}
	respondCreated(c, articles, "批量创建文章成功")
}

// ListArticles 文章列表
// @Summary      获取全部文章
// @Tags         articles (文章)
// @Produce      json
// @Success      200 {object} vo.ArticleListResponseWrapper "成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/articles [get]
func (ctrl *ArticleController) ListArticles(c *gin.Context) {
	articles, err := ctrl.articleService.ListArticles(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取文章列表失败")
		return
	}
	response.RespondSuccess(c, articles, "文章列表获取成功")
}

// RandomArticles 随机文章
// @Summary      随机获取文章
// @Description  随机选取最多 6 个不同分类，每个分类返回一篇文章。
// @Tags         articles (文章)
// @Produce      json
// @Success      200 {object} vo.ArticleListResponseWrapper "成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/articles/random [get]
func (ctrl *ArticleController) RandomArticles(c *gin.Context) {
	articles, err := ctrl.articleService.RandomArticles(c.Request.Context(), constant.RandomArticleCount)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取随机文章失败")
		return
	}
	response.RespondSuccess(c, articles, "随机文章获取成功")
}

// TrendingArticles 热门文章
// @Summary      获取阅读量最高的文章
// @Tags         articles (文章)
// @Produce      json
// @Param        limit query int false "返回数量，默认 10，最大 50" minimum(1) maximum(50)
// @Success      200 {object} vo.ArticleListResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "limit 格式错误"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/articles/trending [get]
func (ctrl *ArticleController) TrendingArticles(c *gin.Context) {
	limit := constant.DefaultTrendingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "limit 必须是整数")
			return
		}
		limit = n
	}
	articles, err := ctrl.articleService.TrendingArticles(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取热门文章失败")
		return
	}
	response.RespondSuccess(c, articles, "热门文章获取成功")
}

// GetArticle 文章详情
// @Summary      获取文章详情
// @Description  每次调用阅读量 +1，返回值已包含本次阅读。
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.ArticleResponseWrapper "成功"
// @Failure      400 {object} vo.BaseResponseWrapper "ID 格式错误"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/articles/{id} [get]
func (ctrl *ArticleController) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	article, err := ctrl.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取文章失败")
		return
	}
	response.RespondSuccess(c, article, "文章获取成功")
}

// UpdateArticle 局部更新文章
// @Summary      修改文章
// @Description  只修改请求中出现的字段；出现的字段即使为空字符串也会覆盖，必填字段除外。
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Param        request body dto.UpdateArticleRequest true "需要修改的字段"
// @Success      200 {object} vo.ArticleResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求参数无效"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/articles/{id} [patch]
func (ctrl *ArticleController) UpdateArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := ctrl.articleService.UpdateArticle(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "修改文章失败")
		return
	}
	response.RespondSuccess(c, article, "文章修改成功")
}

// DeleteArticle 删除文章
// @Summary      删除文章
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/articles/{id} [delete]
func (ctrl *ArticleController) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		respondServiceError(c, ctrl.logger, err, "删除文章失败")
		return
	}
	response.RespondSuccess[any](c, nil, "文章删除成功")
}

// UploadThumbnail 上传文章缩略图
// @Summary      上传文章缩略图
// @Tags         articles (文章)
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path uint64 true "文章 ID"
// @Param        thumbnail formData file true "缩略图文件"
// @Success      200 {object} vo.ArticleResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "未上传文件"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/articles/{id}/thumbnail [patch]
func (ctrl *ArticleController) UploadThumbnail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile(constant.FormFieldThumbnail)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未上传缩略图文件")
		return
	}
	article, err := ctrl.articleService.UploadThumbnail(c.Request.Context(), id, file)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "上传缩略图失败")
		return
	}
	response.RespondSuccess(c, article, "缩略图上传成功")
}

// ListArticlesByAuthor 用户的文章
// @Summary      获取指定用户的文章
// @Tags         articles (文章)
// @Produce      json
// @Param        user_id path uint64 true "用户 ID"
// @Success      200 {object} vo.ArticleListResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/user/articles/{user_id} [get]
func (ctrl *ArticleController) ListArticlesByAuthor(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	articles, err := ctrl.articleService.ListArticlesByAuthor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取用户文章失败")
		return
	}
	response.RespondSuccess(c, articles, "用户文章获取成功")
}

// RegisterRoutes 注册文章路由
func (ctrl *ArticleController) RegisterRoutes(group *gin.RouterGroup) {
	articles := group.Group("/articles")
	{
		articles.POST("", ctrl.CreateArticle)                   // POST /api/articles
		articles.POST("/multi", ctrl.BulkCreateArticles)        // POST /api/articles/multi
		articles.GET("", ctrl.ListArticles)                     // GET /api/articles
		articles.GET("/random", ctrl.RandomArticles)            // GET /api/articles/random
		articles.GET("/trending", ctrl.TrendingArticles)        // GET /api/articles/trending
		articles.GET("/:id", ctrl.GetArticle)                   // GET /api/articles/:id
		articles.PATCH("/:id", ctrl.UpdateArticle)              // PATCH /api/articles/:id
		articles.DELETE("/:id", ctrl.DeleteArticle)             // DELETE /api/articles/:id
		articles.PATCH("/:id/thumbnail", ctrl.UploadThumbnail)  // PATCH /api/articles/:id/thumbnail
	}
	group.GET("/user/articles/:user_id", ctrl.ListArticlesByAuthor) // GET /api/user/articles/:user_id
}
