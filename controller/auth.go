package controller

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// AuthController 注册、登录与退出
type AuthController struct {
	authService service.AuthService
	logger      *core.ZapLogger
}

// NewAuthController 创建 AuthController
func NewAuthController(authService service.AuthService, logger *core.ZapLogger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// setSessionCookie 令牌写入 http-only Cookie，有效期与令牌一致
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constant.SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
}

// Signup 注册
// @Summary      注册新用户
// @Description  密码 8 到 72 字节，需同时包含大小写字母、数字和特殊字符 (@$!%*?&)。成功后写入会话 Cookie。
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} vo.AuthResponseWrapper "注册成功"
// @Failure      400 {object} vo.BaseResponseWrapper "参数无效、弱密码或用户名/邮箱已存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "注册失败")
		return
	}
	setSessionCookie(c, result.Token, ctrl.authService.SessionTTL())
	respondCreated(c, result, "注册成功")
}

// Login 登录
// @Summary      用户登录
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} vo.AuthResponseWrapper "登录成功"
// @Failure      400 {object} vo.BaseResponseWrapper "参数无效"
// @Failure      401 {object} vo.BaseResponseWrapper "邮箱不存在或密码错误"
// @Router       /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "登录失败")
		return
	}
	setSessionCookie(c, result.Token, ctrl.authService.SessionTTL())
	response.RespondSuccess(c, result, "登录成功")
}

// Logout 退出登录
// @Summary      退出登录
// @Description  清除会话 Cookie。令牌本身无状态，过期前仍然有效。
// @Tags         auth (认证)
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "已退出"
// @Router       /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constant.SessionCookieName, "", -1, "/", "", false, true)
	response.RespondSuccess[any](c, nil, "已退出登录")
}

// RegisterRoutes 注册认证路由
func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")
	{
		auth.POST("/signup", ctrl.Signup)
		auth.POST("/login", ctrl.Login)
		auth.POST("/logout", ctrl.Logout)
	}
}
