package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// UserController 用户资料、认证状态与关注关系
type UserController struct {
	userService service.UserService
	logger      *core.ZapLogger
}

// NewUserController 创建 UserController
func NewUserController(userService service.UserService, logger *core.ZapLogger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// ListUsers 用户列表
// @Summary      获取全部用户
// @Tags         users (用户)
// @Produce      json
// @Success      200 {object} vo.UserListResponseWrapper "成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取用户列表失败")
		return
	}
	response.RespondSuccess(c, users, "用户列表获取成功")
}

// GetUser 用户详情
// @Summary      获取用户
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户 ID"
// @Success      200 {object} vo.UserResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/user/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "获取用户失败")
		return
	}
	response.RespondSuccess(c, user, "用户获取成功")
}

// UpdateProfile 修改个人资料
// @Summary      修改个人资料
// @Description  只修改请求中出现的字段，出现的空字符串会清空该字段。
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "用户 ID"
// @Param        request body dto.UpdateProfileRequest true "资料字段"
// @Success      200 {object} vo.UserResponseWrapper "修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "请求参数无效"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/profile/create/{id} [patch]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := ctrl.userService.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "修改个人资料失败")
		return
	}
	response.RespondSuccess(c, user, "个人资料修改成功")
}

// UploadAvatar 上传头像
// @Summary      上传头像
// @Tags         users (用户)
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path uint64 true "用户 ID"
// @Param        avatar formData file true "头像文件"
// @Success      200 {object} vo.UserResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "未上传文件"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/profile/avatar/{id} [patch]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile(constant.FormFieldAvatar)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未上传头像文件")
		return
	}
	user, err := ctrl.userService.UploadAvatar(c.Request.Context(), id, file)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "上传头像失败")
		return
	}
	response.RespondSuccess(c, user, "头像上传成功")
}

// VerifyUser 认证用户
// @Summary      标记用户为已认证
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户 ID"
// @Success      200 {object} vo.UserResponseWrapper "成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/verify/{id} [patch]
func (ctrl *UserController) VerifyUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := ctrl.userService.VerifyUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "认证用户失败")
		return
	}
	response.RespondSuccess(c, user, "用户已认证")
}

// Follow 关注
// @Summary      关注用户
// @Description  userId 关注 followUserId，双方的关注列表同时更新。
// @Tags         follow (关注)
// @Produce      json
// @Param        userId path uint64 true "关注者 ID"
// @Param        followUserId path uint64 true "被关注者 ID"
// @Success      200 {object} vo.FollowResponseWrapper "关注成功"
// @Failure      400 {object} vo.BaseResponseWrapper "关注自己或已经关注"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/follow/{userId}/{followUserId} [post]
func (ctrl *UserController) Follow(c *gin.Context) {
	followerID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	followeeID, ok := parseIDParam(c, "followUserId")
	if !ok {
		return
	}
	result, err := ctrl.userService.Follow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "关注失败")
		return
	}
	response.RespondSuccess(c, result, "关注成功")
}

// Unfollow 取消关注
// @Summary      取消关注
// @Tags         follow (关注)
// @Produce      json
// @Param        userId path uint64 true "关注者 ID"
// @Param        followUserId path uint64 true "被关注者 ID"
// @Success      200 {object} vo.FollowResponseWrapper "取消关注成功"
// @Failure      400 {object} vo.BaseResponseWrapper "尚未关注"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/follow/{userId}/{followUserId} [delete]
func (ctrl *UserController) Unfollow(c *gin.Context) {
	followerID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	followeeID, ok := parseIDParam(c, "followUserId")
	if !ok {
		return
	}
	result, err := ctrl.userService.Unfollow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		respondServiceError(c, ctrl.logger, err, "取消关注失败")
		return
	}
	response.RespondSuccess(c, result, "取消关注成功")
}

// RegisterRoutes 注册用户相关路由
func (ctrl *UserController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/users", ctrl.ListUsers)
	group.GET("/user/:id", ctrl.GetUser)
	group.PATCH("/profile/create/:id", ctrl.UpdateProfile)
	group.PATCH("/profile/avatar/:id", ctrl.UploadAvatar)
	group.PATCH("/verify/:id", ctrl.VerifyUser)
	group.POST("/follow/:userId/:followUserId", ctrl.Follow)
	group.DELETE("/follow/:userId/:followUserId", ctrl.Unfollow)
}
