package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/pkg/authz"
)

// 通用响应包之外的业务码
const (
	errCodeClientConflict  = 40002
	errCodeClientForbidden = 40301
)

// respondServiceError 业务错误原样返回消息；未归类的错误记录日志，只返回 fallback
func respondServiceError(c *gin.Context, logger *core.ZapLogger, err error, fallback string) {
	switch {
	case errors.Is(err, myErrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, err.Error())
	case errors.Is(err, myErrors.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, myErrors.ErrConflict):
		response.RespondError(c, http.StatusBadRequest, errCodeClientConflict, err.Error())
	case errors.Is(err, myErrors.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, errCodeClientForbidden, err.Error())
	case errors.Is(err, myErrors.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, err.Error())
	default:
		logger.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, fallback)
	}
}

// respondCreated 与 RespondSuccess 相同的响应体，状态码为 201
func respondCreated[T any](c *gin.Context, data T, msg string) {
	c.JSON(http.StatusCreated, response.APIResponse[T]{Code: 0, Message: msg, Data: data})
}

// parseIDParam 解析路径中的数字 ID，失败时直接写 400
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput,
			myErrors.ErrInvalidInput.Error()+": "+name)
		return 0, false
	}
	return id, true
}

// bindJSON 绑定 JSON 请求体，失败时直接写 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput,
			myErrors.ErrInvalidInput.Error()+": "+err.Error())
		return false
	}
	return true
}

// principalOf 读取 RequireSession 写入的调用方，缺失时写 401
func principalOf(c *gin.Context) (authz.Principal, bool) {
	p, ok := authz.FromContext(c.Request.Context())
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "未登录，请先登录")
	}
	return p, ok
}
