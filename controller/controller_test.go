package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/pkg/middleware"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/utils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("初始化测试日志失败: %v", err)
	}
	return logger
}

// newTestRouter 用内存 SQLite 组装完整的 /api 路由，对象存储使用未启用的实现
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := dependencies.AutoMigrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	logger := newTestLogger(t)
	storage, err := dependencies.InitCOS(nil, logger)
	if err != nil {
		t.Fatalf("InitCOS() 返回错误: %v", err)
	}
	publisher := producer.NoopPublisher{}
	tokens := utils.NewTokenManager("controller-test-secret", utils.DefaultSessionTTL)

	userRepo := mysql.NewUserRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewPostCommentRepository(db, logger)

	articleService := service.NewArticleService(db, articleRepo, userRepo, nil, storage, publisher, logger)
	commentService := service.NewCommentService(db, articleRepo, userRepo, logger)
	userService := service.NewUserService(db, userRepo, storage, publisher, logger)
	authService := service.NewAuthService(db, userRepo, tokens, logger)
	postService := service.NewPostService(db, postRepo, logger)
	postCommentService := service.NewPostCommentService(db, postRepo, commentRepo, logger)

	r := gin.New()
	r.Use(commonMiddleware.ErrorHandlingMiddleware(logger))
	api := r.Group("/api")
	requireSession := middleware.RequireSession(tokens)
	NewArticleController(articleService, logger).RegisterRoutes(api)
	NewCommentController(commentService, postCommentService, logger).RegisterRoutes(api, requireSession)
	NewAuthController(authService, logger).RegisterRoutes(api)
	NewUserController(userService, logger).RegisterRoutes(api)
	NewPostController(postService, logger).RegisterRoutes(api, requireSession)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s 响应不是 JSON: %s", method, path, w.Body.String())
		}
	}
	return w, env
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == constant.SessionCookieName {
			return c
		}
	}
	t.Fatalf("响应中没有会话 Cookie")
	return nil
}

func signup(t *testing.T, r *gin.Engine, username string) (*http.Cookie, uint64) {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"Strong1!"}`
	w, env := doRequest(t, r, http.MethodPost, "/api/auth/signup", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("注册 %s 状态码 = %d, body = %s", username, w.Code, w.Body.String())
	}
	var auth vo.AuthVO
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("解析注册结果失败: %v", err)
	}
	return sessionCookie(t, w), auth.User.ID
}

func TestArticleRoutes_StatusMapping(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   int
		wantPrefix string
	}{
		{name: "删除不存在的文章", method: http.MethodDelete, path: "/api/articles/999", wantStatus: http.StatusNotFound, wantCode: int(response.ErrCodeClientResourceNotFound)},
		{name: "获取不存在的文章", method: http.MethodGet, path: "/api/articles/999", wantStatus: http.StatusNotFound, wantCode: int(response.ErrCodeClientResourceNotFound)},
		{name: "修改不存在的文章且标题为空", method: http.MethodPatch, path: "/api/articles/999", body: `{"title":""}`, wantStatus: http.StatusNotFound, wantCode: int(response.ErrCodeClientResourceNotFound)},
		{name: "ID 不是数字", method: http.MethodGet, path: "/api/articles/abc", wantStatus: http.StatusBadRequest, wantCode: int(response.ErrCodeClientInvalidInput), wantPrefix: myErrors.ErrInvalidInput.Error()},
		{name: "请求体不是 JSON", method: http.MethodPatch, path: "/api/articles/1", body: `{`, wantStatus: http.StatusBadRequest, wantCode: int(response.ErrCodeClientInvalidInput), wantPrefix: myErrors.ErrInvalidInput.Error()},
		{name: "批量创建请求体不是数组", method: http.MethodPost, path: "/api/articles/multi", body: `{"title":"x"}`, wantStatus: http.StatusBadRequest, wantCode: int(response.ErrCodeClientInvalidInput)},
		{name: "创建文章缺少必填字段", method: http.MethodPost, path: "/api/articles", body: `{"title":"x","author":"a"}`, wantStatus: http.StatusBadRequest, wantCode: int(response.ErrCodeClientInvalidInput)},
		{name: "用户不存在", method: http.MethodGet, path: "/api/user/articles/5", wantStatus: http.StatusNotFound, wantCode: int(response.ErrCodeClientResourceNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doRequest(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("状态码 = %d, 期望 %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if env.Code != tt.wantCode {
				t.Errorf("业务码 = %d, 期望 %d", env.Code, tt.wantCode)
			}
			if !strings.HasPrefix(env.Message, tt.wantPrefix) {
				t.Errorf("message = %q, 期望以 %q 开头", env.Message, tt.wantPrefix)
			}
		})
	}
}

func TestArticleRoutes_CreateAndRead(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"Hello Gin","overview":"o","category":"go","content":"` + strings.Repeat("word ", 250) + `","author":"Ada"}`
	w, env := doRequest(t, r, http.MethodPost, "/api/articles", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("创建文章状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	var created vo.ArticleVO
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("解析文章失败: %v", err)
	}
	if created.Slug != "hello-gin" || created.ReadTime != 2 {
		t.Errorf("文章 = %+v", created)
	}

	path := "/api/articles/" + idPath(created.ID)
	for want := int64(1); want <= 2; want++ {
		w, env = doRequest(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("获取文章状态码 = %d", w.Code)
		}
		var got vo.ArticleVO
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("解析文章失败: %v", err)
		}
		if got.Reads != want {
			t.Errorf("第 %d 次读取 reads = %d", want, got.Reads)
		}
	}

	w, _ = doRequest(t, r, http.MethodPatch, path, `{"author":""}`)
	if w.Code != http.StatusOK {
		t.Errorf("修改文章状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	w, _ = doRequest(t, r, http.MethodDelete, path, "")
	if w.Code != http.StatusOK {
		t.Errorf("删除文章状态码 = %d", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodDelete, path, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("重复删除状态码 = %d, 期望 404", w.Code)
	}
}

func TestAuthRoutes(t *testing.T) {
	r := newTestRouter(t)

	cookie, _ := signup(t, r, "ada")
	if !cookie.HttpOnly {
		t.Error("会话 Cookie 应为 HttpOnly")
	}
	if cookie.MaxAge != int(utils.DefaultSessionTTL.Seconds()) {
		t.Errorf("Cookie MaxAge = %d", cookie.MaxAge)
	}

	w, env := doRequest(t, r, http.MethodPost, "/api/auth/signup", `{"username":"ada2","email":"ada@example.com","password":"Strong1!"}`)
	if w.Code != http.StatusBadRequest || env.Code != errCodeClientConflict {
		t.Errorf("重复邮箱 状态码 = %d 业务码 = %d", w.Code, env.Code)
	}

	w, _ = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"Wrong1!!"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("密码错误状态码 = %d, 期望 401", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"Strong1!"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("登录状态码 = %d", w.Code)
	}
	sessionCookie(t, w)

	w, _ = doRequest(t, r, http.MethodPost, "/api/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Errorf("退出状态码 = %d", w.Code)
	}
	if c := sessionCookie(t, w); c.MaxAge >= 0 {
		t.Errorf("退出后 Cookie 应立即过期, MaxAge = %d", c.MaxAge)
	}
}

func TestPostRoutes_SessionAndOwnership(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/posts", `{"title":"t","content":"c"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未登录发帖状态码 = %d, 期望 401", w.Code)
	}

	owner, _ := signup(t, r, "owner")
	other, _ := signup(t, r, "other")

	w, env := doRequest(t, r, http.MethodPost, "/api/posts", `{"title":"t","content":"c","tags":["Travel"]}`, owner)
	if w.Code != http.StatusCreated {
		t.Fatalf("发帖状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	var post vo.PostVO
	if err := json.Unmarshal(env.Data, &post); err != nil {
		t.Fatalf("解析帖子失败: %v", err)
	}
	path := "/api/posts/" + idPath(post.ID)

	w, _ = doRequest(t, r, http.MethodPut, path, `{"title":"x","content":"y"}`, other)
	if w.Code != http.StatusForbidden {
		t.Errorf("非作者编辑状态码 = %d, 期望 403", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPut, path+"/like", "", other)
	if w.Code != http.StatusOK {
		t.Errorf("点赞状态码 = %d", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodPut, path+"/like", "", other)
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复点赞状态码 = %d, 期望 400", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPost, "/api/comments/"+idPath(post.ID), `{"text":"hi"}`, other)
	if w.Code != http.StatusCreated {
		t.Errorf("评论状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	w, env = doRequest(t, r, http.MethodGet, path+"/comments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("评论列表状态码 = %d", w.Code)
	}
	var comments []vo.PostCommentVO
	if err := json.Unmarshal(env.Data, &comments); err != nil || len(comments) != 1 {
		t.Errorf("评论列表 = %s, err = %v", env.Data, err)
	}

	w, _ = doRequest(t, r, http.MethodGet, "/api/posts/tags/not-a-real-tag", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("无效标签状态码 = %d, 期望 400", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodGet, "/api/posts/date/13", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("无效月份状态码 = %d, 期望 400", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodDelete, path, "", owner)
	if w.Code != http.StatusOK {
		t.Errorf("作者删除状态码 = %d", w.Code)
	}
}

func TestFollowRoutes(t *testing.T) {
	r := newTestRouter(t)
	_, aliceID := signup(t, r, "alice")
	_, bobID := signup(t, r, "bob")

	path := "/api/follow/" + idPath(aliceID) + "/" + idPath(bobID)
	w, _ := doRequest(t, r, http.MethodPost, path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("关注状态码 = %d, body = %s", w.Code, w.Body.String())
	}
	w, _ = doRequest(t, r, http.MethodPost, path, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复关注状态码 = %d, 期望 400", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodDelete, path, "")
	if w.Code != http.StatusOK {
		t.Errorf("取消关注状态码 = %d", w.Code)
	}
	w, _ = doRequest(t, r, http.MethodPost, "/api/follow/"+idPath(aliceID)+"/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("关注不存在的用户状态码 = %d, 期望 404", w.Code)
	}
}

func idPath(id uint64) string {
	return strconv.FormatUint(id, 10)
}
