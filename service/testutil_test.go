package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/utils"
)

// setupTestDB 每个测试独享一个 SQLite 内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	// 内存库按连接隔离，只保留一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dependencies.AutoMigrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// fakeStorage 记录上传与删除的对象存储
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return errors.New("object not found")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

var _ dependencies.ObjectStorage = (*fakeStorage)(nil)

// testEnv 组装好的服务集合
type testEnv struct {
	db       *gorm.DB
	storage  *fakeStorage
	users    mysql.UserRepository
	articles ArticleService
	comments CommentService
	userSvc  UserService
	auth     AuthService
	posts    PostService
	postCmts PostCommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	logger := newTestLogger(t)
	storage := newFakeStorage()
	publisher := producer.NoopPublisher{}

	userRepo := mysql.NewUserRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	commentRepo := mysql.NewPostCommentRepository(db, logger)

	return &testEnv{
		db:       db,
		storage:  storage,
		users:    userRepo,
		articles: NewArticleService(db, articleRepo, userRepo, nil, storage, publisher, logger),
		comments: NewCommentService(db, articleRepo, userRepo, logger),
		userSvc:  NewUserService(db, userRepo, storage, publisher, logger),
		auth:     NewAuthService(db, userRepo, utils.NewTokenManager("test-secret", utils.DefaultSessionTTL), logger),
		posts:    NewPostService(db, postRepo, logger),
		postCmts: NewPostCommentService(db, postRepo, commentRepo, logger),
	}
}

// createUser 直接落库一个用户，跳过密码哈希
func (e *testEnv) createUser(t *testing.T, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		About:        "about " + username,
	}
	if err := e.users.CreateUser(context.Background(), e.db, user); err != nil {
		t.Fatalf("创建用户 %s 失败: %v", username, err)
	}
	return user
}

// multipartFile 构造一个真实的 multipart.FileHeader
func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("创建表单文件失败: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("写入表单文件失败: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("关闭表单失败: %v", err)
	}

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("解析表单失败: %v", err)
	}
	files := req.MultipartForm.File[field]
	if len(files) != 1 {
		t.Fatalf("期望 1 个文件，实际 %d", len(files))
	}
	return files[0]
}

func ptr[T any](v T) *T { return &v }

func words(n int) string {
	var b bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	return b.String()
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("初始化测试日志失败: %v", err)
	}
	return logger
}
