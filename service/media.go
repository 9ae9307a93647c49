package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

const defaultContentType = "application/octet-stream"

// mediaUploader 把 multipart 文件写入对象存储，头像与缩略图共用
type mediaUploader struct {
	storage dependencies.ObjectStorage
	logger  *core.ZapLogger
	now     func() time.Time
}

func newMediaUploader(storage dependencies.ObjectStorage, logger *core.ZapLogger) *mediaUploader {
	return &mediaUploader{storage: storage, logger: logger, now: time.Now}
}

// objectKey 规则：<prefix><YYYYMMDD>/<ownerID>_<uuid><ext>
func (m *mediaUploader) objectKey(prefix string, ownerID uint64, filename string) string {
	return fmt.Sprintf("%s%s/%d_%s%s",
		prefix,
		m.now().Format("20060102"),
		ownerID,
		uuid.NewString(),
		strings.ToLower(filepath.Ext(filename)),
	)
}

// upload 上传单个文件，返回的 MediaRef.Title 为原始文件名
func (m *mediaUploader) upload(ctx context.Context, prefix string, ownerID uint64, fh *multipart.FileHeader) (entities.MediaRef, error) {
	if fh == nil || fh.Size == 0 {
		return entities.MediaRef{}, myErrors.ErrEmptyUpload
	}

	file, err := fh.Open()
	if err != nil {
		m.logger.Error("打开上传文件失败", zap.String("filename", fh.Filename), zap.Error(err))
		return entities.MediaRef{}, fmt.Errorf("打开上传文件 %s 失败: %w", fh.Filename, err)
	}
	defer file.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	key := m.objectKey(prefix, ownerID, fh.Filename)
	url, err := m.storage.UploadFile(ctx, key, file, fh.Size, contentType)
	if err != nil {
		return entities.MediaRef{}, fmt.Errorf("上传文件 %s 失败: %w", fh.Filename, err)
	}
	return entities.MediaRef{Title: fh.Filename, URL: url, ObjectKey: key}, nil
}

// removeBestEffort 删除旧对象，失败只记日志
func (m *mediaUploader) removeBestEffort(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := m.storage.DeleteObject(ctx, objectKey); err != nil {
		m.logger.Warn("清理对象存储中的旧文件失败", zap.String("objectKey", objectKey), zap.Error(err))
	}
}
