package dependencies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
)

// ErrStorageDisabled 未配置对象存储时上传接口返回该错误
var ErrStorageDisabled = errors.New("对象存储未配置，上传功能不可用")

// ObjectStorage 头像、缩略图上传所需的对象存储能力
type ObjectStorage interface {
	// UploadFile 上传 reader 中的内容，返回对象的公开访问 URL。objectKey 由调用方生成。
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	// DeleteObject 删除对象
	DeleteObject(ctx context.Context, objectKey string) error
}

type cosClient struct {
	client              *cos.Client
	publicAccessURLBase *url.URL
	logger              *core.ZapLogger
}

// InitCOS 初始化腾讯云 COS 客户端。未配置存储桶时返回一个总是报 ErrStorageDisabled 的实现。
func InitCOS(cfg *config.COSConfig, logger *core.ZapLogger) (ObjectStorage, error) {
	if cfg == nil || cfg.BucketName == "" {
		logger.Warn("未配置 COS 存储桶，头像与缩略图上传将不可用")
		return disabledStorage{}, nil
	}
	if cfg.SecretID == "" || cfg.SecretKey == "" || cfg.AppID == "" || cfg.Region == "" {
		logger.Error("COS 配置不完整", zap.String("bucket", cfg.BucketName), zap.String("region", cfg.Region))
		return nil, fmt.Errorf("COS 配置不完整，缺少关键字段 (SecretID, SecretKey, AppID, Region)")
	}

	sdkBucketURLStr := fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region)
	sdkURL, err := url.Parse(sdkBucketURLStr)
	if err != nil {
		return nil, fmt.Errorf("解析 COS 存储桶 URL '%s' 失败: %w", sdkBucketURLStr, err)
	}

	publicBase := sdkURL
	if cfg.BaseURL != "" {
		pu, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("解析 COS 公共访问 BaseURL '%s' 失败: %w", cfg.BaseURL, err)
		}
		publicBase = pu
	}

	// 签名 Transport 包在 otelhttp 外层，COS 请求会出现在调用链路中
	client := cos.NewClient(&cos.BaseURL{BucketURL: sdkURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})

	logger.Info("COS 客户端初始化成功",
		zap.String("bucket", cfg.BucketName),
		zap.String("region", cfg.Region),
		zap.String("publicBaseURL", publicBase.String()),
	)
	return &cosClient{client: client, publicAccessURLBase: publicBase, logger: logger}, nil
}

// buildPublicObjectURL 拼接对象的公开访问 URL
func (c *cosClient) buildPublicObjectURL(objectKey string) string {
	basePath := c.publicAccessURLBase.Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	finalURL := *c.publicAccessURLBase
	finalURL.Path = basePath + strings.TrimPrefix(objectKey, "/")
	return finalURL.String()
}

func (c *cosClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	}
	resp, err := c.client.Object.Put(ctx, objectKey, reader, opts)
	if err != nil {
		c.logger.Error("COS 文件上传失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传文件 '%s' 到 COS 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("COS 文件上传返回非 200 状态码",
			zap.String("objectKey", objectKey),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("COS 文件上传失败，状态码: %d", resp.StatusCode)
	}

	publicURL := c.buildPublicObjectURL(objectKey)
	c.logger.Info("COS 文件上传成功", zap.String("objectKey", objectKey), zap.String("url", publicURL))
	return publicURL, nil
}

func (c *cosClient) DeleteObject(ctx context.Context, objectKey string) error {
	resp, err := c.client.Object.Delete(ctx, objectKey)
	if err != nil {
		c.logger.Error("COS 对象删除失败", zap.String("objectKey", objectKey), zap.Error(err))
		return fmt.Errorf("从 COS 删除对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("COS 对象删除失败，状态码: %d", resp.StatusCode)
	}
	c.logger.Info("COS 对象删除成功", zap.String("objectKey", objectKey))
	return nil
}

type disabledStorage struct{}

func (disabledStorage) UploadFile(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) DeleteObject(context.Context, string) error {
	return ErrStorageDisabled
}
