package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/kafkaevents"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/utils"
)

// ArticleService 文章的创建、查询、修改与删除
type ArticleService interface {
	// CreateArticle 校验必填字段，计算 slug 与阅读时长，author_id 对应的用户存在时保存作者快照。
	// 成功后异步发布 ArticlePublished 事件。
	CreateArticle(ctx context.Context, req *dto.CreateArticleRequest) (*vo.ArticleVO, error)

	// BulkCreateArticles 逐条按 CreateArticle 的规则校验，全部通过后在一个事务内写入
	BulkCreateArticles(ctx context.Context, reqs []dto.CreateArticleRequest) ([]*vo.ArticleVO, error)

	ListArticles(ctx context.Context) ([]*vo.ArticleVO, error)

	// GetArticle 返回文章并把阅读量 +1（先持久化再返回）
	GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error)

	// UpdateArticle 局部更新，只修改请求中出现的字段
	UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest) (*vo.ArticleVO, error)

	// DeleteArticle 删除文章及其内嵌评论
	DeleteArticle(ctx context.Context, id uint64) error

	// RandomArticles 随机取最多 n 个不同分类，每个分类返回一篇文章
	RandomArticles(ctx context.Context, n int) ([]*vo.ArticleVO, error)

	// ListArticlesByAuthor 用户不存在时返回 ErrUserNotFound
	ListArticlesByAuthor(ctx context.Context, userID uint64) ([]*vo.ArticleVO, error)

	// UploadThumbnail 上传并替换文章缩略图
	UploadThumbnail(ctx context.Context, id uint64, file *multipart.FileHeader) (*vo.ArticleVO, error)

	// TrendingArticles 阅读量最高的文章，优先读 Redis 榜单
	TrendingArticles(ctx context.Context, limit int) ([]*vo.ArticleVO, error)
}

type articleService struct {
	db          *gorm.DB
	articleRepo mysql.ArticleRepository
	userRepo    mysql.UserRepository
	rankRepo    redis.ArticleRankRepository // 未配置 Redis 时为 nil
	media       *mediaUploader
	publisher   producer.Publisher
	logger      *core.ZapLogger
	shuffle     func(n int, swap func(i, j int))
}

// NewArticleService 创建 ArticleService，rankRepo 可以为 nil
func NewArticleService(
	db *gorm.DB,
	articleRepo mysql.ArticleRepository,
	userRepo mysql.UserRepository,
	rankRepo redis.ArticleRankRepository,
	storage dependencies.ObjectStorage,
	publisher producer.Publisher,
	logger *core.ZapLogger,
) ArticleService {
	return &articleService{
		db:          db,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		rankRepo:    rankRepo,
		media:       newMediaUploader(storage, logger),
		publisher:   publisher,
		logger:      logger,
		shuffle:     rand.Shuffle,
	}
}

func validateCreateArticle(req *dto.CreateArticleRequest) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Overview) == "" {
		missing = append(missing, "overview")
	}
	if strings.TrimSpace(req.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(req.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return myErrors.Validationf("缺少必填字段: %s", strings.Join(missing, ", "))
	}
	if strings.TrimSpace(req.Author) == "" && req.AuthorID == nil {
		return myErrors.ErrMissingAuthor
	}
	return nil
}

// buildArticle 校验并组装实体，作者快照查询在事务外完成
func (s *articleService) buildArticle(ctx context.Context, req *dto.CreateArticleRequest) (*entities.Article, error) {
	if err := validateCreateArticle(req); err != nil {
		return nil, err
	}
	snapshot, err := resolveAuthorSnapshot(ctx, s.userRepo, s.logger, req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("查询作者资料失败: %w", err)
	}

	article := &entities.Article{
		Title:      req.Title,
		Slug:       utils.Slugify(req.Title),
		AuthorID:   req.AuthorID,
		Author:     req.Author,
		AuthorInfo: snapshot,
		Overview:   req.Overview,
		Category:   req.Category,
		Content:    req.Content,
		ReadTime:   utils.CalculateReadTime(req.Content),
	}
	if req.Thumbnail != nil {
		article.Thumbnail = entities.MediaRef{Title: req.Thumbnail.Title, URL: req.Thumbnail.ImageURL}
	}
	return article, nil
}

func (s *articleService) CreateArticle(ctx context.Context, req *dto.CreateArticleRequest) (*vo.ArticleVO, error) {
	article, err := s.buildArticle(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.articleRepo.CreateArticle(ctx, s.db, article); err != nil {
		s.logger.Error("创建文章失败", zap.String("title", article.Title), zap.Error(err))
		return nil, fmt.Errorf("创建文章失败: %w", err)
	}
	s.logger.Info("文章创建成功", zap.Uint64("articleID", article.ID))

	s.publishArticlePublished(article)
	return vo.NewArticleVO(article), nil
}

func (s *articleService) BulkCreateArticles(ctx context.Context, reqs []dto.CreateArticleRequest) ([]*vo.ArticleVO, error) {
	articles := make([]*entities.Article, 0, len(reqs))
	for i := range reqs {
		article, err := s.buildArticle(ctx, &reqs[i])
		if err != nil {
			var domainErr *myErrors.Error
			if errors.As(err, &domainErr) {
				return nil, myErrors.Validationf("第 %d 篇文章: %s", i+1, domainErr.Error())
			}
			return nil, err
		}
		articles = append(articles, article)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.articleRepo.BulkCreateArticles(ctx, tx, articles)
	})
	if err != nil {
		s.logger.Error("批量创建文章事务失败", zap.Int("count", len(articles)), zap.Error(err))
		return nil, fmt.Errorf("批量创建文章失败: %w", err)
	}
	s.logger.Info("批量创建文章成功", zap.Int("count", len(articles)))

	for _, a := range articles {
		s.publishArticlePublished(a)
	}
	return vo.NewArticleVOList(articles), nil
}

func (s *articleService) ListArticles(ctx context.Context) ([]*vo.ArticleVO, error) {
	articles, err := s.articleRepo.ListArticles(ctx)
	if err != nil {
		s.logger.Error("查询文章列表失败", zap.Error(err))
		return nil, err
	}
	return vo.NewArticleVOList(articles), nil
}

func (s *articleService) GetArticle(ctx context.Context, id uint64) (*vo.ArticleVO, error) {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.articleRepo.IncrementReads(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrArticleNotFound
		}
		s.logger.Error("增加文章阅读量失败", zap.Uint64("articleID", id), zap.Error(err))
		return nil, fmt.Errorf("增加文章阅读量失败: %w", err)
	}
	article.Reads++

	if s.rankRepo != nil {
		if err := s.rankRepo.IncrementReads(ctx, id); err != nil {
			s.logger.Warn("更新阅读排行榜失败", zap.Uint64("articleID", id), zap.Error(err))
		}
	}
	return vo.NewArticleVO(article), nil
}

// requireNonBlank 必填字段在局部更新中出现时不能为空白
func requireNonBlank(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return myErrors.Validationf("%s 不能为空", field)
	}
	return nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest) (*vo.ArticleVO, error) {
	// 先确认文章存在，不存在的文章一律返回 NotFound
	current, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	required := []struct {
		field string
		value *string
	}{
		{"title", req.Title},
		{"overview", req.Overview},
		{"category", req.Category},
		{"content", req.Content},
	}
	for _, r := range required {
		if err := requireNonBlank(r.field, r.value); err != nil {
			return nil, err
		}
	}
	// 没有关联用户的文章只能靠 author 标识作者
	if req.Author != nil && strings.TrimSpace(*req.Author) == "" && current.AuthorID == nil {
		return nil, myErrors.ErrMissingAuthor
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
		fields["slug"] = utils.Slugify(*req.Title)
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Overview != nil {
		fields["overview"] = *req.Overview
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Content != nil {
		fields["content"] = *req.Content
		fields["read_time"] = utils.CalculateReadTime(*req.Content)
	}
	replacedObjectKey := ""
	if req.Thumbnail != nil {
		if req.Thumbnail.Title != nil {
			fields["thumbnail_title"] = *req.Thumbnail.Title
		}
		if req.Thumbnail.ImageURL != nil {
			fields["thumbnail_url"] = *req.Thumbnail.ImageURL
			fields["thumbnail_object_key"] = ""
			replacedObjectKey = current.Thumbnail.ObjectKey
		}
	}

	if len(fields) == 0 {
		return vo.NewArticleVO(current), nil
	}

	if err := s.articleRepo.UpdateArticleFields(ctx, s.db, id, fields); err != nil {
		return nil, fmt.Errorf("更新文章失败: %w", err)
	}
	s.media.removeBestEffort(ctx, replacedObjectKey)

	updated, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("文章更新成功", zap.Uint64("articleID", id), zap.Int("fieldCount", len(fields)))
	return vo.NewArticleVO(updated), nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id uint64) error {
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return err
	}

	if err := s.articleRepo.DeleteArticle(ctx, s.db, id); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return myErrors.ErrArticleNotFound
		}
		s.logger.Error("删除文章失败", zap.Uint64("articleID", id), zap.Error(err))
		return fmt.Errorf("删除文章失败: %w", err)
	}
	s.logger.Info("文章已删除", zap.Uint64("articleID", id), zap.Int("commentCount", len(article.Comments)))

	s.media.removeBestEffort(ctx, article.Thumbnail.ObjectKey)
	if s.rankRepo != nil {
		if err := s.rankRepo.RemoveArticle(ctx, id); err != nil {
			s.logger.Warn("从阅读排行榜移除文章失败", zap.Uint64("articleID", id), zap.Error(err))
		}
	}

	go func(articleID uint64) {
		if err := s.publisher.PublishArticleDeleted(context.Background(), articleID); err != nil {
			s.logger.Error("发送文章删除事件失败", zap.Uint64("articleID", articleID), zap.Error(err))
		}
	}(id)
	return nil
}

func (s *articleService) RandomArticles(ctx context.Context, n int) ([]*vo.ArticleVO, error) {
	if n <= 0 {
		n = constant.RandomArticleCount
	}
	categories, err := s.articleRepo.ListDistinctCategories(ctx)
	if err != nil {
		s.logger.Error("查询文章分类失败", zap.Error(err))
		return nil, err
	}

	s.shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})
	if len(categories) > n {
		categories = categories[:n]
	}

	articles := make([]*entities.Article, 0, len(categories))
	for _, category := range categories {
		article, err := s.articleRepo.GetOneByCategory(ctx, category)
		if err != nil {
			if errors.Is(err, myErrors.ErrRepoNotFound) {
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}
	return vo.NewArticleVOList(articles), nil
}

func (s *articleService) ListArticlesByAuthor(ctx context.Context, userID uint64) ([]*vo.ArticleVO, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrUserNotFound
		}
		return nil, err
	}
	articles, err := s.articleRepo.ListArticlesByAuthor(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户文章失败", zap.Uint64("userID", userID), zap.Error(err))
		return nil, err
	}
	return vo.NewArticleVOList(articles), nil
}

func (s *articleService) UploadThumbnail(ctx context.Context, id uint64, file *multipart.FileHeader) (*vo.ArticleVO, error) {
	if file == nil {
		return nil, myErrors.ErrEmptyUpload
	}
	article, err := s.getArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.media.upload(ctx, constant.COSObjectKeyPrefixThumbnails, id, file)
	if err != nil {
		return nil, err
	}

	err = s.articleRepo.UpdateArticleFields(ctx, s.db, id, map[string]interface{}{
		"thumbnail_title":      ref.Title,
		"thumbnail_url":        ref.URL,
		"thumbnail_object_key": ref.ObjectKey,
	})
	if err != nil {
		s.media.removeBestEffort(context.Background(), ref.ObjectKey)
		return nil, fmt.Errorf("保存文章缩略图失败: %w", err)
	}
	s.media.removeBestEffort(ctx, article.Thumbnail.ObjectKey)

	article.Thumbnail = ref
	return vo.NewArticleVO(article), nil
}

func (s *articleService) TrendingArticles(ctx context.Context, limit int) ([]*vo.ArticleVO, error) {
	if limit <= 0 {
		limit = constant.DefaultTrendingLimit
	}
	if limit > constant.MaxTrendingLimit {
		limit = constant.MaxTrendingLimit
	}

	if s.rankRepo != nil {
		ids, err := s.rankRepo.TopArticleIDs(ctx, limit)
		if err != nil {
			s.logger.Warn("读取阅读排行榜失败，回退到数据库", zap.Error(err))
		} else if len(ids) > 0 {
			articles, err := s.articleRepo.GetArticlesByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return vo.NewArticleVOList(orderByIDs(articles, ids)), nil
		}
	}

	articles, err := s.articleRepo.ListTopByReads(ctx, limit)
	if err != nil {
		s.logger.Error("按阅读量查询文章失败", zap.Error(err))
		return nil, err
	}
	return vo.NewArticleVOList(articles), nil
}

// orderByIDs 按 ids 的顺序排列，已删除的文章自然被跳过
func orderByIDs(articles []*entities.Article, ids []uint64) []*entities.Article {
	byID := make(map[uint64]*entities.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}
	ordered := make([]*entities.Article, 0, len(articles))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

func (s *articleService) getArticle(ctx context.Context, id uint64) (*entities.Article, error) {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrArticleNotFound
		}
		s.logger.Error("查询文章失败", zap.Uint64("articleID", id), zap.Error(err))
		return nil, err
	}
	return article, nil
}

func (s *articleService) publishArticlePublished(article *entities.Article) {
	data := kafkaevents.ArticleData{
		ID:        article.ID,
		Title:     article.Title,
		Slug:      article.Slug,
		AuthorID:  article.AuthorID,
		Author:    article.Author,
		Category:  article.Category,
		Overview:  article.Overview,
		ReadTime:  article.ReadTime,
		CreatedAt: article.CreatedAt.UnixMilli(),
	}
	go func(d kafkaevents.ArticleData) {
		if err := s.publisher.PublishArticlePublished(context.Background(), d); err != nil {
			s.logger.Error("发送文章发布事件失败", zap.Uint64("articleID", d.ID), zap.Error(err))
		}
	}(data)
}
