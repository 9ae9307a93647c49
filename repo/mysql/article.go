package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// ArticleRepository 文章数据的持久化操作
type ArticleRepository interface {
	CreateArticle(ctx context.Context, db *gorm.DB, article *entities.Article) error

	// BulkCreateArticles 在同一个 db（通常是事务）中批量插入
	BulkCreateArticles(ctx context.Context, db *gorm.DB, articles []*entities.Article) error

	// GetArticleByID 未找到时返回 myErrors.ErrRepoNotFound
	GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error)

	// GetArticleForUpdate 事务内读取并锁定文章行，用于评论的读-改-写
	GetArticleForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.Article, error)

	ListArticles(ctx context.Context) ([]*entities.Article, error)

	ListArticlesByAuthor(ctx context.Context, authorID uint64) ([]*entities.Article, error)

	// GetArticlesByIDs 结果顺序不保证与 ids 一致
	GetArticlesByIDs(ctx context.Context, ids []uint64) ([]*entities.Article, error)

	// ListTopByReads 按阅读量降序，阅读量相同按 ID 升序
	ListTopByReads(ctx context.Context, limit int) ([]*entities.Article, error)

	ListDistinctCategories(ctx context.Context) ([]string, error)

	// GetOneByCategory 取该分类下任意一篇
	GetOneByCategory(ctx context.Context, category string) (*entities.Article, error)

	// UpdateArticleFields 按列更新，调用方需先确认文章存在
	UpdateArticleFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error

	// IncrementReads read_count = read_count + 1，文章不存在时返回 myErrors.ErrRepoNotFound
	IncrementReads(ctx context.Context, id uint64) error

	// SaveComments 整列写回内嵌评论
	SaveComments(ctx context.Context, db *gorm.DB, article *entities.Article) error

	// DeleteArticle 软删除，文章不存在时返回 myErrors.ErrRepoNotFound
	DeleteArticle(ctx context.Context, db *gorm.DB, id uint64) error
}

type articleRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewArticleRepository 创建 ArticleRepository
func NewArticleRepository(db *gorm.DB, logger *core.ZapLogger) ArticleRepository {
	return &articleRepository{db: db, logger: logger}
}

func (r *articleRepository) CreateArticle(ctx context.Context, db *gorm.DB, article *entities.Article) error {
	return db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) BulkCreateArticles(ctx context.Context, db *gorm.DB, articles []*entities.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(articles).Error
}

func (r *articleRepository) GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error) {
	var article entities.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

func (r *articleRepository) GetArticleForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.Article, error) {
	var article entities.Article
	if err := forUpdate(db.WithContext(ctx)).First(&article, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

func (r *articleRepository) ListArticles(ctx context.Context) ([]*entities.Article, error) {
	var articles []*entities.Article
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListArticlesByAuthor(ctx context.Context, authorID uint64) ([]*entities.Article, error) {
	var articles []*entities.Article
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id ASC").Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) GetArticlesByIDs(ctx context.Context, ids []uint64) ([]*entities.Article, error) {
	var articles []*entities.Article
	if len(ids) == 0 {
		return articles, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListTopByReads(ctx context.Context, limit int) ([]*entities.Article, error) {
	var articles []*entities.Article
	err := r.db.WithContext(ctx).Order("read_count DESC").Order("id ASC").Limit(limit).Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListDistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&entities.Article{}).Distinct().Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *articleRepository) GetOneByCategory(ctx context.Context, category string) (*entities.Article, error) {
	var article entities.Article
	if err := r.db.WithContext(ctx).Where("category = ?", category).Take(&article).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &article, nil
}

func (r *articleRepository) UpdateArticleFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&entities.Article{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		r.logger.Error("更新文章失败", zap.Uint64("articleID", id), zap.Any("fields", fields), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *articleRepository) IncrementReads(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&entities.Article{}).
		Where("id = ?", id).
		UpdateColumn("read_count", gorm.Expr("read_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}

func (r *articleRepository) SaveComments(ctx context.Context, db *gorm.DB, article *entities.Article) error {
	return db.WithContext(ctx).Model(&entities.Article{}).
		Where("id = ?", article.ID).
		Update("comments", article.Comments).Error
}

func (r *articleRepository) DeleteArticle(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}
