package mysql

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// PostRepository 帖子数据的持久化操作
type PostRepository interface {
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 未找到时返回 myErrors.ErrRepoNotFound
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// GetPostForUpdate 事务内读取并锁定帖子行，用于点赞、评论 ID 的读-改-写
	GetPostForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.Post, error)

	// ListPosts 按创建时间倒序
	ListPosts(ctx context.Context) ([]*entities.Post, error)

	ListPostsByTag(ctx context.Context, tag enums.PostTag) ([]*entities.Post, error)

	ListPostsByAuthor(ctx context.Context, authorID uint64) ([]*entities.Post, error)

	// ListPostsByMonth 创建时间落在 month (1-12) 的帖子，不区分年份，按创建时间倒序
	ListPostsByMonth(ctx context.Context, month int) ([]*entities.Post, error)

	// UpdatePostFields 按列更新，调用方需先确认帖子存在
	UpdatePostFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error

	// DeletePost 软删除，帖子不存在时返回 myErrors.ErrRepoNotFound
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error
}

type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 创建 PostRepository
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &post, nil
}

func (r *postRepository) GetPostForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.Post, error) {
	var post entities.Post
	if err := forUpdate(db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &post, nil
}

func (r *postRepository) ListPosts(ctx context.Context) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListPostsByMonth(ctx context.Context, month int) ([]*entities.Post, error) {
	var posts []*entities.Post
	err := r.db.WithContext(ctx).
		Where(monthOf(r.db, "created_at")+" = ?", month).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsByTag tags 列保存为 JSON 字符串数组，标签已限定在词表内，可直接按带引号的字面量匹配
func (r *postRepository) ListPostsByTag(ctx context.Context, tag enums.PostTag) ([]*entities.Post, error) {
	var posts []*entities.Post
	pattern := fmt.Sprintf("%%%q%%", string(tag))
	err := r.db.WithContext(ctx).
		Where("tags LIKE ?", pattern).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListPostsByAuthor(ctx context.Context, authorID uint64) ([]*entities.Post, error) {
	var posts []*entities.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdatePostFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		r.logger.Error("更新帖子失败", zap.Uint64("postID", id), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRepoNotFound
	}
	return nil
}
