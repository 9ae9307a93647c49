package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// PostCommentRepository 帖子评论的持久化操作
type PostCommentRepository interface {
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.PostComment) error

	// GetCommentForUpdate 事务内读取并锁定评论行，未找到时返回 myErrors.ErrRepoNotFound
	GetCommentForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.PostComment, error)

	// ListCommentsByPost 按创建顺序返回帖子下的全部评论与回复
	ListCommentsByPost(ctx context.Context, postID uint64) ([]*entities.PostComment, error)

	SaveReplies(ctx context.Context, db *gorm.DB, comment *entities.PostComment) error
}

type postCommentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostCommentRepository 创建 PostCommentRepository
func NewPostCommentRepository(db *gorm.DB, logger *core.ZapLogger) PostCommentRepository {
	return &postCommentRepository{db: db, logger: logger}
}

func (r *postCommentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.PostComment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *postCommentRepository) GetCommentForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.PostComment, error) {
	var comment entities.PostComment
	if err := forUpdate(db.WithContext(ctx)).First(&comment, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &comment, nil
}

func (r *postCommentRepository) ListCommentsByPost(ctx context.Context, postID uint64) ([]*entities.PostComment, error) {
	var comments []*entities.PostComment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *postCommentRepository) SaveReplies(ctx context.Context, db *gorm.DB, comment *entities.PostComment) error {
	return db.WithContext(ctx).Model(&entities.PostComment{}).
		Where("id = ?", comment.ID).
		Update("replies", comment.Replies).Error
}
