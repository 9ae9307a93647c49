package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// CommentService 文章内嵌评论与回复
type CommentService interface {
	// AddComment 追加一条顶级评论，追加顺序即展示顺序
	AddComment(ctx context.Context, articleID uint64, content string, authorID *uint64) (*entities.ArticleComment, error)

	// AddReply 在指定评论下追加回复，评论只在该文章的评论中查找
	AddReply(ctx context.Context, articleID uint64, commentID string, content string, authorID *uint64) (*entities.ArticleReply, error)
}

type commentService struct {
	db          *gorm.DB
	articleRepo mysql.ArticleRepository
	userRepo    mysql.UserRepository
	logger      *core.ZapLogger
	now         func() time.Time
}

// NewCommentService 创建 CommentService
func NewCommentService(db *gorm.DB, articleRepo mysql.ArticleRepository, userRepo mysql.UserRepository, logger *core.ZapLogger) CommentService {
	return &commentService{
		db:          db,
		articleRepo: articleRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *commentService) AddComment(ctx context.Context, articleID uint64, content string, authorID *uint64) (*entities.ArticleComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, myErrors.ErrEmptyContent
	}
	snapshot, err := resolveAuthorSnapshot(ctx, s.userRepo, s.logger, authorID)
	if err != nil {
		return nil, fmt.Errorf("查询评论作者失败: %w", err)
	}

	now := s.now()
	comment := entities.ArticleComment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		Author:    snapshot,
		CreatedAt: now,
		UpdatedAt: now,
		Replies:   []entities.ArticleReply{},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		article, err := s.articleRepo.GetArticleForUpdate(ctx, tx, articleID)
		if err != nil {
			return err
		}
		article.Comments = append(article.Comments, comment)
		return s.articleRepo.SaveComments(ctx, tx, article)
	})
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrArticleNotFound
		}
		s.logger.Error("添加文章评论失败", zap.Uint64("articleID", articleID), zap.Error(err))
		return nil, fmt.Errorf("添加评论失败: %w", err)
	}

	s.logger.Info("文章评论已添加", zap.Uint64("articleID", articleID), zap.String("commentID", comment.ID))
	return &comment, nil
}

func (s *commentService) AddReply(ctx context.Context, articleID uint64, commentID string, content string, authorID *uint64) (*entities.ArticleReply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, myErrors.ErrEmptyContent
	}
	snapshot, err := resolveAuthorSnapshot(ctx, s.userRepo, s.logger, authorID)
	if err != nil {
		return nil, fmt.Errorf("查询回复作者失败: %w", err)
	}

	reply := entities.ArticleReply{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		Author:    snapshot,
		CreatedAt: s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		article, err := s.articleRepo.GetArticleForUpdate(ctx, tx, articleID)
		if err != nil {
			if errors.Is(err, myErrors.ErrRepoNotFound) {
				return myErrors.ErrArticleNotFound
			}
			return err
		}
		idx := article.FindComment(commentID)
		if idx < 0 {
			return myErrors.ErrCommentNotFound
		}
		article.Comments[idx].Replies = append(article.Comments[idx].Replies, reply)
		article.Comments[idx].UpdatedAt = reply.CreatedAt
		return s.articleRepo.SaveComments(ctx, tx, article)
	})
	if err != nil {
		if errors.Is(err, myErrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("添加评论回复失败", zap.Uint64("articleID", articleID), zap.String("commentID", commentID), zap.Error(err))
		return nil, fmt.Errorf("添加回复失败: %w", err)
	}

	s.logger.Info("评论回复已添加", zap.Uint64("articleID", articleID), zap.String("commentID", commentID), zap.String("replyID", reply.ID))
	return &reply, nil
}
