package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/pkg/authz"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostCommentService 帖子评论。评论独立成表，帖子与父评论只保存子评论的 ID。
type PostCommentService interface {
	// AddComment 创建评论并把 ID 追加到帖子的 comment_ids，两步在同一事务内
	AddComment(ctx context.Context, principal authz.Principal, postID uint64, text string) (*vo.PostCommentVO, error)

	// AddReply 创建回复并把 ID 追加到父评论的 replies
	AddReply(ctx context.Context, principal authz.Principal, parentID uint64, text string) (*vo.PostCommentVO, error)

	// ListComments 帖子不存在时返回 ErrPostNotFound
	ListComments(ctx context.Context, postID uint64) ([]*vo.PostCommentVO, error)
}

type postCommentService struct {
	db          *gorm.DB
	postRepo    mysql.PostRepository
	commentRepo mysql.PostCommentRepository
	logger      *core.ZapLogger
}

// NewPostCommentService 创建 PostCommentService
func NewPostCommentService(db *gorm.DB, postRepo mysql.PostRepository, commentRepo mysql.PostCommentRepository, logger *core.ZapLogger) PostCommentService {
	return &postCommentService{db: db, postRepo: postRepo, commentRepo: commentRepo, logger: logger}
}

func (s *postCommentService) AddComment(ctx context.Context, principal authz.Principal, postID uint64, text string) (*vo.PostCommentVO, error) {
	if principal.UserID == 0 {
		return nil, myErrors.ErrInvalidSession
	}
	if strings.TrimSpace(text) == "" {
		return nil, myErrors.ErrEmptyContent
	}

	comment := &entities.PostComment{PostID: postID, UserID: principal.UserID, Text: text, Replies: []uint64{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.postRepo.GetPostForUpdate(ctx, tx, postID)
		if err != nil {
			if errors.Is(err, myErrors.ErrRepoNotFound) {
				return myErrors.ErrPostNotFound
			}
			return err
		}
		if err := s.commentRepo.CreateComment(ctx, tx, comment); err != nil {
			return err
		}
		post.CommentIDs = append(post.CommentIDs, comment.ID)
		return s.postRepo.UpdatePostFields(ctx, tx, postID, map[string]interface{}{"comment_ids": post.CommentIDs})
	})
	if err != nil {
		if errors.Is(err, myErrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("添加帖子评论失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, fmt.Errorf("添加帖子评论失败: %w", err)
	}

	s.logger.Info("帖子评论已添加", zap.Uint64("postID", postID), zap.Uint64("commentID", comment.ID))
	return vo.NewPostCommentVO(comment), nil
}

func (s *postCommentService) AddReply(ctx context.Context, principal authz.Principal, parentID uint64, text string) (*vo.PostCommentVO, error) {
	if principal.UserID == 0 {
		return nil, myErrors.ErrInvalidSession
	}
	if strings.TrimSpace(text) == "" {
		return nil, myErrors.ErrEmptyContent
	}

	var reply *entities.PostComment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parent, err := s.commentRepo.GetCommentForUpdate(ctx, tx, parentID)
		if err != nil {
			if errors.Is(err, myErrors.ErrRepoNotFound) {
				return myErrors.ErrCommentNotFound
			}
			return err
		}

		reply = &entities.PostComment{
			PostID:   parent.PostID,
			ParentID: &parent.ID,
			UserID:   principal.UserID,
			Text:     text,
			Replies:  []uint64{},
		}
		if err := s.commentRepo.CreateComment(ctx, tx, reply); err != nil {
			return err
		}
		parent.Replies = append(parent.Replies, reply.ID)
		return s.commentRepo.SaveReplies(ctx, tx, parent)
	})
	if err != nil {
		if errors.Is(err, myErrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("添加帖子评论回复失败", zap.Uint64("parentID", parentID), zap.Error(err))
		return nil, fmt.Errorf("添加回复失败: %w", err)
	}

	s.logger.Info("帖子评论回复已添加", zap.Uint64("parentID", parentID), zap.Uint64("replyID", reply.ID))
	return vo.NewPostCommentVO(reply), nil
}

func (s *postCommentService) ListComments(ctx context.Context, postID uint64) ([]*vo.PostCommentVO, error) {
	if _, err := s.postRepo.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrPostNotFound
		}
		return nil, err
	}
	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		s.logger.Error("查询帖子评论失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, err
	}
	return vo.NewPostCommentVOList(comments), nil
}
