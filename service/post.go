package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/pkg/authz"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// PostService 帖子的发布、编辑、查询与点赞
type PostService interface {
	// CreatePost 作者为当前登录用户
	CreatePost(ctx context.Context, principal authz.Principal, req *dto.PostRequest) (*vo.PostVO, error)

	// EditPost 整体替换标题、正文、概要、标签与封面，仅作者本人可操作
	EditPost(ctx context.Context, principal authz.Principal, postID uint64, req *dto.PostRequest) (*vo.PostVO, error)

	// DeletePost 仅作者本人可操作。帖子评论是独立记录，不随帖子删除。
	DeletePost(ctx context.Context, principal authz.Principal, postID uint64) error

	GetPost(ctx context.Context, postID uint64) (*vo.PostVO, error)
	ListPosts(ctx context.Context) ([]*vo.PostVO, error)

	// ListPostsByTag 标签不在词表内时返回 ErrInvalidTag
	ListPostsByTag(ctx context.Context, tag string) ([]*vo.PostVO, error)

	ListPostsByAuthor(ctx context.Context, authorID uint64) ([]*vo.PostVO, error)

	// ListPostsByMonth 创建月份（1-12）等于 month 的帖子，不区分年份，按创建时间倒序
	ListPostsByMonth(ctx context.Context, month int) ([]*vo.PostVO, error)

	LikePost(ctx context.Context, principal authz.Principal, postID uint64) (*vo.PostVO, error)
	UnlikePost(ctx context.Context, principal authz.Principal, postID uint64) (*vo.PostVO, error)
}

type postService struct {
	db       *gorm.DB
	postRepo mysql.PostRepository
	logger   *core.ZapLogger
}

// NewPostService 创建 PostService
func NewPostService(db *gorm.DB, postRepo mysql.PostRepository, logger *core.ZapLogger) PostService {
	return &postService{db: db, postRepo: postRepo, logger: logger}
}

// NormalizeTags 去空白、转小写、去重并校验词表，保持首次出现的顺序
func NormalizeTags(raw []string) ([]string, error) {
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		tag, ok := enums.ParsePostTag(r)
		if !ok {
			return nil, fmt.Errorf("%w: %s", myErrors.ErrInvalidTag, r)
		}
		if !slices.Contains(tags, string(tag)) {
			tags = append(tags, string(tag))
		}
	}
	return tags, nil
}

func validatePostRequest(req *dto.PostRequest) ([]string, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, myErrors.Validationf("title、content 均为必填")
	}
	return NormalizeTags(req.Tags)
}

func coverImage(in *dto.CoverImageInput) entities.MediaRef {
	if in == nil {
		return entities.MediaRef{}
	}
	return entities.MediaRef{Title: in.Title, URL: in.ImageURL}
}

func (s *postService) CreatePost(ctx context.Context, principal authz.Principal, req *dto.PostRequest) (*vo.PostVO, error) {
	if principal.UserID == 0 {
		return nil, myErrors.ErrInvalidSession
	}
	tags, err := validatePostRequest(req)
	if err != nil {
		return nil, err
	}

	post := &entities.Post{
		Title:      req.Title,
		Content:    req.Content,
		Overview:   req.Overview,
		CoverImage: coverImage(req.CoverImage),
		Tags:       tags,
		AuthorID:   principal.UserID,
		Likes:      []uint64{},
		CommentIDs: []uint64{},
	}
	if err := s.postRepo.CreatePost(ctx, s.db, post); err != nil {
		s.logger.Error("创建帖子失败", zap.Uint64("authorID", principal.UserID), zap.Error(err))
		return nil, fmt.Errorf("创建帖子失败: %w", err)
	}
	s.logger.Info("帖子创建成功", zap.Uint64("postID", post.ID), zap.Uint64("authorID", post.AuthorID))
	return vo.NewPostVO(post), nil
}

func (s *postService) EditPost(ctx context.Context, principal authz.Principal, postID uint64, req *dto.PostRequest) (*vo.PostVO, error) {
	tags, err := validatePostRequest(req)
	if err != nil {
		return nil, err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := principal.Authorize(post.AuthorID); err != nil {
		return nil, err
	}

	cover := coverImage(req.CoverImage)
	fields := map[string]interface{}{
		"title":             req.Title,
		"content":           req.Content,
		"overview":          req.Overview,
		"tags":              datatypes.JSONSlice[string](tags),
		"cover_image_title": cover.Title,
		"cover_image_url":   cover.URL,
	}
	if err := s.postRepo.UpdatePostFields(ctx, s.db, postID, fields); err != nil {
		return nil, fmt.Errorf("编辑帖子失败: %w", err)
	}
	s.logger.Info("帖子已编辑", zap.Uint64("postID", postID))
	return s.GetPost(ctx, postID)
}

func (s *postService) DeletePost(ctx context.Context, principal authz.Principal, postID uint64) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := principal.Authorize(post.AuthorID); err != nil {
		return err
	}
	if err := s.postRepo.DeletePost(ctx, s.db, postID); err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return myErrors.ErrPostNotFound
		}
		s.logger.Error("删除帖子失败", zap.Uint64("postID", postID), zap.Error(err))
		return fmt.Errorf("删除帖子失败: %w", err)
	}
	s.logger.Info("帖子已删除", zap.Uint64("postID", postID))
	return nil
}

func (s *postService) GetPost(ctx context.Context, postID uint64) (*vo.PostVO, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return vo.NewPostVO(post), nil
}

func (s *postService) ListPosts(ctx context.Context) ([]*vo.PostVO, error) {
	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		s.logger.Error("查询帖子列表失败", zap.Error(err))
		return nil, err
	}
	return vo.NewPostVOList(posts), nil
}

func (s *postService) ListPostsByTag(ctx context.Context, raw string) ([]*vo.PostVO, error) {
	tag, ok := enums.ParsePostTag(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", myErrors.ErrInvalidTag, raw)
	}
	posts, err := s.postRepo.ListPostsByTag(ctx, tag)
	if err != nil {
		s.logger.Error("按标签查询帖子失败", zap.String("tag", string(tag)), zap.Error(err))
		return nil, err
	}
	return vo.NewPostVOList(posts), nil
}

func (s *postService) ListPostsByAuthor(ctx context.Context, authorID uint64) ([]*vo.PostVO, error) {
	posts, err := s.postRepo.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		s.logger.Error("按作者查询帖子失败", zap.Uint64("authorID", authorID), zap.Error(err))
		return nil, err
	}
	return vo.NewPostVOList(posts), nil
}

func (s *postService) ListPostsByMonth(ctx context.Context, month int) ([]*vo.PostVO, error) {
	if month < 1 || month > 12 {
		return nil, myErrors.ErrInvalidMonth
	}
	posts, err := s.postRepo.ListPostsByMonth(ctx, month)
	if err != nil {
		s.logger.Error("按月份查询帖子失败", zap.Int("month", month), zap.Error(err))
		return nil, err
	}
	return vo.NewPostVOList(posts), nil
}

func (s *postService) LikePost(ctx context.Context, principal authz.Principal, postID uint64) (*vo.PostVO, error) {
	return s.mutateLikes(ctx, principal, postID, func(post *entities.Post) error {
		if post.LikedBy(principal.UserID) {
			return myErrors.ErrAlreadyLiked
		}
		post.Likes = append(post.Likes, principal.UserID)
		return nil
	})
}

func (s *postService) UnlikePost(ctx context.Context, principal authz.Principal, postID uint64) (*vo.PostVO, error) {
	return s.mutateLikes(ctx, principal, postID, func(post *entities.Post) error {
		if !post.LikedBy(principal.UserID) {
			return myErrors.ErrNotLiked
		}
		post.Likes = slices.DeleteFunc(post.Likes, func(id uint64) bool { return id == principal.UserID })
		return nil
	})
}

// mutateLikes 在事务内锁定帖子，修改点赞集合后写回
func (s *postService) mutateLikes(ctx context.Context, principal authz.Principal, postID uint64, mutate func(*entities.Post) error) (*vo.PostVO, error) {
	if principal.UserID == 0 {
		return nil, myErrors.ErrInvalidSession
	}
	var post *entities.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		post, err = s.postRepo.GetPostForUpdate(ctx, tx, postID)
		if err != nil {
			return err
		}
		if err := mutate(post); err != nil {
			return err
		}
		if post.Likes == nil {
			post.Likes = []uint64{}
		}
		return s.postRepo.UpdatePostFields(ctx, tx, postID, map[string]interface{}{"likes": post.Likes})
	})
	if err != nil {
		switch {
		case errors.Is(err, myErrors.ErrRepoNotFound):
			return nil, myErrors.ErrPostNotFound
		case errors.Is(err, myErrors.ErrConflict):
			return nil, err
		}
		s.logger.Error("修改帖子点赞失败", zap.Uint64("postID", postID), zap.Uint64("userID", principal.UserID), zap.Error(err))
		return nil, fmt.Errorf("修改帖子点赞失败: %w", err)
	}
	return vo.NewPostVO(post), nil
}

func (s *postService) getPost(ctx context.Context, postID uint64) (*entities.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrPostNotFound
		}
		s.logger.Error("查询帖子失败", zap.Uint64("postID", postID), zap.Error(err))
		return nil, err
	}
	return post, nil
}
