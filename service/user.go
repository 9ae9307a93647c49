package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
)

// UserService 用户资料与关注关系
type UserService interface {
	GetUser(ctx context.Context, id uint64) (*vo.UserVO, error)
	ListUsers(ctx context.Context) ([]*vo.UserVO, error)

	// Follow followerID 关注 followeeID。双方的关注列表在同一个事务内写入。
	Follow(ctx context.Context, followerID, followeeID uint64) (*vo.FollowVO, error)

	// Unfollow 取消关注，同样在一个事务内修改双方
	Unfollow(ctx context.Context, followerID, followeeID uint64) (*vo.FollowVO, error)

	// VerifyUser 标记为已认证，重复调用结果不变
	VerifyUser(ctx context.Context, id uint64) (*vo.UserVO, error)

	// UpdateProfile 只修改请求中出现的字段
	UpdateProfile(ctx context.Context, id uint64, req *dto.UpdateProfileRequest) (*vo.UserVO, error)

	UploadAvatar(ctx context.Context, id uint64, file *multipart.FileHeader) (*vo.UserVO, error)
}

type userService struct {
	db        *gorm.DB
	userRepo  mysql.UserRepository
	media     *mediaUploader
	publisher producer.Publisher
	logger    *core.ZapLogger
}

// NewUserService 创建 UserService
func NewUserService(db *gorm.DB, userRepo mysql.UserRepository, storage dependencies.ObjectStorage, publisher producer.Publisher, logger *core.ZapLogger) UserService {
	return &userService{
		db:        db,
		userRepo:  userRepo,
		media:     newMediaUploader(storage, logger),
		publisher: publisher,
		logger:    logger,
	}
}

func (s *userService) GetUser(ctx context.Context, id uint64) (*vo.UserVO, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.NewUserVO(user), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*vo.UserVO, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}
	return vo.NewUserVOList(users), nil
}

// lockPair 按 ID 升序加锁，避免两个方向的并发关注互相等待
func (s *userService) lockPair(ctx context.Context, tx *gorm.DB, followerID, followeeID uint64) (follower, followee *entities.User, err error) {
	first, second := followerID, followeeID
	if first > second {
		first, second = second, first
	}
	a, err := s.userRepo.GetUserForUpdate(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.userRepo.GetUserForUpdate(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == followerID {
		return a, b, nil
	}
	return b, a, nil
}

func (s *userService) Follow(ctx context.Context, followerID, followeeID uint64) (*vo.FollowVO, error) {
	if followerID == followeeID {
		return nil, myErrors.ErrSelfFollow
	}

	var follower, followee *entities.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		follower, followee, err = s.lockPair(ctx, tx, followerID, followeeID)
		if err != nil {
			return err
		}

		following := follower.IsFollowing(followeeID)
		followed := followee.HasFollower(followerID)
		if following && followed {
			return myErrors.ErrAlreadyFollowing
		}
		// 只补齐缺失的一侧，修复历史上不成对的数据
		if !following {
			follower.Following = append(follower.Following, followeeID)
		}
		if !followed {
			followee.Followers = append(followee.Followers, followerID)
		}

		if err := s.userRepo.SaveFollowEdges(ctx, tx, follower); err != nil {
			return err
		}
		return s.userRepo.SaveFollowEdges(ctx, tx, followee)
	})
	if err != nil {
		return nil, s.translateFollowErr(err, followerID, followeeID)
	}
	s.logger.Info("关注成功", zap.Uint64("followerID", followerID), zap.Uint64("followeeID", followeeID))

	go func() {
		if err := s.publisher.PublishUserFollowed(context.Background(), followerID, followeeID); err != nil {
			s.logger.Error("发送关注事件失败", zap.Uint64("followerID", followerID), zap.Uint64("followeeID", followeeID), zap.Error(err))
		}
	}()
	return &vo.FollowVO{Follower: vo.NewUserVO(follower), Followee: vo.NewUserVO(followee)}, nil
}

func (s *userService) Unfollow(ctx context.Context, followerID, followeeID uint64) (*vo.FollowVO, error) {
	if followerID == followeeID {
		return nil, myErrors.ErrSelfFollow
	}

	var follower, followee *entities.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		follower, followee, err = s.lockPair(ctx, tx, followerID, followeeID)
		if err != nil {
			return err
		}
		if !follower.IsFollowing(followeeID) && !followee.HasFollower(followerID) {
			return myErrors.ErrNotFollowing
		}

		follower.Following = slices.DeleteFunc(follower.Following, func(id uint64) bool { return id == followeeID })
		followee.Followers = slices.DeleteFunc(followee.Followers, func(id uint64) bool { return id == followerID })

		if err := s.userRepo.SaveFollowEdges(ctx, tx, follower); err != nil {
			return err
		}
		return s.userRepo.SaveFollowEdges(ctx, tx, followee)
	})
	if err != nil {
		return nil, s.translateFollowErr(err, followerID, followeeID)
	}
	s.logger.Info("取消关注成功", zap.Uint64("followerID", followerID), zap.Uint64("followeeID", followeeID))
	return &vo.FollowVO{Follower: vo.NewUserVO(follower), Followee: vo.NewUserVO(followee)}, nil
}

func (s *userService) translateFollowErr(err error, followerID, followeeID uint64) error {
	switch {
	case errors.Is(err, myErrors.ErrRepoNotFound):
		return myErrors.ErrUserNotFound
	case errors.Is(err, myErrors.ErrConflict):
		return err
	default:
		s.logger.Error("修改关注关系失败",
			zap.Uint64("followerID", followerID),
			zap.Uint64("followeeID", followeeID),
			zap.Error(err))
		return fmt.Errorf("修改关注关系失败: %w", err)
	}
}

func (s *userService) VerifyUser(ctx context.Context, id uint64) (*vo.UserVO, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		if err := s.userRepo.UpdateUserFields(ctx, s.db, id, map[string]interface{}{"is_verified": true}); err != nil {
			return nil, fmt.Errorf("认证用户失败: %w", err)
		}
		user.IsVerified = true
		s.logger.Info("用户已认证", zap.Uint64("userID", id))
	}
	return vo.NewUserVO(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint64, req *dto.UpdateProfileRequest) (*vo.UserVO, error) {
	if _, err := s.getUser(ctx, id); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.GetUser(ctx, id)
	}

	fields := make(map[string]interface{})
	for column, value := range map[string]*string{
		"about":         req.About,
		"occupation":    req.Occupation,
		"location":      req.Location,
		"twitter_url":   req.TwitterURL,
		"instagram_url": req.InstagramURL,
		"facebook_url":  req.FacebookURL,
		"youtube_url":   req.YoutubeURL,
		"whatsapp_url":  req.WhatsappURL,
		"linkedin_url":  req.LinkedinURL,
	} {
		if value != nil {
			fields[column] = *value
		}
	}

	if err := s.userRepo.UpdateUserFields(ctx, s.db, id, fields); err != nil {
		return nil, fmt.Errorf("更新个人资料失败: %w", err)
	}
	s.logger.Info("个人资料已更新", zap.Uint64("userID", id), zap.Int("fieldCount", len(fields)))
	return s.GetUser(ctx, id)
}

func (s *userService) UploadAvatar(ctx context.Context, id uint64, file *multipart.FileHeader) (*vo.UserVO, error) {
	if file == nil {
		return nil, myErrors.ErrEmptyUpload
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.media.upload(ctx, constant.COSObjectKeyPrefixAvatars, id, file)
	if err != nil {
		return nil, err
	}
	err = s.userRepo.UpdateUserFields(ctx, s.db, id, map[string]interface{}{
		"avatar_title":      ref.Title,
		"avatar_url":        ref.URL,
		"avatar_object_key": ref.ObjectKey,
	})
	if err != nil {
		s.media.removeBestEffort(context.Background(), ref.ObjectKey)
		return nil, fmt.Errorf("保存头像失败: %w", err)
	}
	s.media.removeBestEffort(ctx, user.Avatar.ObjectKey)

	user.Avatar = ref
	return vo.NewUserVO(user), nil
}

func (s *userService) getUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRepoNotFound) {
			return nil, myErrors.ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint64("userID", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}
