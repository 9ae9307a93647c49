package mysql

import (
	"context"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// UserRepository 用户数据的持久化操作。
// 带 db 参数的方法用于事务内调用，服务层传入 tx。
type UserRepository interface {
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByID 未找到时返回 myErrors.ErrRepoNotFound
	GetUserByID(ctx context.Context, id uint64) (*entities.User, error)

	// GetUserForUpdate 事务内读取并锁定用户行
	GetUserForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.User, error)

	// FindByUsernameOrEmail 注册查重，一次查询同时匹配用户名与邮箱
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error)

	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)

	ListUsers(ctx context.Context) ([]*entities.User, error)

	// UpdateUserFields 按列更新，调用方需先确认用户存在
	UpdateUserFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error

	// SaveFollowEdges 写回用户的 followers 与 following 两列
	SaveFollowEdges(ctx context.Context, db *gorm.DB, user *entities.User) error
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 创建 UserRepository
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserForUpdate(ctx context.Context, db *gorm.DB, id uint64) (*entities.User, error) {
	var user entities.User
	if err := forUpdate(db.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

// FindByUsernameOrEmail 不区分大小写，与 MySQL 默认排序规则的比较结果一致
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", username, email).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUserFields(ctx context.Context, db *gorm.DB, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		r.logger.Error("更新用户信息失败", zap.Uint64("userID", id), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *userRepository) SaveFollowEdges(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if user.ID == 0 {
		return myErrors.ErrRepoNotFound
	}
	return db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"followers": user.Followers,
			"following": user.Following,
		}).Error
}
