package dependencies

import (
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/entities"
)

const (
	mysqlConnectRetries  = 5
	mysqlConnectInterval = 2 * time.Second
)

// InitMySQL 连接主库，配置了从库时启用读写分离，随后设置连接池并执行自动迁移
func InitMySQL(cfg *config.BlogConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	mysqlCfg := cfg.MySQLConfig
	if mysqlCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (mysqlConfig.write.dsn) 未配置")
	}

	gormConfig := &gorm.Config{Logger: core.NewGormLogger(logger, cfg.GormLogConfig)}

	db, err := openWithRetry(mysqlCfg.Write.DSN, gormConfig, logger)
	if err != nil {
		return nil, err
	}

	if err := registerReplicas(db, mysqlCfg, logger); err != nil {
		return nil, err
	}

	if err := configurePool(db, mysqlCfg, logger); err != nil {
		return nil, err
	}

	logger.Info("开始执行数据库自动迁移...")
	if err := AutoMigrate(db); err != nil {
		logger.Error("数据库自动迁移失败", zap.Error(err))
		return nil, fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	logger.Info("成功初始化 MySQL 连接 (包括读写分离和自动迁移)")
	return db, nil
}

// AutoMigrate 迁移全部实体，测试中的 SQLite 库也复用它
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Article{},
		&entities.Post{},
		&entities.PostComment{},
	)
}

func openWithRetry(dsn string, gormConfig *gorm.Config, logger *core.ZapLogger) (*gorm.DB, error) {
	var lastErr error
	logger.Info("开始连接主数据库...")
	for i := 0; i < mysqlConnectRetries; i++ {
		db, err := gorm.Open(mysql.Open(dsn), gormConfig)
		if err == nil {
			err = pingDB(db)
		}
		if err == nil {
			logger.Info("成功连接到主数据库")
			return db, nil
		}
		lastErr = err
		logger.Warn("无法连接到主数据库，尝试重试", zap.Int("retry", i+1), zap.Int("maxRetries", mysqlConnectRetries), zap.Error(err))
		if i < mysqlConnectRetries-1 {
			time.Sleep(mysqlConnectInterval)
		}
	}
	logger.Error("无法连接到主数据库", zap.Error(lastErr))
	return nil, fmt.Errorf("无法连接到主数据库: %w", lastErr)
}

func pingDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func registerReplicas(db *gorm.DB, mysqlCfg config.MySQLConfig, logger *core.ZapLogger) error {
	replicas := make([]gorm.Dialector, 0, len(mysqlCfg.Read))
	for i, replicaCfg := range mysqlCfg.Read {
		if replicaCfg.DSN == "" {
			logger.Warn("发现空的从库 DSN 配置，已跳过", zap.Int("index", i))
			continue
		}
		replicas = append(replicas, mysql.Open(replicaCfg.DSN))
	}
	if len(replicas) == 0 {
		logger.Info("未配置有效的从数据库，不启用读写分离")
		return nil
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Sources:  []gorm.Dialector{mysql.Open(mysqlCfg.Write.DSN)},
		Replicas: replicas,
		Policy:   dbresolver.StrictRoundRobinPolicy(),
	}))
	if err != nil {
		logger.Error("配置 GORM 读写分离插件失败", zap.Error(err))
		return fmt.Errorf("配置 GORM 读写分离失败: %w", err)
	}
	logger.Info("成功配置 GORM 读写分离插件", zap.Int("replicas", len(replicas)))
	return nil
}

// configurePool 以共享设置为基础，主库的单独设置优先
func configurePool(db *gorm.DB, mysqlCfg config.MySQLConfig, logger *core.ZapLogger) error {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("无法获取数据库对象以配置连接池", zap.Error(err))
		return fmt.Errorf("无法获取数据库对象: %w", err)
	}

	maxIdle := mysqlCfg.SharedMaxIdleConns
	maxOpen := mysqlCfg.SharedMaxOpenConns
	maxLife := mysqlCfg.SharedConnMaxLifetime
	if mysqlCfg.Write.MaxIdleConns != nil {
		maxIdle = *mysqlCfg.Write.MaxIdleConns
	}
	if mysqlCfg.Write.MaxOpenConns != nil {
		maxOpen = *mysqlCfg.Write.MaxOpenConns
	}
	if mysqlCfg.Write.ConnMaxLifetime != nil {
		maxLife = *mysqlCfg.Write.ConnMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)
	logger.Info("配置数据库连接池",
		zap.Int("maxIdleConns", maxIdle),
		zap.Int("maxOpenConns", maxOpen),
		zap.Int("connMaxLifetimeSec", maxLife),
	)

	if err := sqlDB.Ping(); err != nil {
		logger.Error("配置连接池后 Ping 数据库失败", zap.Error(err))
		return fmt.Errorf("配置连接池后 Ping 失败: %w", err)
	}
	return nil
}
