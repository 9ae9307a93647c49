package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/utils"
)

func main() {
	var (
		configFile  string
		opts        SeedOptions
		waitSeconds int
	)
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&opts.Users, "users", 10, "要注册的用户数量")
	flag.IntVar(&opts.Articles, "articles", 30, "要生成的文章数量")
	flag.IntVar(&opts.Posts, "posts", 30, "要生成的帖子数量")
	flag.IntVar(&waitSeconds, "wait", 5, "填充后等待的秒数，留给 Kafka 异步发送")
	flag.Parse()

	if opts.Users <= 0 {
		fmt.Println("错误: 用户数量必须大于 0")
		os.Exit(1)
	}
	if opts.Articles < 0 || opts.Posts < 0 || waitSeconds < 0 {
		fmt.Println("错误: 数量与等待秒数不能为负")
		os.Exit(1)
	}

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		absConfigFile = configFile
	}

	var cfg config.BlogConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}

	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 失败 (Seeder)", zap.Error(err))
	}

	// 填充数据不上传文件，也不写排行榜
	storage, err := dependencies.InitCOS(nil, logger)
	if err != nil {
		logger.Fatal("初始化对象存储失败 (Seeder)", zap.Error(err))
	}

	var publisher producer.Publisher = producer.NoopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	}

	tokens := utils.NewTokenManager(cfg.JWTConfig.SecretKey, time.Duration(cfg.JWTConfig.TTLHours)*time.Hour)

	userRepo := mysql.NewUserRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	postCommentRepo := mysql.NewPostCommentRepository(db, logger)

	seeder := &Seeder{
		auth:         service.NewAuthService(db, userRepo, tokens, logger),
		users:        service.NewUserService(db, userRepo, storage, publisher, logger),
		articles:     service.NewArticleService(db, articleRepo, userRepo, nil, storage, publisher, logger),
		comments:     service.NewCommentService(db, articleRepo, userRepo, logger),
		posts:        service.NewPostService(db, postRepo, logger),
		postComments: service.NewPostCommentService(db, postRepo, postCommentRepo, logger),
		logger:       logger,
	}

	startTime := time.Now()
	summary, err := seeder.Seed(context.Background(), opts)
	if err != nil {
		logger.Fatal("数据填充失败", zap.Error(err))
	}
	logger.Info("数据填充完成",
		zap.Int("users", summary.Users),
		zap.Int("articles", summary.Articles),
		zap.Int("posts", summary.Posts),
		zap.Duration("耗时", time.Since(startTime)))

	if waitSeconds > 0 && len(cfg.KafkaConfig.Brokers) > 0 {
		logger.Info(fmt.Sprintf("等待 %d 秒以便 Kafka 消息发送完成...", waitSeconds))
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}
}
