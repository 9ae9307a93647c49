package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/core/tracing"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/dependencies"
	_ "github.com/Xushengqwer/blog_service/docs"
	"github.com/Xushengqwer/blog_service/mq/consumer"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/router"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/tasks"
	"github.com/Xushengqwer/blog_service/utils"
)

// @title           Blog Service API
// @version         1.0
// @description     博客服务：文章与内嵌评论、用户资料与关注关系、会话认证、带标签的帖子及其评论。
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8083
// @BasePath  /
// @schemes   http https
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 配置
	var cfg config.BlogConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 2. 日志
	logger, err := core.NewZapLogger(cfg.ZapConfig)
	if err != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", err)
	}
	defer func() {
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功", zap.String("config", configFile))

	// 3. 链路追踪
	tracerShutdown := func(context.Context) error { return nil }
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err = tracing.InitTracerProvider(constant.ServiceName, constant.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			logger.Error("关闭 TracerProvider 失败", zap.Error(err))
		}
	}()

	// 4. 基础依赖
	db, err := dependencies.InitMySQL(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(err))
	}

	rdb, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	// rankRepo 为 nil 时热门文章直接查数据库
	var rankRepo redisrepo.ArticleRankRepository
	if rdb != nil {
		rankRepo = redisrepo.NewArticleRankRepository(rdb, logger)
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("关闭 Redis 客户端失败", zap.Error(err))
			}
		}()
	}

	storage, err := dependencies.InitCOS(&cfg.COSConfig, logger)
	if err != nil {
		logger.Fatal("初始化 COS 客户端失败", zap.Error(err))
	}

	var publisher producer.Publisher = producer.NoopPublisher{}
	var kafkaProducer *producer.KafkaProducer
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		publisher = kafkaProducer
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，领域事件不会发布")
	}

	tokens := utils.NewTokenManager(cfg.JWTConfig.SecretKey, time.Duration(cfg.JWTConfig.TTLHours)*time.Hour)

	// 5. 仓库
	userRepo := mysql.NewUserRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	postCommentRepo := mysql.NewPostCommentRepository(db, logger)

	// 6. 服务
	articleService := service.NewArticleService(db, articleRepo, userRepo, rankRepo, storage, publisher, logger)
	commentService := service.NewCommentService(db, articleRepo, userRepo, logger)
	authService := service.NewAuthService(db, userRepo, tokens, logger)
	userService := service.NewUserService(db, userRepo, storage, publisher, logger)
	postService := service.NewPostService(db, postRepo, logger)
	postCommentService := service.NewPostCommentService(db, postRepo, postCommentRepo, logger)

	// 7. 控制器与路由
	ginRouter := router.SetupRouter(logger, &cfg, tokens, router.Controllers{
		Article: controller.NewArticleController(articleService, logger),
		Comment: controller.NewCommentController(commentService, postCommentService, logger),
		Auth:    controller.NewAuthController(authService, logger),
		User:    controller.NewUserController(userService, logger),
		Post:    controller.NewPostController(postService, logger),
	})

	// 8. Kafka 消费者：批量导入文章
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if topic := cfg.KafkaConfig.Topics.ArticleImport; len(cfg.KafkaConfig.Brokers) > 0 && topic != "" {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			groupID = constant.DefaultConsumerGroupID
		}
		importConsumer, err := consumer.NewConsumer(&cfg.KafkaConfig, groupID, topic,
			consumer.NewArticleImportHandler(articleService, logger), logger)
		if err != nil {
			logger.Fatal("初始化文章导入消费者失败", zap.Error(err))
		}
		consumers = append(consumers, importConsumer)
	} else {
		logger.Warn("未配置 Kafka brokers 或 articleImport 主题，跳过文章导入消费者")
	}
	for _, c := range consumers {
		consumerWg.Add(1)
		go func(cons *consumer.Consumer) {
			defer consumerWg.Done()
			cons.Start(consumerCtx)
		}(c)
	}

	// 9. 定时任务：排行榜重建
	var rankTask *tasks.ArticleRankSyncTask
	if rankRepo != nil {
		rankTask = tasks.NewArticleRankSyncTask(cfg.RankSyncConfig, articleRepo, rankRepo, logger)
		if err := rankTask.Start(); err != nil {
			logger.Fatal("启动排行榜重建任务失败", zap.Error(err))
		}
	}

	// 10. HTTP 服务
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// 11. 优雅关停
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// a. 先停 HTTP，处理完在途请求
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	}

	// b. 消费者
	consumerCancel()
	consumerWg.Wait()
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭 Kafka 消费者失败", zap.Error(err))
		}
	}

	// c. 定时任务
	if rankTask != nil {
		select {
		case <-rankTask.Stop().Done():
			logger.Info("排行榜重建任务已停止")
		case <-shutdownCtx.Done():
			logger.Error("等待排行榜重建任务停止超时", zap.Error(shutdownCtx.Err()))
		}
	}

	// d. 生产者放在最后，服务层可能仍在发布事件
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		}
	}

	logger.Info("服务已成功关闭")
}
