package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

const syncTimeout = 2 * time.Minute

// ArticleRankSyncTask 定时用 MySQL 中的权威阅读量重建 Redis 阅读排行榜。
// 阅读时的 ZINCRBY 可能因 Redis 抖动丢失，重建后榜单与数据库对齐。
type ArticleRankSyncTask struct {
	articleRepo mysql.ArticleRepository
	rankRepo    redis.ArticleRankRepository
	cron        *cron.Cron
	schedule    string
	topN        int
	logger      *core.ZapLogger
}

// NewArticleRankSyncTask 创建任务，schedule 或 topN 未配置时使用默认值。需要调用 Start 才会开始调度。
func NewArticleRankSyncTask(
	cfg config.RankSyncConfig,
	articleRepo mysql.ArticleRepository,
	rankRepo redis.ArticleRankRepository,
	logger *core.ZapLogger,
) *ArticleRankSyncTask {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = constant.DefaultRankSyncSchedule
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = constant.DefaultRankSyncTopN
	}
	return &ArticleRankSyncTask{
		articleRepo: articleRepo,
		rankRepo:    rankRepo,
		cron:        cron.New(),
		schedule:    schedule,
		topN:        topN,
		logger:      logger,
	}
}

// Start 注册 cron 作业并启动调度器，schedule 表达式无效时返回错误
func (t *ArticleRankSyncTask) Start() error {
	entryID, err := t.cron.AddFunc(t.schedule, func() {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if err := t.Sync(ctx); err != nil {
			t.logger.Error("重建文章阅读排行榜失败", zap.Error(err))
			return
		}
		t.logger.Info("文章阅读排行榜重建完成", zap.Duration("duration", time.Since(startTime)))
	})
	if err != nil {
		return fmt.Errorf("添加排行榜重建 cron 作业失败 (schedule=%s): %w", t.schedule, err)
	}

	t.cron.Start()
	t.logger.Info("文章阅读排行榜重建任务已启动",
		zap.String("schedule", t.schedule),
		zap.Int("topN", t.topN),
		zap.Uint("cronEntryID", uint(entryID)))
	return nil
}

// Sync 执行一次重建：取阅读量前 topN 的文章，整体替换榜单
func (t *ArticleRankSyncTask) Sync(ctx context.Context) error {
	articles, err := t.articleRepo.ListTopByReads(ctx, t.topN)
	if err != nil {
		return fmt.Errorf("查询热门文章失败: %w", err)
	}

	reads := make(map[uint64]int64, len(articles))
	for _, article := range articles {
		reads[article.ID] = article.Reads
	}
	if err := t.rankRepo.ReplaceRank(ctx, reads); err != nil {
		return err
	}
	t.logger.Debug("排行榜已写入 Redis", zap.Int("articles", len(reads)))
	return nil
}

// Stop 停止调度，返回的 context 在正在执行的作业结束后关闭
func (t *ArticleRankSyncTask) Stop() context.Context {
	t.logger.Info("正在停止文章阅读排行榜重建任务...")
	return t.cron.Stop()
}
