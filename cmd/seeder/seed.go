package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/pkg/authz"
	"github.com/Xushengqwer/blog_service/service"
)

// seedPassword 满足注册时的强密码规则
const seedPassword = "Seeder#2024"

const concurrencyLimit = 8

var seedCategories = []string{"programming", "design", "travel", "science", "lifestyle"}

// SeedOptions 各类数据的生成数量
type SeedOptions struct {
	Users    int
	Articles int
	Posts    int
}

// SeedSummary 实际写入成功的数量
type SeedSummary struct {
	Users    int
	Articles int
	Posts    int
}

// Seeder 通过服务层写入测试数据，校验与派生字段与线上请求一致
type Seeder struct {
	auth         service.AuthService
	users        service.UserService
	articles     service.ArticleService
	comments     service.CommentService
	posts        service.PostService
	postComments service.PostCommentService
	logger       *core.ZapLogger
}

// Seed 依次注册用户、建立关注关系、发文章与帖子。用户全部注册失败时返回错误。
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (SeedSummary, error) {
	var summary SeedSummary

	userIDs := s.seedUsers(ctx, opts.Users)
	summary.Users = len(userIDs)
	if len(userIDs) == 0 {
		return summary, fmt.Errorf("没有成功注册任何用户")
	}

	s.seedFollows(ctx, userIDs)
	summary.Articles = s.seedArticles(ctx, userIDs, opts.Articles)
	summary.Posts = s.seedPosts(ctx, userIDs, opts.Posts)
	return summary, nil
}

// seedUsers 顺序注册，用户名与邮箱带序号避免冲突
func (s *Seeder) seedUsers(ctx context.Context, n int) []uint64 {
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s_%d", strings.ToLower(gofakeit.Username()), i)
		result, err := s.auth.Register(ctx, &dto.RegisterRequest{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: seedPassword,
		})
		if err != nil {
			s.logger.Warn("注册用户失败", zap.String("username", username), zap.Error(err))
			continue
		}
		userID := result.User.ID

		location := gofakeit.City()
		about := gofakeit.Sentence(12)
		if _, err := s.users.UpdateProfile(ctx, userID, &dto.UpdateProfileRequest{About: &about, Location: &location}); err != nil {
			s.logger.Warn("填写个人资料失败", zap.Uint64("user_id", userID), zap.Error(err))
		}
		if gofakeit.Bool() {
			_, _ = s.users.VerifyUser(ctx, userID)
		}
		ids = append(ids, userID)
	}
	return ids
}

// seedFollows 每个用户随机关注其他若干用户，重复关注的错误直接忽略
func (s *Seeder) seedFollows(ctx context.Context, userIDs []uint64) {
	if len(userIDs) < 2 {
		return
	}
	for _, follower := range userIDs {
		for j := 0; j < gofakeit.Number(1, 3); j++ {
			followee := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			if followee == follower {
				continue
			}
			_, _ = s.users.Follow(ctx, follower, followee)
		}
	}
}

func (s *Seeder) seedArticles(ctx context.Context, userIDs []uint64, n int) int {
	var created atomic.Int64
	s.runConcurrently(n, func(i int) {
		authorID := userIDs[gofakeit.Number(0, len(userIDs)-1)]
		req := &dto.CreateArticleRequest{
			Title:    gofakeit.Sentence(gofakeit.Number(3, 8)),
			Overview: gofakeit.Sentence(15),
			Category: seedCategories[gofakeit.Number(0, len(seedCategories)-1)],
			Content:  gofakeit.Paragraph(4, 6, 25, "\n\n"),
			AuthorID: &authorID,
		}
		article, err := s.articles.CreateArticle(ctx, req)
		if err != nil {
			s.logger.Error(fmt.Sprintf("创建文章 %d/%d 失败", i+1, n), zap.Error(err))
			return
		}
		created.Add(1)

		for k := 0; k < gofakeit.Number(0, 3); k++ {
			commenter := userIDs[gofakeit.Number(0, len(userIDs)-1)]
			comment, err := s.comments.AddComment(ctx, article.ID, gofakeit.Sentence(10), &commenter)
			if err != nil {
				s.logger.Warn("添加文章评论失败", zap.Uint64("article_id", article.ID), zap.Error(err))
				continue
			}
			if gofakeit.Bool() {
				_, _ = s.comments.AddReply(ctx, article.ID, comment.ID, gofakeit.Sentence(6), &authorID)
			}
		}
	})
	return int(created.Load())
}

func (s *Seeder) seedPosts(ctx context.Context, userIDs []uint64, n int) int {
	var created atomic.Int64
	s.runConcurrently(n, func(i int) {
		author := authz.Principal{UserID: userIDs[gofakeit.Number(0, len(userIDs)-1)]}
		req := &dto.PostRequest{
			Title:    gofakeit.Sentence(gofakeit.Number(3, 8)),
			Content:  gofakeit.Paragraph(2, 4, 20, "\n\n"),
			Overview: gofakeit.Sentence(10),
			Tags:     randomTags(gofakeit.Number(1, 3)),
		}
		post, err := s.posts.CreatePost(ctx, author, req)
		if err != nil {
			s.logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", i+1, n), zap.Error(err))
			return
		}
		created.Add(1)

		for _, uid := range userIDs {
			if gofakeit.Number(0, 3) == 0 {
				_, _ = s.posts.LikePost(ctx, authz.Principal{UserID: uid}, post.ID)
			}
		}
		if gofakeit.Bool() {
			commenter := authz.Principal{UserID: userIDs[gofakeit.Number(0, len(userIDs)-1)]}
			root, err := s.postComments.AddComment(ctx, commenter, post.ID, gofakeit.Sentence(8))
			if err != nil {
				s.logger.Warn("添加帖子评论失败", zap.Uint64("post_id", post.ID), zap.Error(err))
				return
			}
			_, _ = s.postComments.AddReply(ctx, author, root.ID, gofakeit.Sentence(5))
		}
	})
	return int(created.Load())
}

// runConcurrently 以 concurrencyLimit 为上限并发执行 fn
func (s *Seeder) runConcurrently(n int, fn func(i int)) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrencyLimit)
	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			fn(idx)
		}(i)
	}
	wg.Wait()
}

func randomTags(n int) []string {
	order := make([]int, len(enums.AllPostTags))
	for i := range order {
		order[i] = i
	}
	gofakeit.ShuffleInts(order)

	tags := make([]string, 0, n)
	for _, i := range order[:n] {
		tags = append(tags, string(enums.AllPostTags[i]))
	}
	return tags
}
