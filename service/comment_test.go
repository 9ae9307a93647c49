package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestAddCommentAndReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "linus")

	article, err := env.articles.CreateArticle(ctx, newArticleRequest("Commented", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}

	first, err := env.comments.AddComment(ctx, article.ID, "first!", &author.ID)
	if err != nil {
		t.Fatalf("AddComment() 返回错误: %v", err)
	}
	if first.ID == "" || first.Author.Username != "linus" {
		t.Errorf("评论 = %+v", first)
	}
	second, err := env.comments.AddComment(ctx, article.ID, "anonymous", nil)
	if err != nil {
		t.Fatalf("匿名 AddComment() 返回错误: %v", err)
	}

	reply, err := env.comments.AddReply(ctx, article.ID, first.ID, "thanks", &author.ID)
	if err != nil {
		t.Fatalf("AddReply() 返回错误: %v", err)
	}

	got, err := env.articles.GetArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetArticle() 返回错误: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("期望 2 条评论，实际 %d", len(got.Comments))
	}
	if got.Comments[0].ID != first.ID || got.Comments[1].ID != second.ID {
		t.Errorf("评论顺序应与写入顺序一致")
	}
	if replies := got.Comments[0].Replies; len(replies) != 1 || replies[0].ID != reply.ID || replies[0].Content != "thanks" {
		t.Errorf("回复 = %+v", replies)
	}
	if len(got.Comments[1].Replies) != 0 {
		t.Errorf("第二条评论不应有回复")
	}
}

func TestAddComment_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	article, err := env.articles.CreateArticle(ctx, newArticleRequest("Target", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	comment, err := env.comments.AddComment(ctx, article.ID, "root", nil)
	if err != nil {
		t.Fatalf("AddComment() 返回错误: %v", err)
	}

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name:    "评论内容为空",
			run:     func() error { _, err := env.comments.AddComment(ctx, article.ID, "  ", nil); return err },
			wantErr: myErrors.ErrEmptyContent,
		},
		{
			name:    "评论的文章不存在",
			run:     func() error { _, err := env.comments.AddComment(ctx, 9999, "hi", nil); return err },
			wantErr: myErrors.ErrArticleNotFound,
		},
		{
			name:    "回复的文章不存在",
			run:     func() error { _, err := env.comments.AddReply(ctx, 9999, comment.ID, "hi", nil); return err },
			wantErr: myErrors.ErrArticleNotFound,
		},
		{
			name:    "回复的评论不存在",
			run:     func() error { _, err := env.comments.AddReply(ctx, article.ID, "no-such-comment", "hi", nil); return err },
			wantErr: myErrors.ErrCommentNotFound,
		},
		{
			name:    "回复内容为空",
			run:     func() error { _, err := env.comments.AddReply(ctx, article.ID, comment.ID, "", nil); return err },
			wantErr: myErrors.ErrEmptyContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}
}
