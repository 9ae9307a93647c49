package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func newArticleRequest(title, category string) *dto.CreateArticleRequest {
	return &dto.CreateArticleRequest{
		Title:    title,
		Overview: "overview of " + title,
		Category: category,
		Content:  words(50),
		Author:   "Ada",
	}
}

func TestCreateArticle_DerivedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		title        string
		content      string
		wantSlug     string
		wantReadTime int
	}{
		{name: "450 个词", title: "Hello, World! Go", content: words(450), wantSlug: "hello-world-go", wantReadTime: 3},
		{name: "恰好 200 个词", title: "  Trim  Me  ", content: words(200), wantSlug: "trim-me", wantReadTime: 1},
		{name: "一个词", title: "A-B--C", content: "one", wantSlug: "a-b-c", wantReadTime: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newArticleRequest(tt.title, "go")
			req.Content = tt.content
			got, err := env.articles.CreateArticle(ctx, req)
			if err != nil {
				t.Fatalf("CreateArticle() 返回错误: %v", err)
			}
			if got.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, 期望 %q", got.Slug, tt.wantSlug)
			}
			if got.ReadTime != tt.wantReadTime {
				t.Errorf("ReadTime = %d, 期望 %d", got.ReadTime, tt.wantReadTime)
			}
			if got.Reads != 0 {
				t.Errorf("新文章 Reads = %d, 期望 0", got.Reads)
			}
			if len(got.Comments) != 0 {
				t.Errorf("新文章不应有评论")
			}
		})
	}
}

func TestCreateArticle_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateArticleRequest)
		wantErr error
	}{
		{name: "缺少标题", mutate: func(r *dto.CreateArticleRequest) { r.Title = " " }, wantErr: myErrors.ErrValidation},
		{name: "缺少内容", mutate: func(r *dto.CreateArticleRequest) { r.Content = "" }, wantErr: myErrors.ErrValidation},
		{name: "缺少分类", mutate: func(r *dto.CreateArticleRequest) { r.Category = "" }, wantErr: myErrors.ErrValidation},
		{name: "作者信息都缺失", mutate: func(r *dto.CreateArticleRequest) { r.Author = "" }, wantErr: myErrors.ErrMissingAuthor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newArticleRequest("Title", "go")
			tt.mutate(req)
			_, err := env.articles.CreateArticle(ctx, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}

	list, err := env.articles.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles() 返回错误: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("校验失败后不应写入文章，实际 %d 篇", len(list))
	}
}

func TestCreateArticle_AuthorSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "ada")

	req := newArticleRequest("With Author", "go")
	req.Author = ""
	req.AuthorID = &user.ID
	got, err := env.articles.CreateArticle(ctx, req)
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	if got.AuthorDetails.Username != "ada" || got.AuthorDetails.Email != "ada@example.com" {
		t.Errorf("作者快照 = %+v", got.AuthorDetails)
	}

	// 用户不存在时照常创建，快照为空
	req = newArticleRequest("Ghost Author", "go")
	req.AuthorID = ptr(uint64(9999))
	got, err = env.articles.CreateArticle(ctx, req)
	if err != nil {
		t.Fatalf("未知作者 CreateArticle() 返回错误: %v", err)
	}
	if got.AuthorDetails.Username != "" {
		t.Errorf("未知作者的快照应为空，实际 %+v", got.AuthorDetails)
	}
}

func TestGetArticle_IncrementsReads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.articles.CreateArticle(ctx, newArticleRequest("Counted", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	for want := int64(1); want <= 3; want++ {
		got, err := env.articles.GetArticle(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetArticle() 返回错误: %v", err)
		}
		if got.Reads != want {
			t.Errorf("第 %d 次读取 Reads = %d", want, got.Reads)
		}
	}

	if _, err := env.articles.GetArticle(ctx, 424242); !errors.Is(err, myErrors.ErrArticleNotFound) {
		t.Errorf("不存在的文章 err = %v", err)
	}
}

func TestUpdateArticle_ExplicitPresence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.articles.CreateArticle(ctx, newArticleRequest("Original Title", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}

	t.Run("必填字段出现时不能为空", func(t *testing.T) {
		_, err := env.articles.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Title: ptr("")})
		if !errors.Is(err, myErrors.ErrValidation) {
			t.Fatalf("err = %v, 期望校验错误", err)
		}
	})

	t.Run("只有 author 的文章不能清空作者", func(t *testing.T) {
		_, err := env.articles.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Author: ptr("  ")})
		if !errors.Is(err, myErrors.ErrMissingAuthor) {
			t.Fatalf("err = %v, 期望 ErrMissingAuthor", err)
		}
		got, err := env.articles.GetArticle(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetArticle() 返回错误: %v", err)
		}
		if got.Author != "Ada" {
			t.Errorf("Author = %q, 期望保持 Ada", got.Author)
		}
	})

	t.Run("关联了用户的文章可以清空 author", func(t *testing.T) {
		owner := env.createUser(t, "grace")
		req := newArticleRequest("Owned Title", "go")
		req.AuthorID = &owner.ID
		owned, err := env.articles.CreateArticle(ctx, req)
		if err != nil {
			t.Fatalf("CreateArticle() 返回错误: %v", err)
		}
		got, err := env.articles.UpdateArticle(ctx, owned.ID, &dto.UpdateArticleRequest{Author: ptr("")})
		if err != nil {
			t.Fatalf("UpdateArticle() 返回错误: %v", err)
		}
		if got.Author != "" {
			t.Errorf("Author = %q, 期望空字符串", got.Author)
		}
		if got.Title != "Owned Title" {
			t.Errorf("未出现的字段被修改: Title = %q", got.Title)
		}
	})

	t.Run("标题与内容联动 slug 和阅读时长", func(t *testing.T) {
		got, err := env.articles.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{
			Title:   ptr("Brand New Title"),
			Content: ptr(words(401)),
		})
		if err != nil {
			t.Fatalf("UpdateArticle() 返回错误: %v", err)
		}
		if got.Slug != "brand-new-title" {
			t.Errorf("Slug = %q", got.Slug)
		}
		if got.ReadTime != 3 {
			t.Errorf("ReadTime = %d, 期望 3", got.ReadTime)
		}
		if got.Overview != "overview of Original Title" {
			t.Errorf("Overview 被意外修改: %q", got.Overview)
		}
	})

	t.Run("空请求返回原文章", func(t *testing.T) {
		got, err := env.articles.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{})
		if err != nil {
			t.Fatalf("UpdateArticle() 返回错误: %v", err)
		}
		if got.Title != "Brand New Title" {
			t.Errorf("Title = %q", got.Title)
		}
	})

	t.Run("文章不存在", func(t *testing.T) {
		_, err := env.articles.UpdateArticle(ctx, 9999, &dto.UpdateArticleRequest{Author: ptr("x")})
		if !errors.Is(err, myErrors.ErrArticleNotFound) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("文章不存在时优先返回 NotFound", func(t *testing.T) {
		_, err := env.articles.UpdateArticle(ctx, 9999, &dto.UpdateArticleRequest{Title: ptr("")})
		if !errors.Is(err, myErrors.ErrArticleNotFound) {
			t.Fatalf("err = %v, 期望 ErrArticleNotFound", err)
		}
	})
}

func TestDeleteArticle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.articles.DeleteArticle(ctx, 1); !errors.Is(err, myErrors.ErrArticleNotFound) {
		t.Fatalf("删除不存在的文章 err = %v", err)
	}

	created, err := env.articles.CreateArticle(ctx, newArticleRequest("Doomed", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	if _, err := env.comments.AddComment(ctx, created.ID, "first", nil); err != nil {
		t.Fatalf("AddComment() 返回错误: %v", err)
	}
	if err := env.articles.DeleteArticle(ctx, created.ID); err != nil {
		t.Fatalf("DeleteArticle() 返回错误: %v", err)
	}
	if _, err := env.articles.GetArticle(ctx, created.ID); !errors.Is(err, myErrors.ErrArticleNotFound) {
		t.Errorf("删除后 GetArticle err = %v", err)
	}
	if err := env.articles.DeleteArticle(ctx, created.ID); !errors.Is(err, myErrors.ErrArticleNotFound) {
		t.Errorf("重复删除 err = %v", err)
	}
}

func TestBulkCreateArticles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("任意一篇无效则全部不写入", func(t *testing.T) {
		reqs := []dto.CreateArticleRequest{
			*newArticleRequest("Good One", "go"),
			*newArticleRequest("", "go"),
		}
		_, err := env.articles.BulkCreateArticles(ctx, reqs)
		if !errors.Is(err, myErrors.ErrValidation) {
			t.Fatalf("err = %v, 期望校验错误", err)
		}
		if !strings.Contains(err.Error(), "第 2 篇") {
			t.Errorf("错误信息应指出第几篇: %v", err)
		}
		list, _ := env.articles.ListArticles(ctx)
		if len(list) != 0 {
			t.Errorf("失败后不应有文章，实际 %d 篇", len(list))
		}
	})

	t.Run("全部有效", func(t *testing.T) {
		reqs := []dto.CreateArticleRequest{
			*newArticleRequest("First Post", "go"),
			*newArticleRequest("Second Post", "rust"),
		}
		got, err := env.articles.BulkCreateArticles(ctx, reqs)
		if err != nil {
			t.Fatalf("BulkCreateArticles() 返回错误: %v", err)
		}
		if len(got) != 2 || got[0].Slug != "first-post" || got[1].Slug != "second-post" {
			t.Errorf("批量结果不符合预期: %+v", got)
		}
	})

	t.Run("空数组", func(t *testing.T) {
		got, err := env.articles.BulkCreateArticles(ctx, nil)
		if err != nil {
			t.Fatalf("空数组 err = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("期望空结果，实际 %d", len(got))
		}
	})
}

func TestRandomArticles_OnePerCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, category := range []string{"go", "rust", "zig"} {
		for i := 0; i < 2; i++ {
			if _, err := env.articles.CreateArticle(ctx, newArticleRequest(category+" article", category)); err != nil {
				t.Fatalf("CreateArticle() 返回错误: %v", err)
			}
		}
	}

	got, err := env.articles.RandomArticles(ctx, constant.RandomArticleCount)
	if err != nil {
		t.Fatalf("RandomArticles() 返回错误: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("期望 3 篇（每个分类一篇），实际 %d", len(got))
	}
	seen := make(map[string]bool)
	for _, a := range got {
		if seen[a.Category] {
			t.Errorf("分类 %s 出现多次", a.Category)
		}
		seen[a.Category] = true
	}

	got, err = env.articles.RandomArticles(ctx, 2)
	if err != nil {
		t.Fatalf("RandomArticles(2) 返回错误: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("n=2 时期望 2 篇，实际 %d", len(got))
	}
}

func TestListArticlesByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.articles.ListArticlesByAuthor(ctx, 77); !errors.Is(err, myErrors.ErrUserNotFound) {
		t.Fatalf("未知用户 err = %v", err)
	}

	user := env.createUser(t, "grace")
	got, err := env.articles.ListArticlesByAuthor(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListArticlesByAuthor() 返回错误: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("期望空列表，实际 %d", len(got))
	}

	req := newArticleRequest("Grace's Notes", "go")
	req.AuthorID = &user.ID
	if _, err := env.articles.CreateArticle(ctx, req); err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	if _, err := env.articles.CreateArticle(ctx, newArticleRequest("Someone Else", "go")); err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}
	got, err = env.articles.ListArticlesByAuthor(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListArticlesByAuthor() 返回错误: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "graces-notes" {
		t.Errorf("结果不符合预期: %+v", got)
	}
}

func TestUploadThumbnail_ReplacesPreviousObject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.articles.CreateArticle(ctx, newArticleRequest("Pictured", "go"))
	if err != nil {
		t.Fatalf("CreateArticle() 返回错误: %v", err)
	}

	first, err := env.articles.UploadThumbnail(ctx, created.ID, multipartFile(t, constant.FormFieldThumbnail, "a.PNG", []byte("png-1")))
	if err != nil {
		t.Fatalf("UploadThumbnail() 返回错误: %v", err)
	}
	if first.Thumbnail.Title != "a.PNG" || !strings.HasSuffix(first.Thumbnail.ImageURL, ".png") {
		t.Errorf("缩略图 = %+v", first.Thumbnail)
	}
	if len(env.storage.objects) != 1 {
		t.Fatalf("期望存储 1 个对象，实际 %d", len(env.storage.objects))
	}

	if _, err := env.articles.UploadThumbnail(ctx, created.ID, multipartFile(t, constant.FormFieldThumbnail, "b.jpg", []byte("jpg-2"))); err != nil {
		t.Fatalf("第二次 UploadThumbnail() 返回错误: %v", err)
	}
	if len(env.storage.deleted) != 1 || len(env.storage.objects) != 1 {
		t.Errorf("替换后旧对象应被删除: deleted=%v objects=%d", env.storage.deleted, len(env.storage.objects))
	}

	if _, err := env.articles.UploadThumbnail(ctx, 9999, multipartFile(t, constant.FormFieldThumbnail, "c.jpg", []byte("x"))); !errors.Is(err, myErrors.ErrArticleNotFound) {
		t.Errorf("不存在的文章 err = %v", err)
	}
	if _, err := env.articles.UploadThumbnail(ctx, created.ID, nil); !errors.Is(err, myErrors.ErrEmptyUpload) {
		t.Errorf("空文件 err = %v", err)
	}
}

func TestTrendingArticles_FallsBackToDatabase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var ids []uint64
	for _, title := range []string{"Cold", "Warm", "Hot"} {
		a, err := env.articles.CreateArticle(ctx, newArticleRequest(title, "go"))
		if err != nil {
			t.Fatalf("CreateArticle() 返回错误: %v", err)
		}
		ids = append(ids, a.ID)
	}
	// Warm 读 1 次，Hot 读 2 次
	for i, id := range ids {
		for n := 0; n < i; n++ {
			if _, err := env.articles.GetArticle(ctx, id); err != nil {
				t.Fatalf("GetArticle() 返回错误: %v", err)
			}
		}
	}

	got, err := env.articles.TrendingArticles(ctx, 2)
	if err != nil {
		t.Fatalf("TrendingArticles() 返回错误: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Hot" || got[1].Title != "Warm" {
		t.Errorf("排行结果不符合预期: %+v", got)
	}
}
