package consumer

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// fakeReader 依次返回 msgs，取完后返回 io.EOF
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

// scriptedHandler 按 offset 返回预设的错误序列
type scriptedHandler struct {
	errs  map[int64][]error
	calls map[int64]int
}

func (h *scriptedHandler) Handle(_ context.Context, msg kafka.Message) error {
	n := h.calls[msg.Offset]
	h.calls[msg.Offset] = n + 1
	if seq := h.errs[msg.Offset]; n < len(seq) {
		return seq[n]
	}
	return nil
}

func TestConsumer_CommitsAfterHandling(t *testing.T) {
	transient := errors.New("db timeout")
	reader := &fakeReader{msgs: []kafka.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}}}
	handler := &scriptedHandler{
		errs: map[int64][]error{
			2: {transient},                       // 第二次成功
			3: {transient, transient, transient}, // 重试用尽
		},
		calls: map[int64]int{},
	}
	c := newConsumer(reader, "blog.article.import", handler, newTestLogger(t))
	c.backoff = time.Millisecond

	c.Start(context.Background())

	wantCalls := map[int64]int{1: 1, 2: 2, 3: maxAttempts}
	for offset, want := range wantCalls {
		if handler.calls[offset] != want {
			t.Errorf("offset %d 处理次数 = %d, 期望 %d", offset, handler.calls[offset], want)
		}
	}
	if len(reader.committed) != 3 {
		t.Fatalf("提交的位移 = %v, 期望 3 条", reader.committed)
	}
}

func TestConsumer_CancelledContextSkipsCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{msgs: []kafka.Message{{Offset: 7}}}
	handler := handlerFunc(func(context.Context, kafka.Message) error {
		cancel()
		return errors.New("interrupted")
	})
	c := newConsumer(reader, "blog.article.import", handler, newTestLogger(t))

	c.Start(ctx)

	if len(reader.committed) != 0 {
		t.Errorf("ctx 取消后不应提交位移, committed = %v", reader.committed)
	}
}

type handlerFunc func(ctx context.Context, msg kafka.Message) error

func (f handlerFunc) Handle(ctx context.Context, msg kafka.Message) error { return f(ctx, msg) }

type fakeBulkCreator struct {
	got [][]dto.CreateArticleRequest
	err error
}

func (f *fakeBulkCreator) BulkCreateArticles(_ context.Context, reqs []dto.CreateArticleRequest) ([]*vo.ArticleVO, error) {
	f.got = append(f.got, reqs)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*vo.ArticleVO, len(reqs))
	for i := range reqs {
		out[i] = &vo.ArticleVO{ID: uint64(i + 1), Title: reqs[i].Title}
	}
	return out, nil
}

func TestArticleImportHandler(t *testing.T) {
	batch := []byte(`[{"title":"A","overview":"o","category":"go","content":"c","author":"Ada"}]`)

	tests := []struct {
		name      string
		value     []byte
		createErr error
		wantErr   bool
		wantCalls int
	}{
		{name: "正常导入", value: batch, wantCalls: 1},
		{name: "不是数组直接丢弃", value: []byte(`{"title":"A"}`), wantCalls: 0},
		{name: "校验失败直接丢弃", value: batch, createErr: myErrors.Validationf("第 1 篇文章: 缺少字段 title"), wantCalls: 1},
		{name: "作者不存在直接丢弃", value: batch, createErr: myErrors.ErrUserNotFound, wantCalls: 1},
		{name: "其他错误交给消费者重试", value: batch, createErr: errors.New("deadlock"), wantErr: true, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeBulkCreator{err: tt.createErr}
			h := NewArticleImportHandler(creator, newTestLogger(t))

			err := h.Handle(context.Background(), kafka.Message{Value: tt.value, Offset: 42})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Handle() err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(creator.got) != tt.wantCalls {
				t.Errorf("BulkCreateArticles 调用 %d 次, 期望 %d", len(creator.got), tt.wantCalls)
			}
			if tt.wantCalls > 0 && creator.got[0][0].Title != "A" {
				t.Errorf("解析出的标题 = %q, 期望 A", creator.got[0][0].Title)
			}
		})
	}
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	if err != nil {
		t.Fatalf("初始化测试日志失败: %v", err)
	}
	return logger
}
