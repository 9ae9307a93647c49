package dto

import (
	"errors"
	"testing"

	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestDecodeArticleBatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr error
	}{
		{name: "数组", body: `[{"title":"a","author":"x"},{"title":"b","author_id":3}]`, wantLen: 2},
		{name: "空数组", body: " [] ", wantLen: 0},
		{name: "单个对象", body: `{"title":"a"}`, wantErr: myErrors.ErrNotJSONArray},
		{name: "空请求体", body: "", wantErr: myErrors.ErrNotJSONArray},
		{name: "格式错误", body: `[{"title":]`, wantErr: myErrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeArticleBatch([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, 期望 %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeArticleBatch() 返回错误: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, 期望 %d", len(got), tt.wantLen)
			}
		})
	}
}
