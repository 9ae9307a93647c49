package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func TestFollowAndUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	got, err := env.userSvc.Follow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Follow() 返回错误: %v", err)
	}
	if !slices.Contains(got.Follower.Following, bob.ID) || !slices.Contains(got.Followee.Followers, alice.ID) {
		t.Errorf("关注后双方列表不一致: %+v / %+v", got.Follower, got.Followee)
	}

	// 持久化后的状态
	storedBob, err := env.userSvc.GetUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetUser() 返回错误: %v", err)
	}
	if !slices.Equal(storedBob.Followers, []uint64{alice.ID}) {
		t.Errorf("bob.Followers = %v", storedBob.Followers)
	}

	if _, err := env.userSvc.Follow(ctx, alice.ID, bob.ID); !errors.Is(err, myErrors.ErrAlreadyFollowing) {
		t.Errorf("重复关注 err = %v", err)
	}

	got, err = env.userSvc.Unfollow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Unfollow() 返回错误: %v", err)
	}
	if len(got.Follower.Following) != 0 || len(got.Followee.Followers) != 0 {
		t.Errorf("取消关注后列表应为空: %+v / %+v", got.Follower, got.Followee)
	}
	if _, err := env.userSvc.Unfollow(ctx, alice.ID, bob.ID); !errors.Is(err, myErrors.ErrNotFollowing) {
		t.Errorf("重复取消关注 err = %v", err)
	}
}

func TestFollow_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")

	tests := []struct {
		name       string
		follower   uint64
		followee   uint64
		wantErr    error
		wantStatus error
	}{
		{name: "关注自己", follower: alice.ID, followee: alice.ID, wantErr: myErrors.ErrSelfFollow, wantStatus: myErrors.ErrValidation},
		{name: "被关注者不存在", follower: alice.ID, followee: 999, wantErr: myErrors.ErrUserNotFound, wantStatus: myErrors.ErrNotFound},
		{name: "关注者不存在", follower: 999, followee: alice.ID, wantErr: myErrors.ErrUserNotFound, wantStatus: myErrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.userSvc.Follow(ctx, tt.follower, tt.followee)
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, tt.wantStatus) {
				t.Fatalf("err = %v, 期望 %v", err, tt.wantErr)
			}
		})
	}
}

func TestFollow_RepairsHalfEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	// 只写入关注者一侧
	alice.Following = []uint64{bob.ID}
	if err := env.users.SaveFollowEdges(ctx, env.db, alice); err != nil {
		t.Fatalf("SaveFollowEdges() 返回错误: %v", err)
	}

	got, err := env.userSvc.Follow(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Follow() 返回错误: %v", err)
	}
	if !slices.Equal(got.Follower.Following, []uint64{bob.ID}) {
		t.Errorf("不应重复追加: %v", got.Follower.Following)
	}
	if !slices.Equal(got.Followee.Followers, []uint64{alice.ID}) {
		t.Errorf("缺失的一侧应被补齐: %v", got.Followee.Followers)
	}
}

func TestVerifyUser_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "carol")

	for i := 0; i < 2; i++ {
		got, err := env.userSvc.VerifyUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("第 %d 次 VerifyUser() 返回错误: %v", i+1, err)
		}
		if !got.IsVerified {
			t.Errorf("第 %d 次调用后 IsVerified = false", i+1)
		}
	}
	if _, err := env.userSvc.VerifyUser(ctx, 404); !errors.Is(err, myErrors.ErrUserNotFound) {
		t.Errorf("不存在的用户 err = %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "dave")

	got, err := env.userSvc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{
		Occupation: ptr("engineer"),
		About:      ptr(""),
	})
	if err != nil {
		t.Fatalf("UpdateProfile() 返回错误: %v", err)
	}
	if got.Occupation != "engineer" {
		t.Errorf("Occupation = %q", got.Occupation)
	}
	if got.About != "" {
		t.Errorf("出现的空字符串应覆盖原值，About = %q", got.About)
	}
	if got.Username != "dave" {
		t.Errorf("Username 被意外修改: %q", got.Username)
	}

	got, err = env.userSvc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("空请求 UpdateProfile() 返回错误: %v", err)
	}
	if got.Occupation != "engineer" {
		t.Errorf("空请求不应修改资料: %+v", got)
	}

	if _, err := env.userSvc.UpdateProfile(ctx, 404, &dto.UpdateProfileRequest{Location: ptr("x")}); !errors.Is(err, myErrors.ErrUserNotFound) {
		t.Errorf("不存在的用户 err = %v", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "erin")

	got, err := env.userSvc.UploadAvatar(ctx, user.ID, multipartFile(t, constant.FormFieldAvatar, "me.jpg", []byte("jpeg")))
	if err != nil {
		t.Fatalf("UploadAvatar() 返回错误: %v", err)
	}
	if got.Avatar.ImageURL == "" || got.Avatar.Title != "me.jpg" {
		t.Errorf("Avatar = %+v", got.Avatar)
	}

	stored, err := env.users.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() 返回错误: %v", err)
	}
	if !env.storage.has(stored.Avatar.ObjectKey) {
		t.Errorf("对象 %s 未写入存储", stored.Avatar.ObjectKey)
	}

	env.storage.uploadErr = errors.New("cos unavailable")
	if _, err := env.userSvc.UploadAvatar(ctx, user.ID, multipartFile(t, constant.FormFieldAvatar, "me2.jpg", []byte("jpeg"))); err == nil {
		t.Fatal("存储失败时应返回错误")
	}
	after, _ := env.users.GetUserByID(ctx, user.ID)
	if after.Avatar != stored.Avatar {
		t.Errorf("上传失败不应修改头像: %+v", after.Avatar)
	}
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.userSvc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() 返回错误: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("期望空列表，实际 %d", len(got))
	}

	for _, name := range []string{"u1", "u2"} {
		env.createUser(t, name)
	}
	got, err = env.userSvc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() 返回错误: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("期望 2 个用户，实际 %d", len(got))
	}
}
