package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"career-smart-go/internal/model"
)

func newAdminFixture() (*fakeUserRepo, *fakeChatRepo, *fakeAssessmentRepo, *fakeResumeRepo, *fakeDashboardCache, AdminService) {
	userRepo := newFakeUserRepo()
	chatRepo := newFakeChatRepo()
	assessmentRepo := newFakeAssessmentRepo()
	resumeRepo := newFakeResumeRepo()
	cache := &fakeDashboardCache{}
	svc := NewAdminService(userRepo, chatRepo, assessmentRepo, resumeRepo, cache)
	return userRepo, chatRepo, assessmentRepo, resumeRepo, cache, svc
}

func seedUsers(userRepo *fakeUserRepo, n int) {
	for i := 0; i < n; i++ {
		userRepo.Create(&model.User{
			Username: fmt.Sprintf("user%d", i+1),
			Email:    fmt.Sprintf("user%d@example.com", i+1),
			Role:     model.RoleUser,
		})
	}
}

func TestGetDashboardStatsCountsAndCaches(t *testing.T) {
	userRepo, chatRepo, assessmentRepo, resumeRepo, cache, svc := newAdminFixture()

	seedUsers(userRepo, 3)
	chatRepo.CreateSessionWithMessages(&model.ChatSession{UserID: 1, Title: "t..."}, nil)
	assessmentRepo.Create(&model.CareerAssessment{UserID: 1})
	assessmentRepo.Create(&model.CareerAssessment{UserID: 2})
	resumeRepo.Create(&model.Resume{UserID: 1, FileName: "cv.pdf"})

	stats, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalAssessments != 2 || stats.TotalChatSessions != 1 || stats.TotalResumes != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	// 刚创建的用户都落在 7 天窗口内
	if stats.RecentUsers != 3 {
		t.Fatalf("expected 3 recent users, got %d", stats.RecentUsers)
	}
	if cache.stats == nil {
		t.Fatal("stats should be written to the cache")
	}

	// 第二次读取命中缓存：底层新增数据不应反映出来
	seedUsers(userRepo, 1)
	stats, err = svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats (cached): %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Fatalf("expected cached TotalUsers=3, got %d", stats.TotalUsers)
	}
}

func TestNormalizePageParams(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-3, 10, 1, 10},
		{2, 0, 2, 10},
		{2, -5, 2, 10},
		{2, 101, 2, 10},
		{2, 100, 2, 100},
		{5, 25, 5, 25},
	}
	for _, c := range cases {
		gotPage, gotLimit := NormalizePageParams(c.page, c.limit)
		if gotPage != c.wantPage || gotLimit != c.wantLimit {
			t.Errorf("NormalizePageParams(%d, %d) = (%d, %d), want (%d, %d)",
				c.page, c.limit, gotPage, gotLimit, c.wantPage, c.wantLimit)
		}
	}
}

func TestListUsersPagination(t *testing.T) {
	userRepo, _, _, _, _, svc := newAdminFixture()
	seedUsers(userRepo, 23)

	resp, err := svc.ListUsers(2, 10)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(resp.Users) != 10 {
		t.Fatalf("expected 10 users on page 2, got %d", len(resp.Users))
	}
	p := resp.Pagination
	if p.Page != 2 || p.Limit != 10 || p.Total != 23 || p.Pages != 3 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	// 最后一页只剩余数
	resp, err = svc.ListUsers(3, 10)
	if err != nil {
		t.Fatalf("ListUsers page 3: %v", err)
	}
	if len(resp.Users) != 3 {
		t.Fatalf("expected 3 users on last page, got %d", len(resp.Users))
	}

	// 越界页返回空列表而非错误
	resp, err = svc.ListUsers(9, 10)
	if err != nil {
		t.Fatalf("ListUsers out of range: %v", err)
	}
	if len(resp.Users) != 0 {
		t.Fatalf("expected empty page, got %d users", len(resp.Users))
	}
}

func TestListUsersTimestampFormat(t *testing.T) {
	userRepo, _, _, _, _, svc := newAdminFixture()

	lastLogin := time.Date(2026, 8, 29, 10, 30, 0, 0, time.Local)
	userRepo.Create(&model.User{
		Username:  "alice",
		Email:     "alice@example.com",
		Role:      model.RoleUser,
		LastLogin: &lastLogin,
	})

	resp, err := svc.ListUsers(1, 10)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	data, err := json.Marshal(resp.Users[0])
	if err != nil {
		t.Fatalf("marshal user list item: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal user list item: %v", err)
	}

	// created_at 与 last_login 使用同一种 "YYYY-MM-DD HH:MM:SS" 格式
	const layout = "2006-01-02 15:04:05"
	for _, key := range []string{"created_at", "last_login"} {
		raw, ok := fields[key].(string)
		if !ok {
			t.Fatalf("%s is not a string: %v", key, fields[key])
		}
		if _, err := time.ParseInLocation(layout, raw, time.Local); err != nil {
			t.Errorf("%s = %q does not match %q", key, raw, layout)
		}
	}
	if got := fields["last_login"].(string); got != "2026-08-29 10:30:00" {
		t.Fatalf("last_login = %q", got)
	}

	// 从未登录的用户 last_login 序列化为 null
	userRepo.Create(&model.User{Username: "bob", Email: "bob@example.com", Role: model.RoleUser})
	resp, _ = svc.ListUsers(1, 10)
	data, _ = json.Marshal(resp.Users[0]) // 倒序排列，bob 在前
	var bob map[string]interface{}
	json.Unmarshal(data, &bob)
	if bob["last_login"] != nil {
		t.Fatalf("expected null last_login, got %v", bob["last_login"])
	}
}

func TestUpdateUserRole(t *testing.T) {
	userRepo, _, _, _, cache, svc := newAdminFixture()
	seedUsers(userRepo, 1)

	// 非法角色在任何查库之前就被拒绝，且不产生变更
	if _, err := svc.UpdateUserRole(1, "superadmin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	u, _ := userRepo.FindByID(1)
	if u.Role != model.RoleUser {
		t.Fatalf("role must be unchanged after invalid update, got %q", u.Role)
	}

	updated, err := svc.UpdateUserRole(1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if updated.Role != model.RoleAdmin {
		t.Fatalf("expected role %q, got %q", model.RoleAdmin, updated.Role)
	}
	u, _ = userRepo.FindByID(1)
	if u.Role != model.RoleAdmin {
		t.Fatalf("role not persisted, got %q", u.Role)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidated)
	}

	if _, err := svc.UpdateUserRole(42, model.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	userRepo, _, _, _, cache, svc := newAdminFixture()
	seedUsers(userRepo, 2)

	if err := svc.DeleteUser(1, 1); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := userRepo.FindByID(1); err != nil {
		t.Fatal("self-delete must not remove the user")
	}

	if err := svc.DeleteUser(42, 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := svc.DeleteUser(2, 1); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := userRepo.FindByID(2); err == nil {
		t.Fatal("user 2 should be deleted")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidated)
	}
}
