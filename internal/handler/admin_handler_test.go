package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/internal/service"

	"github.com/gin-gonic/gin"
)

// stubAdminService 是 AdminService 的可编程桩实现。
type stubAdminService struct {
	stats    *repository.DashboardStats
	userList *service.UserListResponse
	user     *model.User
	err      error

	gotPage, gotLimit    int
	gotTarget, gotCaller uint
	gotRole              string
}

func (s *stubAdminService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.stats, s.err
}

func (s *stubAdminService) ListUsers(page, limit int) (*service.UserListResponse, error) {
	s.gotPage, s.gotLimit = page, limit
	return s.userList, s.err
}

func (s *stubAdminService) UpdateUserRole(targetID uint, role string) (*model.User, error) {
	s.gotTarget, s.gotRole = targetID, role
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubAdminService) DeleteUser(targetID, callerID uint) error {
	s.gotTarget, s.gotCaller = targetID, callerID
	return s.err
}

func newAdminRouter(admin service.AdminService) *gin.Engine {
	r := gin.New()
	h := NewAdminHandler(admin)
	g := r.Group("/api/v1/admin", withTestUser(&model.User{ID: 1, Username: "root", Role: model.RoleAdmin}))
	{
		g.GET("/dashboard", h.GetDashboard)
		g.GET("/users", h.ListUsers)
		g.PUT("/users/:userId/role", h.UpdateUserRole)
		g.DELETE("/users/:userId", h.DeleteUser)
	}
	return r
}

func TestAdminDashboardWrapsStats(t *testing.T) {
	svc := &stubAdminService{stats: &repository.DashboardStats{TotalUsers: 10, RecentUsers: 2}}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Stats repository.DashboardStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Stats.TotalUsers != 10 || resp.Stats.RecentUsers != 2 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
}

func TestListUsersParsesQueryParams(t *testing.T) {
	svc := &stubAdminService{userList: &service.UserListResponse{
		Users:      []service.UserListItem{},
		Pagination: service.Pagination{Page: 2, Limit: 5, Total: 0, Pages: 0},
	}}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/users?page=2&limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotPage != 2 || svc.gotLimit != 5 {
		t.Fatalf("params not forwarded: page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}

	// 非数字参数回退到默认值
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/users?page=abc&limit=xyz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotPage != 1 || svc.gotLimit != 10 {
		t.Fatalf("expected defaults, got page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}
}

func TestUpdateUserRoleErrors(t *testing.T) {
	// 非数字的用户 ID
	r := newAdminRouter(&stubAdminService{})
	w := doJSON(t, r, http.MethodPut, "/api/v1/admin/users/abc/role", gin.H{"role": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad user ID: status = %d, want 400", w.Code)
	}

	// 角色字段缺失
	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/users/2/role", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing role: status = %d, want 400", w.Code)
	}

	// 非法角色
	r = newAdminRouter(&stubAdminService{err: service.ErrInvalidRole})
	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/users/2/role", gin.H{"role": "superadmin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid role: status = %d, want 400", w.Code)
	}

	// 目标用户不存在
	r = newAdminRouter(&stubAdminService{err: service.ErrUserNotFound})
	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/users/42/role", gin.H{"role": "admin"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing user: status = %d, want 404", w.Code)
	}
}

func TestUpdateUserRoleSuccess(t *testing.T) {
	svc := &stubAdminService{user: &model.User{
		ID:       2,
		Username: "bob",
		Password: "$2a$10$secret-hash",
		Role:     model.RoleAdmin,
	}}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/api/v1/admin/users/2/role", gin.H{"role": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotTarget != 2 || svc.gotRole != "admin" {
		t.Fatalf("args not forwarded: target=%d role=%q", svc.gotTarget, svc.gotRole)
	}
	var resp struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Message != "User role updated successfully" || resp.User.Role != model.RoleAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// 密码哈希在任何响应中都不得出现
	assertNoPassword(t, w.Body.Bytes())
}

func TestDeleteUserSelfDeletionIs400(t *testing.T) {
	svc := &stubAdminService{err: service.ErrSelfDeletion}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/admin/users/1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Cannot delete your own account" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestDeleteUserForwardsCaller(t *testing.T) {
	svc := &stubAdminService{}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/admin/users/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if svc.gotTarget != 2 || svc.gotCaller != 1 {
		t.Fatalf("args not forwarded: target=%d caller=%d", svc.gotTarget, svc.gotCaller)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "User deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}
