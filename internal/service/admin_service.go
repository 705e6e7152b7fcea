// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/log"

	"gorm.io/gorm"
)

// recentUserWindow 是"最近注册用户"统计的时间窗口（7 天）。
const recentUserWindow = 7 * 24 * time.Hour

// 分页参数的边界。page/limit 非法时回退到默认值并收敛到边界内。
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// UserListItem 是用户列表接口中单个用户的投影，不包含密码字段。
type UserListItem struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	CreatedAt model.LocalTime  `json:"created_at"`
	LastLogin *model.LocalTime `json:"last_login"`
}

// Pagination 描述分页窗口与总量。
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// UserListResponse 是分页用户列表的完整结果。
type UserListResponse struct {
	Users      []UserListItem `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// AdminService 接口定义了所有管理员相关的业务操作。
type AdminService interface {
	// GetDashboardStats 返回全站五项计数，结果短暂缓存在 Redis 中。
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	// ListUsers 按创建时间倒序分页返回用户列表。
	ListUsers(page, limit int) (*UserListResponse, error)
	// UpdateUserRole 校验并更新目标用户的角色，返回更新后的用户。
	UpdateUserRole(targetID uint, role string) (*model.User, error)
	// DeleteUser 删除目标用户及其关联数据；目标为调用者自身时拒绝。
	DeleteUser(targetID, callerID uint) error
}

// adminService 是 AdminService 接口的实现。
type adminService struct {
	userRepo       repository.UserRepository
	chatRepo       repository.ChatRepository
	assessmentRepo repository.AssessmentRepository
	resumeRepo     repository.ResumeRepository
	dashboardCache repository.DashboardCache
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(
	userRepo repository.UserRepository,
	chatRepo repository.ChatRepository,
	assessmentRepo repository.AssessmentRepository,
	resumeRepo repository.ResumeRepository,
	dashboardCache repository.DashboardCache,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		chatRepo:       chatRepo,
		assessmentRepo: assessmentRepo,
		resumeRepo:     resumeRepo,
		dashboardCache: dashboardCache,
	}
}

// GetDashboardStats 返回全站统计。任何一项计数失败都会使整个请求失败。
func (s *adminService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	// 优先读缓存；缓存层故障只记日志，不影响主流程
	if cached, err := s.dashboardCache.Get(ctx); err != nil {
		log.Warnf("[AdminService] 读取仪表盘统计缓存失败: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalAssessments, err := s.assessmentRepo.Count()
	if err != nil {
		return nil, err
	}
	totalChatSessions, err := s.chatRepo.CountSessions()
	if err != nil {
		return nil, err
	}
	totalResumes, err := s.resumeRepo.Count()
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.userRepo.CountCreatedSince(time.Now().Add(-recentUserWindow))
	if err != nil {
		return nil, err
	}

	stats := &repository.DashboardStats{
		TotalUsers:        totalUsers,
		TotalAssessments:  totalAssessments,
		TotalChatSessions: totalChatSessions,
		TotalResumes:      totalResumes,
		RecentUsers:       recentUsers,
	}

	if err := s.dashboardCache.Set(ctx, stats); err != nil {
		log.Warnf("[AdminService] 写入仪表盘统计缓存失败: %v", err)
	}

	return stats, nil
}

// NormalizePageParams 将分页参数收敛到合法边界内。
// page < 1 回退为 1；limit 超出 [1, 100] 回退为默认值 10。
func NormalizePageParams(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// ListUsers 分页返回用户列表，按创建时间倒序。
func (s *adminService) ListUsers(page, limit int) (*UserListResponse, error) {
	page, limit = NormalizePageParams(page, limit)
	offset := (page - 1) * limit

	users, total, err := s.userRepo.FindWithPagination(offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		item := UserListItem{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: model.LocalTime(u.CreatedAt),
		}
		if u.LastLogin != nil {
			lastLogin := model.LocalTime(*u.LastLogin)
			item.LastLogin = &lastLogin
		}
		items = append(items, item)
	}

	return &UserListResponse{
		Users: items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// UpdateUserRole 更新目标用户的角色。
// 角色不在枚举范围内时返回 ErrInvalidRole，且不产生任何变更。
func (s *adminService) UpdateUserRole(targetID uint, role string) (*model.User, error) {
	if !model.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// 角色变更不影响计数，但保持缓存语义简单：直接失效
	if err := s.dashboardCache.Invalidate(context.Background()); err != nil {
		log.Warnf("[AdminService] 仪表盘统计缓存失效失败: %v", err)
	}

	return user, nil
}

// DeleteUser 删除目标用户及其名下数据。管理员不能删除自己。
func (s *adminService) DeleteUser(targetID, callerID uint) error {
	if targetID == callerID {
		return ErrSelfDeletion
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.DeleteWithOwnedData(targetID); err != nil {
		return err
	}

	if err := s.dashboardCache.Invalidate(context.Background()); err != nil {
		log.Warnf("[AdminService] 仪表盘统计缓存失效失败: %v", err)
	}

	return nil
}
