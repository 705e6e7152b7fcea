// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"career-smart-go/internal/service"
	"career-smart-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理所有与管理员相关的 API 请求。
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetDashboard 返回全站五项统计计数。
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		log.Error("GetDashboard: failed to fetch admin dashboard data", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admin dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListUsers 处理分页获取用户列表的请求。
// page/limit 非数字或越界时回退到安全默认值。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	userList, err := h.adminService.ListUsers(page, limit)
	if err != nil {
		log.Error("ListUsers: Failed to list users", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      userList.Users,
		"pagination": userList.Pagination,
	})
}

// UpdateRoleRequest 定义了更新用户角色 API 的请求体结构。
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole 处理更新用户角色的请求。
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		log.Warnf("UpdateUserRole: Invalid user ID format, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user, err := h.adminService.UpdateUserRole(uint(userID), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.Error("UpdateUserRole: failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		}
		return
	}

	log.Infof("Admin updated role of user ID %d to '%s'", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"message": "User role updated successfully",
		"user":    user,
	})
}

// DeleteUser 处理删除用户的请求。管理员不能删除自己。
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		log.Warnf("DeleteUser: Invalid user ID format, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	if err := h.adminService.DeleteUser(uint(userID), caller.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDeletion):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			log.Error("DeleteUser: failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	log.Infof("Admin '%s' deleted user ID %d", caller.Username, userID)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
