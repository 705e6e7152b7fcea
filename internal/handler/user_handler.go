// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"career-smart-go/internal/model"
	"career-smart-go/internal/service"
	"career-smart-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理所有与普通用户相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// currentUser 从上下文中取出由 AuthMiddleware 注入的 User 对象。
func currentUser(c *gin.Context) (*model.User, bool) {
	userValue, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := userValue.(*model.User)
	return user, ok && user != nil
}

// GetDashboard 返回当前用户的公开资料与三项独立计数。
func (h *UserHandler) GetDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	stats, err := h.userService.GetDashboard(user.ID)
	if err != nil {
		log.Error("GetDashboard: failed to fetch dashboard data", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
		"stats": stats,
	})
}

// UpdateProfileRequest 定义了更新个人资料 API 的请求体结构。
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdateProfile 处理更新用户名与邮箱的请求。
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateProfile: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and email are required"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUser) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already taken"})
			return
		}
		log.Error("UpdateProfile: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	log.Infof("User '%s' updated profile successfully", updated.Username)
	// 密码字段通过模型的 json:"-" 标签被永久屏蔽
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
