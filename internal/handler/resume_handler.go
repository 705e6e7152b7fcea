// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"strings"

	"career-smart-go/internal/service"
	"career-smart-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ResumeHandler 负责处理简历上传相关的 API 请求。
type ResumeHandler struct {
	resumeService service.ResumeService
}

// NewResumeHandler 创建一个新的 ResumeHandler 实例。
func NewResumeHandler(resumeService service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// Upload 处理简历上传请求。
// 文件通过 multipart 表单的 'resume' 字段提交，校验大小（≤5MB）与 MIME 白名单。
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resume file is required"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	// multipart 头可能附带 "; charset=..." 等参数，取主类型
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	if err := h.resumeService.ValidateFile(fileHeader.Size, contentType); err != nil {
		log.Warnf("Upload: resume rejected for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resume, parsedContent, err := h.resumeService.Upload(c.Request.Context(), user.ID, fileHeader, contentType)
	if err != nil {
		log.Error("Upload: failed to process resume", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resumeId":      resume.ID,
		"parsedContent": parsedContent,
		"message":       "Resume uploaded and parsed successfully",
	})
}
