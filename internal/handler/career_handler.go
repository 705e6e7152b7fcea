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

// CareerHandler 负责处理聊天、测评等职业指导相关的 API 请求。
type CareerHandler struct {
	chatService       service.ChatService
	assessmentService service.AssessmentService
}

// NewCareerHandler 创建一个新的 CareerHandler 实例。
func NewCareerHandler(chatService service.ChatService, assessmentService service.AssessmentService) *CareerHandler {
	return &CareerHandler{
		chatService:       chatService,
		assessmentService: assessmentService,
	}
}

// ChatRequest 定义了聊天 API 的请求体结构。
// SessionID 省略或为 0 时表示开启新会话。
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID uint   `json:"sessionId"`
}

// Chat 处理一条聊天消息：按需创建会话并返回助手应答。
func (h *CareerHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	sessionID, response, err := h.chatService.SendMessage(user.ID, req.Message, req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		log.Error("Chat: failed to process chat message", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"response":  response,
	})
}

// GetChatHistory 返回归属于当前用户的会话及其全部消息。
func (h *CareerHandler) GetChatHistory(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("sessionId"), 10, 32)
	if err != nil {
		// 非法的会话 ID 与不存在的会话同样处理，不向调用方泄露差异
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	history, err := h.chatService.GetHistory(user.ID, uint(sessionID))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
			return
		}
		log.Error("GetChatHistory: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  history.Session,
		"messages": history.Messages,
	})
}

// QuizRequest 定义了职业测评 API 的请求体结构。
type QuizRequest struct {
	Answers []interface{} `json:"answers"`
}

// Quiz 处理一次测评提交，返回测评 ID 与推荐列表。
func (h *CareerHandler) Quiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Quiz: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz answers are required"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	assessmentID, recommendations, err := h.assessmentService.SubmitQuiz(user.ID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrAnswersRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz answers are required"})
			return
		}
		log.Error("Quiz: failed to process career quiz", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process career quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessmentId":    assessmentID,
		"recommendations": recommendations,
	})
}

// GetAssessments 返回当前用户的全部测评记录，按创建时间倒序。
func (h *CareerHandler) GetAssessments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法获取用户信息"})
		return
	}

	assessments, err := h.assessmentService.ListByUser(user.ID)
	if err != nil {
		log.Error("GetAssessments: failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
