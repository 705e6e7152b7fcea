// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"

	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/advisor"

	"gorm.io/gorm"
)

// sessionTitleLimit 是会话标题取自首条消息的最大字符数。
const sessionTitleLimit = 50

// ChatHistory 是一次聊天历史查询的完整结果。
type ChatHistory struct {
	Session  *model.ChatSession  `json:"session"`
	Messages []model.ChatMessage `json:"messages"`
}

// ChatService 接口定义了聊天相关的业务操作。
type ChatService interface {
	// SendMessage 处理一条用户消息：按需创建会话，追加用户消息与助手应答，
	// 返回会话 ID 与应答文本。sessionID 为 0 表示未携带会话。
	SendMessage(userID uint, message string, sessionID uint) (uint, string, error)
	// GetHistory 返回归属于用户的会话及其全部消息（升序）。
	// 会话不存在或归属他人时返回 ErrSessionNotFound。
	GetHistory(userID, sessionID uint) (*ChatHistory, error)
}

// chatService 是 ChatService 接口的实现。
type chatService struct {
	chatRepo repository.ChatRepository
	advisor  advisor.Client
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(chatRepo repository.ChatRepository, advisorClient advisor.Client) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		advisor:  advisorClient,
	}
}

// sessionTitle 从首条消息派生会话标题：取前 50 个字符并追加省略号。
func sessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) > sessionTitleLimit {
		runes = runes[:sessionTitleLimit]
	}
	return string(runes) + "..."
}

// SendMessage 处理一条聊天消息。
// 未携带会话 ID 时创建新会话，并在同一个事务中写入用户消息与助手应答，
// 保证不会留下没有消息的空会话。
func (s *chatService) SendMessage(userID uint, message string, sessionID uint) (uint, string, error) {
	response := s.advisor.Reply(message)

	userMsg := &model.ChatMessage{Message: message, Sender: model.SenderUser}
	aiMsg := &model.ChatMessage{Message: response, Sender: model.SenderAI}

	if sessionID == 0 {
		// 惰性创建会话，标题取自首条消息
		session := &model.ChatSession{
			UserID: userID,
			Title:  sessionTitle(message),
		}
		if err := s.chatRepo.CreateSessionWithMessages(session, []*model.ChatMessage{userMsg, aiMsg}); err != nil {
			return 0, "", err
		}
		return session.ID, response, nil
	}

	// 校验会话归属后再追加
	session, err := s.chatRepo.FindSessionByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", ErrSessionNotFound
		}
		return 0, "", err
	}

	userMsg.SessionID = session.ID
	aiMsg.SessionID = session.ID
	if err := s.chatRepo.AppendMessages([]*model.ChatMessage{userMsg, aiMsg}); err != nil {
		return 0, "", err
	}

	return session.ID, response, nil
}

// GetHistory 返回会话及其全部消息。
func (s *chatService) GetHistory(userID, sessionID uint) (*ChatHistory, error) {
	session, err := s.chatRepo.FindSessionByIDAndUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	messages, err := s.chatRepo.FindMessagesBySession(session.ID)
	if err != nil {
		return nil, err
	}

	return &ChatHistory{Session: session, Messages: messages}, nil
}
