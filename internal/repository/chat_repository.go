// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"career-smart-go/internal/model"

	"gorm.io/gorm"
)

// ChatRepository 接口定义了聊天会话与消息的持久化操作。
type ChatRepository interface {
	// CreateSessionWithMessages 在一个事务中创建会话并追加初始消息。
	// 会话创建与消息写入要么全部成功，要么全部回滚，避免产生空会话。
	CreateSessionWithMessages(session *model.ChatSession, messages []*model.ChatMessage) error
	// AppendMessages 向已有会话追加消息。
	AppendMessages(messages []*model.ChatMessage) error
	// FindSessionByIDAndUser 查找归属于指定用户的会话。
	FindSessionByIDAndUser(sessionID, userID uint) (*model.ChatSession, error)
	// FindMessagesBySession 按创建时间升序返回会话的全部消息。
	FindMessagesBySession(sessionID uint) ([]model.ChatMessage, error)
	CountSessions() (int64, error)
	CountSessionsByUser(userID uint) (int64, error)
}

// chatRepository 是 ChatRepository 接口的 GORM 实现。
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// CreateSessionWithMessages 在一个事务中创建会话并写入初始消息。
func (r *chatRepository) CreateSessionWithMessages(session *model.ChatSession, messages []*model.ChatMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for _, msg := range messages {
			msg.SessionID = session.ID
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendMessages 顺序追加消息到已有会话。
func (r *chatRepository) AppendMessages(messages []*model.ChatMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, msg := range messages {
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindSessionByIDAndUser 查找归属于指定用户的会话。
// 会话不存在或归属他人时返回 gorm.ErrRecordNotFound。
func (r *chatRepository) FindSessionByIDAndUser(sessionID, userID uint) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindMessagesBySession 按创建时间升序返回会话内全部消息。
func (r *chatRepository) FindMessagesBySession(sessionID uint) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.Where("session_id = ?", sessionID).Order("created_at asc").Find(&messages).Error
	return messages, err
}

// CountSessions 返回会话总数。
func (r *chatRepository) CountSessions() (int64, error) {
	var total int64
	err := r.db.Model(&model.ChatSession{}).Count(&total).Error
	return total, err
}

// CountSessionsByUser 返回指定用户的会话数。
func (r *chatRepository) CountSessionsByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.ChatSession{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
