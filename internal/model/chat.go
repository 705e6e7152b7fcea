// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// 消息发送方的两个合法取值。
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatSession 对应于数据库中的 'chat_sessions' 表。
// 一个会话归属于单个用户，分组该用户的一串有序消息。
type ChatSession struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage 对应于数据库中的 'chat_messages' 表。
// 消息只追加不修改，按创建时间排序。
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uint      `gorm:"index;not null" json:"sessionId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Sender    string    `gorm:"type:varchar(10);not null" json:"sender"` // "user" 或 "ai"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ChatMessage) TableName() string {
	return "chat_messages"
}
