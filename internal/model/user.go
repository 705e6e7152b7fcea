// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// 用户角色的两个合法取值。
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 对应于数据库中的 'users' 表。
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(50);not null;index" json:"username"`
	Email    string `gorm:"type:varchar(100);not null;index" json:"email"`
	// Password 存储 bcrypt 哈希，序列化时永远不输出。
	Password  string     `gorm:"type:varchar(100);not null" json:"-"`
	Role      string     `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastLogin *time.Time `gorm:"default:null" json:"last_login"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

// IsValidRole 判断给定角色是否在允许的枚举范围内。
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
