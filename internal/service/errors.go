// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务层的哨兵错误，handler 层据此映射到 4xx 状态码。
var (
	// ErrDuplicateUser 表示用户名或邮箱已被其他用户占用。
	ErrDuplicateUser = errors.New("username or email already taken")
	// ErrInvalidCredentials 表示用户名或密码不正确。
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound 表示目标用户不存在。
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole 表示角色不在 user/admin 枚举范围内。
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfDeletion 表示管理员试图删除自己的账号。
	ErrSelfDeletion = errors.New("cannot delete your own account")
	// ErrSessionNotFound 表示聊天会话不存在或不归属于请求用户。
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrAnswersRequired 表示测评答案缺失或不是序列。
	ErrAnswersRequired = errors.New("quiz answers are required")
)
