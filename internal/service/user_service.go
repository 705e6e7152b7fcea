// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"errors"
	"time"

	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/database"
	"career-smart-go/pkg/hash"
	"career-smart-go/pkg/token"

	"gorm.io/gorm"
)

// UserStats 是用户个人仪表盘的统计结果。
type UserStats struct {
	Assessments  int64 `json:"assessments"`
	ChatSessions int64 `json:"chatSessions"`
	Resumes      int64 `json:"resumes"`
}

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, email, password string) (*model.User, error)
	Login(username, password string) (accessToken, refreshToken string, err error)
	Logout(tokenString string) error
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	GetProfile(username string) (*model.User, error)
	// GetDashboard 返回用户名下三类数据的独立计数。
	GetDashboard(userID uint) (*UserStats, error)
	// UpdateProfile 在通过重复性检查后更新用户名与邮箱，返回更新后的用户。
	UpdateProfile(userID uint, username, email string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo       repository.UserRepository
	chatRepo       repository.ChatRepository
	assessmentRepo repository.AssessmentRepository
	resumeRepo     repository.ResumeRepository
	jwtManager     *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(
	userRepo repository.UserRepository,
	chatRepo repository.ChatRepository,
	assessmentRepo repository.AssessmentRepository,
	resumeRepo repository.ResumeRepository,
	jwtManager *token.JWTManager,
) UserService {
	return &userService{
		userRepo:       userRepo,
		chatRepo:       chatRepo,
		assessmentRepo: assessmentRepo,
		resumeRepo:     resumeRepo,
		jwtManager:     jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(username, email, password string) (*model.User, error) {
	// 1. 检查用户名或邮箱是否已被占用
	_, err := s.userRepo.FindDuplicate(username, email, 0)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 创建新用户，默认角色为 user
	newUser := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Login 处理用户登录的业务逻辑。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	// 3. 生成 access token 和 refresh token
	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	// 4. 记录最后登录时间
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Logout 处理用户登出逻辑，将 token 加入 Redis 黑名单。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	// token 的剩余有效期将作为 Redis key 的过期时间。
	expiration := time.Until(claims.ExpiresAt.Time)
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// RefreshToken 验证 refresh token 并签发新的 access token 和 refresh token。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	// 1. 验证 refresh token 是否有效
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	// 2. 检查用户是否存在
	user, err := s.userRepo.FindByUsername(claims.Username)
	if err != nil {
		return "", "", ErrUserNotFound
	}

	// 3. 签发新的 token
	newAccessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

// GetProfile 根据用户名获取用户详细信息。
func (s *userService) GetProfile(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetDashboard 返回用户名下测评、会话、简历的三项独立计数。
func (s *userService) GetDashboard(userID uint) (*UserStats, error) {
	assessments, err := s.assessmentRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	chatSessions, err := s.chatRepo.CountSessionsByUser(userID)
	if err != nil {
		return nil, err
	}
	resumes, err := s.resumeRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		Assessments:  assessments,
		ChatSessions: chatSessions,
		Resumes:      resumes,
	}, nil
}

// UpdateProfile 更新用户的用户名与邮箱。
// 更新前先检查是否与其他用户冲突，冲突时返回 ErrDuplicateUser。
func (s *userService) UpdateProfile(userID uint, username, email string) (*model.User, error) {
	// 1. 重复性检查：用户名或邮箱被其他用户占用则拒绝
	_, err := s.userRepo.FindDuplicate(username, email, userID)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 更新用户记录
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Username = username
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}
