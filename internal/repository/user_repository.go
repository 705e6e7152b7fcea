// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"time"

	"career-smart-go/internal/model"

	"gorm.io/gorm"
)

// UserRepository 接口定义了用户数据的持久化操作。
type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByID(userID uint) (*model.User, error)
	Update(user *model.User) error
	// FindWithPagination 按创建时间倒序分页检索用户，返回用户列表与总记录数。
	FindWithPagination(offset, limit int) ([]model.User, int64, error)
	// FindDuplicate 查找用户名或邮箱与给定值相同、但 ID 不等于 excludeID 的用户。
	FindDuplicate(username, email string, excludeID uint) (*model.User, error)
	// DeleteWithOwnedData 在一个事务中删除用户及其会话、消息、测评和简历记录。
	DeleteWithOwnedData(userID uint) error
	Count() (int64, error)
	CountCreatedSince(t time.Time) (int64, error)
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 在数据库中创建一个新的用户记录。
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByUsername 根据用户名从数据库中查找一个用户。
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据用户 ID 从数据库中查找一个用户。
func (r *userRepository) FindByID(userID uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新数据库中一个已存在的用户记录。
func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// FindWithPagination 按创建时间倒序分页检索用户记录。
// 它返回用户列表、总记录数和可能发生的错误。
func (r *userRepository) FindWithPagination(offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.Model(&model.User{})

	// 首先计算总记录数
	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 然后根据偏移量和限制获取当前页的数据
	err = db.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindDuplicate 查找与给定用户名或邮箱冲突的其他用户。
// 未找到冲突时返回 gorm.ErrRecordNotFound。
func (r *userRepository) FindDuplicate(username, email string, excludeID uint) (*model.User, error) {
	var user model.User
	err := r.db.Where("(username = ? OR email = ?) AND id <> ?", username, email, excludeID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteWithOwnedData 在一个事务中删除用户及其全部关联数据。
func (r *userRepository) DeleteWithOwnedData(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 先删除该用户所有会话下的消息
		var sessionIDs []uint
		if err := tx.Model(&model.ChatSession{}).Where("user_id = ?", userID).
			Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("session_id IN ?", sessionIDs).Delete(&model.ChatMessage{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.ChatSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.CareerAssessment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Resume{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
}

// Count 返回用户总数。
func (r *userRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&model.User{}).Count(&total).Error
	return total, err
}

// CountCreatedSince 返回在给定时间之后注册的用户数。
func (r *userRepository) CountCreatedSince(t time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&model.User{}).Where("created_at >= ?", t).Count(&total).Error
	return total, err
}
