// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"career-smart-go/internal/model"

	"gorm.io/gorm"
)

// ResumeRepository 接口定义了简历元数据的持久化操作。
type ResumeRepository interface {
	Create(resume *model.Resume) error
	// FindByID 根据 ID 查找简历记录，供后台处理前校验记录仍然存在。
	FindByID(resumeID uint) (*model.Resume, error)
	// UpdateParsedContent 更新简历的解析结果快照与状态。
	UpdateParsedContent(resumeID uint, parsedContent []byte, status int) error
	Count() (int64, error)
	CountByUser(userID uint) (int64, error)
}

// resumeRepository 是 ResumeRepository 接口的 GORM 实现。
type resumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository 创建一个新的 ResumeRepository 实例。
func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create 在数据库中创建一条新的简历记录。
func (r *resumeRepository) Create(resume *model.Resume) error {
	return r.db.Create(resume).Error
}

// FindByID 根据 ID 查找简历记录。
func (r *resumeRepository) FindByID(resumeID uint) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.First(&resume, resumeID).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// UpdateParsedContent 更新简历的解析结果与状态。
func (r *resumeRepository) UpdateParsedContent(resumeID uint, parsedContent []byte, status int) error {
	return r.db.Model(&model.Resume{}).Where("id = ?", resumeID).
		Updates(map[string]interface{}{
			"parsed_content": parsedContent,
			"status":         status,
		}).Error
}

// Count 返回简历记录总数。
func (r *resumeRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&model.Resume{}).Count(&total).Error
	return total, err
}

// CountByUser 返回指定用户的简历记录数。
func (r *resumeRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.Resume{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
