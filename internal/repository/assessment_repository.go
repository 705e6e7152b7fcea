// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"career-smart-go/internal/model"

	"gorm.io/gorm"
)

// AssessmentRepository 接口定义了职业测评记录的持久化操作。
type AssessmentRepository interface {
	Create(assessment *model.CareerAssessment) error
	// FindByUser 按创建时间倒序返回指定用户的全部测评记录。
	FindByUser(userID uint) ([]model.CareerAssessment, error)
	Count() (int64, error)
	CountByUser(userID uint) (int64, error)
}

// assessmentRepository 是 AssessmentRepository 接口的 GORM 实现。
type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository 创建一个新的 AssessmentRepository 实例。
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create 在数据库中创建一条新的测评记录。
func (r *assessmentRepository) Create(assessment *model.CareerAssessment) error {
	return r.db.Create(assessment).Error
}

// FindByUser 按创建时间倒序返回指定用户的测评记录。
func (r *assessmentRepository) FindByUser(userID uint) ([]model.CareerAssessment, error) {
	var assessments []model.CareerAssessment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&assessments).Error
	return assessments, err
}

// Count 返回测评记录总数。
func (r *assessmentRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&model.CareerAssessment{}).Count(&total).Error
	return total, err
}

// CountByUser 返回指定用户的测评记录数。
func (r *assessmentRepository) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.CareerAssessment{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}
