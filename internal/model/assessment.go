// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"gorm.io/datatypes"
)

// CareerAssessment 对应于数据库中的 'career_assessments' 表。
// Answers 与 Recommendations 以 JSON 列整体存储，保持提交时的顺序。
type CareerAssessment struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"userId"`
	Answers         datatypes.JSON `gorm:"not null" json:"answers"`
	Recommendations datatypes.JSON `gorm:"not null" json:"recommendations"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (CareerAssessment) TableName() string {
	return "career_assessments"
}
