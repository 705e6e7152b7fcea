// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"time"

	"gorm.io/datatypes"
)

// 简历解析状态。
const (
	ResumeStatusUploaded = 0 // 已上传，等待后台解析
	ResumeStatusParsed   = 1 // 后台解析完成
	ResumeStatusFailed   = 2 // 后台解析失败
)

// Resume 对应于数据库中的 'resumes' 表。
// 文件内容本体存放在 MinIO，这里只保留元数据和解析结果快照。
type Resume struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	FileName string `gorm:"type:varchar(255);not null" json:"fileName"`
	FileType string `gorm:"type:varchar(100);not null" json:"fileType"`
	FileSize int64  `gorm:"not null" json:"fileSize"`
	// ObjectName 是文件在 MinIO 存储桶中的对象名。
	ObjectName    string         `gorm:"type:varchar(255);not null" json:"-"`
	ParsedContent datatypes.JSON `json:"parsedContent"`
	Status        int            `gorm:"type:tinyint;not null;default:0" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Resume) TableName() string {
	return "resumes"
}
