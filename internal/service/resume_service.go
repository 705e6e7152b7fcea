// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"career-smart-go/internal/config"
	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/advisor"
	"career-smart-go/pkg/kafka"
	"career-smart-go/pkg/log"
	"career-smart-go/pkg/storage"
	"career-smart-go/pkg/tasks"

	"github.com/google/uuid"
)

// ResumeService 接口定义了简历上传相关的业务操作。
type ResumeService interface {
	// Upload 校验并存储上传的简历文件，持久化元数据与占位解析结果，
	// 并投递后台解析任务。返回简历记录与解析结果。
	Upload(ctx context.Context, userID uint, fileHeader *multipart.FileHeader, contentType string) (*model.Resume, advisor.ParsedResume, error)
	// ValidateFile 校验文件大小与 MIME 类型是否符合上传策略。
	ValidateFile(size int64, contentType string) error
}

// resumeService 是 ResumeService 接口的实现。
type resumeService struct {
	resumeRepo repository.ResumeRepository
	minioCfg   config.MinIOConfig
	uploadCfg  config.UploadConfig
}

// NewResumeService 创建一个新的 ResumeService 实例。
func NewResumeService(resumeRepo repository.ResumeRepository, minioCfg config.MinIOConfig, uploadCfg config.UploadConfig) ResumeService {
	return &resumeService{
		resumeRepo: resumeRepo,
		minioCfg:   minioCfg,
		uploadCfg:  uploadCfg,
	}
}

// ValidateFile 校验文件大小与 MIME 类型。
func (s *resumeService) ValidateFile(size int64, contentType string) error {
	if size > s.uploadCfg.MaxFileSize {
		return fmt.Errorf("file size %d exceeds the %d byte limit", size, s.uploadCfg.MaxFileSize)
	}
	for _, allowed := range s.uploadCfg.AllowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type %q, only PDF and Word documents are allowed", contentType)
}

// Upload 处理一次简历上传。
func (s *resumeService) Upload(ctx context.Context, userID uint, fileHeader *multipart.FileHeader, contentType string) (*model.Resume, advisor.ParsedResume, error) {
	log.Infof("[ResumeService] 开始处理简历上传, 用户ID: %d, 文件: %s", userID, fileHeader.Filename)

	if err := s.ValidateFile(fileHeader.Size, contentType); err != nil {
		return nil, advisor.ParsedResume{}, err
	}

	// 1. 将文件内容写入 MinIO
	file, err := fileHeader.Open()
	if err != nil {
		return nil, advisor.ParsedResume{}, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))
	if err := storage.PutObject(ctx, s.minioCfg.BucketName, objectName, file, fileHeader.Size, contentType); err != nil {
		return nil, advisor.ParsedResume{}, fmt.Errorf("写入对象存储失败: %w", err)
	}

	// 2. 生成占位解析结果并持久化元数据
	parsed := advisor.ParseResume(fileHeader.Filename, contentType)
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, advisor.ParsedResume{}, err
	}

	resume := &model.Resume{
		UserID:        userID,
		FileName:      fileHeader.Filename,
		FileType:      contentType,
		FileSize:      fileHeader.Size,
		ObjectName:    objectName,
		ParsedContent: parsedJSON,
		Status:        model.ResumeStatusUploaded,
	}
	if err := s.resumeRepo.Create(resume); err != nil {
		// 元数据写入失败时清理已上传的对象，避免留下孤儿文件
		if rmErr := storage.RemoveObject(ctx, s.minioCfg.BucketName, objectName); rmErr != nil {
			log.Warnf("[ResumeService] 清理对象失败: %s, err=%v", objectName, rmErr)
		}
		return nil, advisor.ParsedResume{}, err
	}

	// 3. 投递后台解析任务；投递失败只记日志，上传本身已成功
	task := tasks.ResumeParseTask{
		ResumeID:   resume.ID,
		UserID:     userID,
		ObjectName: objectName,
		FileName:   fileHeader.Filename,
		FileType:   contentType,
	}
	if err := kafka.ProduceResumeTask(task); err != nil {
		log.Warnf("[ResumeService] 投递简历解析任务失败, ResumeID: %d, err=%v", resume.ID, err)
	}

	log.Infof("[ResumeService] 简历上传成功, ResumeID: %d, Object: %s", resume.ID, objectName)
	return resume, parsed, nil
}
