// Package pipeline 定义了简历后台处理的核心流程。
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-smart-go/internal/config"
	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/advisor"
	"career-smart-go/pkg/log"
	"career-smart-go/pkg/storage"
	"career-smart-go/pkg/tasks"

	"gorm.io/gorm"
)

// Processor 封装了简历处理的所有依赖和逻辑。
// 它从 MinIO 取回简历文件，运行解析器，并将结果写回数据库。
// 当前解析器是占位实现，这里保留的是将来接入真实解析服务的流程骨架。
type Processor struct {
	minioCfg   config.MinIOConfig
	resumeRepo repository.ResumeRepository
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(minioCfg config.MinIOConfig, resumeRepo repository.ResumeRepository) *Processor {
	return &Processor{
		minioCfg:   minioCfg,
		resumeRepo: resumeRepo,
	}
}

// Process 是简历处理的主函数。
func (p *Processor) Process(ctx context.Context, task tasks.ResumeParseTask) error {
	log.Infof("[Processor] 开始处理简历, ResumeID: %d, FileName: %s, UserID: %d", task.ResumeID, task.FileName, task.UserID)

	// 1. 校验简历记录仍然存在且尚未解析。
	// 记录已被删除时跳过任务（重试没有意义），已解析时保证消息重投的幂等性。
	resume, err := p.resumeRepo.FindByID(task.ResumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Processor] 简历记录不存在, 跳过任务, ResumeID: %d", task.ResumeID)
			return nil
		}
		return fmt.Errorf("查询简历记录失败: %w", err)
	}
	if resume.Status == model.ResumeStatusParsed {
		log.Infof("[Processor] 简历已解析, 跳过重复任务, ResumeID: %d", task.ResumeID)
		return nil
	}

	// 2. 从 MinIO 下载简历文件
	log.Infof("[Processor] 步骤2: 从MinIO下载文件, Bucket: %s, Object: %s", p.minioCfg.BucketName, task.ObjectName)
	object, err := storage.GetObject(ctx, p.minioCfg.BucketName, task.ObjectName)
	if err != nil {
		log.Errorf("[Processor] 从MinIO下载文件失败, Object: %s, Error: %v", task.ObjectName, err)
		return fmt.Errorf("从 MinIO 下载文件失败: %w", err)
	}
	defer object.Close()

	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(object)
	if err != nil {
		log.Errorf("[Processor] 从MinIO对象流中读取内容失败, Error: %v", err)
		return fmt.Errorf("读取MinIO对象流失败: %w", err)
	}
	log.Infof("[Processor] 步骤2: 文件下载成功, 大小: %d字节", size)
	if size == 0 {
		markErr := p.resumeRepo.UpdateParsedContent(task.ResumeID, nil, model.ResumeStatusFailed)
		if markErr != nil {
			log.Warnf("[Processor] 标记简历解析失败状态时出错: %v", markErr)
		}
		return errors.New("简历文件内容为空")
	}

	// 3. 解析简历内容（占位实现，真实解析服务接入点）
	log.Info("[Processor] 步骤3: 解析简历内容")
	parsed := advisor.ParseResume(task.FileName, task.FileType)
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}

	// 4. 将解析结果写回数据库并更新状态
	log.Info("[Processor] 步骤4: 写回解析结果")
	if err := p.resumeRepo.UpdateParsedContent(task.ResumeID, parsedJSON, model.ResumeStatusParsed); err != nil {
		log.Errorf("[Processor] 写回解析结果失败, ResumeID: %d, Error: %v", task.ResumeID, err)
		return fmt.Errorf("写回解析结果失败: %w", err)
	}

	log.Infof("[Processor] 简历处理完成, ResumeID: %d", task.ResumeID)
	return nil
}
