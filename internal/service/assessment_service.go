// Package service 包含了应用的业务逻辑层。
package service

import (
	"encoding/json"

	"career-smart-go/internal/model"
	"career-smart-go/internal/repository"
	"career-smart-go/pkg/advisor"
)

// AssessmentService 接口定义了职业测评相关的业务操作。
type AssessmentService interface {
	// SubmitQuiz 计算推荐结果并将答案与推荐一并持久化。
	// answers 为 nil 时返回 ErrAnswersRequired。
	SubmitQuiz(userID uint, answers []interface{}) (uint, []advisor.CareerRecommendation, error)
	// ListByUser 按创建时间倒序返回用户的全部测评记录。
	ListByUser(userID uint) ([]model.CareerAssessment, error)
}

// assessmentService 是 AssessmentService 接口的实现。
type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	advisor        advisor.Client
}

// NewAssessmentService 创建一个新的 AssessmentService 实例。
func NewAssessmentService(assessmentRepo repository.AssessmentRepository, advisorClient advisor.Client) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		advisor:        advisorClient,
	}
}

// SubmitQuiz 处理一次测评提交。
func (s *assessmentService) SubmitQuiz(userID uint, answers []interface{}) (uint, []advisor.CareerRecommendation, error) {
	if answers == nil {
		return 0, nil, ErrAnswersRequired
	}

	recommendations := s.advisor.Recommend(answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return 0, nil, err
	}
	recommendationsJSON, err := json.Marshal(recommendations)
	if err != nil {
		return 0, nil, err
	}

	assessment := &model.CareerAssessment{
		UserID:          userID,
		Answers:         answersJSON,
		Recommendations: recommendationsJSON,
	}
	if err := s.assessmentRepo.Create(assessment); err != nil {
		return 0, nil, err
	}

	return assessment.ID, recommendations, nil
}

// ListByUser 返回用户的全部测评记录。
func (s *assessmentService) ListByUser(userID uint) ([]model.CareerAssessment, error) {
	return s.assessmentRepo.FindByUser(userID)
}
