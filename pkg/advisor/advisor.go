// Package advisor 提供职业指导的应答与推荐能力。
// 当前实现是占位的固定内容版本，接口保留了将来替换为真实模型服务的空间。
package advisor

import "math/rand"

// CareerRecommendation 表示一条带匹配度评分的职业推荐。
type CareerRecommendation struct {
	Title       string `json:"title"`
	Match       int    `json:"match"`
	Description string `json:"description"`
}

// Client defines the interface for a career advisor backend.
type Client interface {
	// Reply 针对用户的一条聊天消息给出应答文本。
	Reply(message string) string
	// Recommend 根据测评答案计算职业推荐列表。
	Recommend(answers []interface{}) []CareerRecommendation
}

// cannedClient 是 Client 的固定内容实现：应答从固定列表中均匀随机挑选，
// 推荐忽略答案内容，始终返回静态职业表的前三项。
type cannedClient struct{}

// NewClient 创建一个新的 advisor Client 实例。
func NewClient() Client {
	return &cannedClient{}
}

// cannedResponses 是聊天应答的固定候选列表。
var cannedResponses = []string{
	"That's a great question about your career! Based on your interests, I'd recommend exploring roles in technology, healthcare, or creative industries.",
	"Career development is a journey. Consider your strengths, interests, and values when making decisions.",
	"Have you thought about what skills you'd like to develop? This can help guide your career path.",
	"Networking and continuous learning are key to career success. What areas interest you most?",
	"Consider taking our career assessment quiz to get personalized recommendations!",
}

// careers 是静态的职业推荐表。
var careers = []CareerRecommendation{
	{Title: "Software Developer", Match: 85, Description: "Build applications and systems"},
	{Title: "Data Scientist", Match: 78, Description: "Analyze data to drive decisions"},
	{Title: "UX Designer", Match: 72, Description: "Design user-friendly interfaces"},
	{Title: "Project Manager", Match: 68, Description: "Lead teams and manage projects"},
	{Title: "Marketing Specialist", Match: 65, Description: "Promote products and services"},
}

// Reply 从固定列表中均匀随机返回一条应答。
func (c *cannedClient) Reply(message string) string {
	return cannedResponses[rand.Intn(len(cannedResponses))]
}

// Recommend 返回静态职业表的前三项，不参考答案内容。
func (c *cannedClient) Recommend(answers []interface{}) []CareerRecommendation {
	top := make([]CareerRecommendation, 3)
	copy(top, careers[:3])
	return top
}
