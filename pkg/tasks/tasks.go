// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// ResumeParseTask represents the data structure for a background resume parsing job.
type ResumeParseTask struct {
	ResumeID   uint   `json:"resume_id"`
	UserID     uint   `json:"user_id"`
	ObjectName string `json:"object_name"`
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
}
