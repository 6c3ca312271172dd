package model

import "time"

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionReturned  SubmissionStatus = "returned"
)

// swagger:model Submission
type Submission struct {
	UUIDBase
	AssignmentID uint             `gorm:"index;not null;type:bigint unsigned" json:"assignmentId"`
	StudentID    uint             `gorm:"index;not null;type:bigint unsigned" json:"studentId"`
	FileKey      string           `gorm:"size:255;not null" json:"fileKey"`
	FileName     string           `gorm:"size:255" json:"fileName"`
	ContentType  string           `gorm:"size:100" json:"contentType"`
	Size         int64            `gorm:"default:0" json:"size"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Late         bool             `gorm:"default:false" json:"late"`
	Status       SubmissionStatus `gorm:"type:enum('submitted','graded','returned');default:'submitted'" json:"status"`
	GradeID      *uint            `gorm:"type:bigint unsigned" json:"gradeId,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
