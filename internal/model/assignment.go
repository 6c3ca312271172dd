package model

import "time"

type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "draft"
	AssignmentPublished AssignmentStatus = "published"
	AssignmentClosed    AssignmentStatus = "closed"
)

// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID       uint              `gorm:"index;not null;type:bigint unsigned" json:"courseId"`
	Title          string            `gorm:"size:255;not null" json:"title"`
	Description    string            `gorm:"type:text" json:"description"`
	Category       ComponentCategory `gorm:"type:enum('lab','assignment','midterm','exam','project');not null" json:"category"`
	MaxScore       float64           `gorm:"default:100" json:"maxScore"`
	Weight         float64           `gorm:"default:0" json:"weight"`
	DueDate        time.Time         `gorm:"index" json:"dueDate"`
	Status         AssignmentStatus  `gorm:"type:enum('draft','published','closed');default:'draft'" json:"status"`
	AttachmentKey  string            `gorm:"size:255" json:"attachmentKey,omitempty"`
	AttachmentName string            `gorm:"size:255" json:"attachmentName,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
