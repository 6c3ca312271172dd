package model

// Grade 某个学生一次计分记录，关联到作业或直接关联到成绩构成项
// swagger:model Grade
type Grade struct {
	BaseModel
	StudentID        uint    `gorm:"index;not null;type:bigint unsigned" json:"studentId"`
	CourseID         uint    `gorm:"index;not null;type:bigint unsigned" json:"courseId"`
	AssignmentID     *uint   `gorm:"index;type:bigint unsigned" json:"assignmentId,omitempty"`
	GradeComponentID *uint   `gorm:"index;type:bigint unsigned" json:"gradeComponentId,omitempty"`
	Score            float64 `gorm:"not null" json:"score"`
	MaxScore         float64 `gorm:"not null;default:100" json:"maxScore"`
	GraderID         uint    `gorm:"type:bigint unsigned" json:"graderId"`
	Comment          string  `gorm:"type:text" json:"comment,omitempty"`
}

func (Grade) TableName() string {
	return "grades"
}
