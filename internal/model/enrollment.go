package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	CourseID   uint             `gorm:"index:idx_course_student,unique;not null;type:bigint unsigned" json:"courseId"`
	StudentID  uint             `gorm:"index:idx_course_student,unique;not null;type:bigint unsigned" json:"studentId"`
	Status     EnrollmentStatus `gorm:"type:enum('active','dropped','completed');default:'active'" json:"status"`
	EnrolledAt time.Time        `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
