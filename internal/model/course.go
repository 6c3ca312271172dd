package model

// swagger:model Course
type Course struct {
	BaseModel
	Code        string  `gorm:"size:32;unique;not null" json:"code"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Semester    string  `gorm:"size:32" json:"semester"` // e.g. "2025-fall"
	Year        int     `gorm:"default:0" json:"year"`
	ProfessorID uint    `gorm:"index;type:bigint unsigned" json:"professorId"`
	// PassingGrade 及格线（百分制）。0 表示未配置，投影结果为 unknown
	PassingGrade float64 `gorm:"default:0" json:"passingGrade"`
	Archived     bool    `gorm:"default:false" json:"archived"`

	GradeComponents []GradeComponent `gorm:"foreignKey:CourseID" json:"gradeComponents,omitempty"`
	GradeBands      []GradeBand      `gorm:"foreignKey:CourseID" json:"gradeBands,omitempty"`
	Assignments     []Assignment     `gorm:"foreignKey:CourseID" json:"assignments,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
