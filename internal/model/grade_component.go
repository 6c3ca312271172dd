package model

// ComponentCategory 成绩构成类别
type ComponentCategory string

const (
	CategoryLab        ComponentCategory = "lab"
	CategoryAssignment ComponentCategory = "assignment"
	CategoryMidterm    ComponentCategory = "midterm"
	CategoryExam       ComponentCategory = "exam"
	CategoryProject    ComponentCategory = "project"
)

func (c ComponentCategory) Valid() bool {
	switch c {
	case CategoryLab, CategoryAssignment, CategoryMidterm, CategoryExam, CategoryProject:
		return true
	}
	return false
}

// GradeComponent 一门课程中按权重计入总评的成绩构成项
// swagger:model GradeComponent
type GradeComponent struct {
	BaseModel
	CourseID     uint              `gorm:"index;not null;type:bigint unsigned" json:"courseId"`
	Name         string            `gorm:"size:100;not null" json:"name"`
	Category     ComponentCategory `gorm:"type:enum('lab','assignment','midterm','exam','project');not null" json:"category"`
	Weight       float64           `gorm:"not null" json:"weight"` // 占总评百分比 0-100
	MinimumScore float64           `gorm:"default:0" json:"minimumScore"`
	TotalPoints  float64           `gorm:"default:100" json:"totalPoints"`
	IsMandatory  bool              `gorm:"default:false" json:"isMandatory"`
	Position     int               `gorm:"default:0" json:"position"`
}

func (GradeComponent) TableName() string {
	return "grade_components"
}
