package model

// GradeBand 分数段到校方成绩等级的映射，区间两端均为闭区间
// swagger:model GradeBand
type GradeBand struct {
	BaseModel
	CourseID   uint    `gorm:"index;not null;type:bigint unsigned" json:"courseId"`
	MinScore   float64 `gorm:"not null" json:"minScore"`
	MaxScore   float64 `gorm:"not null" json:"maxScore"`
	GradeValue float64 `gorm:"not null" json:"gradeValue"`
	Position   int     `gorm:"default:0" json:"position"` // 存储顺序，重叠时先匹配者生效
}

func (GradeBand) TableName() string {
	return "grade_bands"
}

// Contains 判断分数是否落在该分数段内
func (b GradeBand) Contains(score float64) bool {
	return score >= b.MinScore && score <= b.MaxScore
}
