package service

import (
	"gradebook_backend/internal/model"
)

// PassingStatus 及格状态分类
type PassingStatus string

const (
	StatusPassing PassingStatus = "passing"
	StatusAtRisk  PassingStatus = "at-risk"
	StatusFailing PassingStatus = "failing"
	StatusUnknown PassingStatus = "unknown"
)

// ComponentStat 单个成绩构成项的统计结果
type ComponentStat struct {
	ID                   uint                    `json:"id"`
	Name                 string                  `json:"name"`
	Category             model.ComponentCategory `json:"category"`
	Weight               float64                 `json:"weight"`
	CurrentScore         float64                 `json:"currentScore"` // 构成项平均分（百分制）
	MaxPossibleScore     float64                 `json:"maxPossibleScore"`
	CompletedAssignments int                     `json:"completedAssignments"`
	TotalAssignments     int                     `json:"totalAssignments"`
}

// BandResult 命中的分数段
type BandResult struct {
	GradeValue float64 `json:"gradeValue"`
}

// ProjectedGrade 成绩投影结果
type ProjectedGrade struct {
	CourseID       uint            `json:"courseId"`
	CurrentGrade   float64         `json:"currentGrade"`
	ProjectedGrade float64         `json:"projectedGrade"`
	PassingStatus  PassingStatus   `json:"passingStatus"`
	GradeBand      *BandResult     `json:"gradeBand"`
	Components     []ComponentStat `json:"components"`
}

// ComputeProjection 根据课程的成绩构成、作业与已有计分记录计算加权总评投影。
//
// 纯函数：不做任何 I/O，不修改输入，相同输入得到相同输出。数据缺失一律降级
// 处理（无成绩按 0 计、无匹配分数段返回 nil），不返回错误；课程/学生是否存在
// 由调用方在进入本函数前校验。
//
// 总评为各构成项平均分乘以其权重占比之和。权重之和不足或超过 100 时不做归一
// 化，结果按实际配置的权重比例计算。
func ComputeProjection(course *model.Course, components []model.GradeComponent, assignments []model.Assignment, grades []model.Grade) *ProjectedGrade {
	result := &ProjectedGrade{
		CourseID:   course.ID,
		Components: make([]ComponentStat, 0, len(components)),
	}

	// 按作业 ID 索引计分记录，直接挂在构成项上的记录按构成项 ID 索引
	gradesByAssignment := make(map[uint][]model.Grade)
	gradesByComponent := make(map[uint][]model.Grade)
	for _, g := range grades {
		if g.AssignmentID != nil {
			gradesByAssignment[*g.AssignmentID] = append(gradesByAssignment[*g.AssignmentID], g)
		} else if g.GradeComponentID != nil {
			gradesByComponent[*g.GradeComponentID] = append(gradesByComponent[*g.GradeComponentID], g)
		}
	}

	var currentGrade float64
	for _, component := range components {
		var componentGrades []model.Grade
		totalAssignments := 0
		for _, a := range assignments {
			if a.Category != component.Category {
				continue
			}
			totalAssignments++
			componentGrades = append(componentGrades, gradesByAssignment[a.ID]...)
		}
		componentGrades = append(componentGrades, gradesByComponent[component.ID]...)

		average := averageNormalized(componentGrades)
		currentGrade += average * (component.Weight / 100)

		result.Components = append(result.Components, ComponentStat{
			ID:                   component.ID,
			Name:                 component.Name,
			Category:             component.Category,
			Weight:               component.Weight,
			CurrentScore:         average,
			MaxPossibleScore:     100,
			CompletedAssignments: len(componentGrades),
			TotalAssignments:     totalAssignments,
		})
	}

	result.CurrentGrade = currentGrade
	// 投影与当前总评一致：不对未完成的构成项做任何前瞻估计
	result.ProjectedGrade = currentGrade
	result.PassingStatus = classifyPassing(result.ProjectedGrade, course.PassingGrade)
	result.GradeBand = lookupBand(course.GradeBands, result.CurrentGrade)

	return result
}

// averageNormalized 计分记录按 score/maxScore*100 归一后取算术平均，空集为 0
func averageNormalized(grades []model.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		if g.MaxScore <= 0 {
			continue
		}
		sum += g.Score / g.MaxScore * 100
	}
	return sum / float64(len(grades))
}

// classifyPassing 按及格线 P 分类：>=P 及格，<0.8P 不及格，其间为临界
func classifyPassing(projected, passingGrade float64) PassingStatus {
	if passingGrade <= 0 {
		return StatusUnknown
	}
	switch {
	case projected >= passingGrade:
		return StatusPassing
	case projected < passingGrade*0.8:
		return StatusFailing
	default:
		return StatusAtRisk
	}
}

// lookupBand 取存储顺序下首个覆盖该分数的分数段；分数段重叠时不做调和，
// 先匹配者生效，数据质量问题由课程配置端负责
func lookupBand(bands []model.GradeBand, score float64) *BandResult {
	for _, band := range bands {
		if band.Contains(score) {
			return &BandResult{GradeValue: band.GradeValue}
		}
	}
	return nil
}
