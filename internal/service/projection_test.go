package service

import (
	"gradebook_backend/internal/model"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func testCourse(passingGrade float64, bands ...model.GradeBand) *model.Course {
	course := &model.Course{
		Code:         "CS101",
		Title:        "程序设计基础",
		PassingGrade: passingGrade,
		GradeBands:   bands,
	}
	course.ID = 1
	return course
}

func testComponent(id uint, category model.ComponentCategory, weight float64) model.GradeComponent {
	c := model.GradeComponent{
		CourseID: 1,
		Name:     string(category),
		Category: category,
		Weight:   weight,
	}
	c.ID = id
	return c
}

func testAssignment(id uint, category model.ComponentCategory) model.Assignment {
	a := model.Assignment{
		CourseID: 1,
		Title:    "assignment",
		Category: category,
		MaxScore: 100,
		Status:   model.AssignmentPublished,
	}
	a.ID = id
	return a
}

func assignmentGrade(assignmentID uint, score, maxScore float64) model.Grade {
	id := assignmentID
	return model.Grade{
		StudentID:    10,
		CourseID:     1,
		AssignmentID: &id,
		Score:        score,
		MaxScore:     maxScore,
	}
}

func componentGrade(componentID uint, score, maxScore float64) model.Grade {
	id := componentID
	return model.Grade{
		StudentID:        10,
		CourseID:         1,
		GradeComponentID: &id,
		Score:            score,
		MaxScore:         maxScore,
	}
}

func defaultBands() []model.GradeBand {
	return []model.GradeBand{
		{CourseID: 1, MinScore: 0, MaxScore: 49.999, GradeValue: 2, Position: 1},
		{CourseID: 1, MinScore: 50, MaxScore: 59.999, GradeValue: 3, Position: 2},
		{CourseID: 1, MinScore: 60, MaxScore: 74.999, GradeValue: 4, Position: 3},
		{CourseID: 1, MinScore: 75, MaxScore: 89.999, GradeValue: 5, Position: 4},
		{CourseID: 1, MinScore: 90, MaxScore: 100, GradeValue: 6, Position: 5},
	}
}

func TestComputeProjectionNoGrades(t *testing.T) {
	course := testCourse(60, defaultBands()...)
	components := []model.GradeComponent{
		testComponent(1, model.CategoryAssignment, 40),
		testComponent(2, model.CategoryExam, 60),
	}
	assignments := []model.Assignment{
		testAssignment(1, model.CategoryAssignment),
		testAssignment(2, model.CategoryExam),
	}

	result := ComputeProjection(course, components, assignments, nil)

	if !almostEqual(result.CurrentGrade, 0) {
		t.Errorf("CurrentGrade = %v, want 0", result.CurrentGrade)
	}
	if result.PassingStatus != StatusFailing {
		t.Errorf("PassingStatus = %v, want %v", result.PassingStatus, StatusFailing)
	}
	if len(result.Components) != 2 {
		t.Fatalf("got %d component stats, want 2", len(result.Components))
	}
	for _, c := range result.Components {
		if !almostEqual(c.CurrentScore, 0) {
			t.Errorf("component %q CurrentScore = %v, want 0", c.Name, c.CurrentScore)
		}
	}
	if result.GradeBand == nil || result.GradeBand.GradeValue != 2 {
		t.Errorf("GradeBand = %+v, want grade value 2", result.GradeBand)
	}
}

func TestComputeProjectionSingleComponentFullCredit(t *testing.T) {
	course := testCourse(60, defaultBands()...)
	components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
	assignments := []model.Assignment{testAssignment(1, model.CategoryExam)}
	grades := []model.Grade{assignmentGrade(1, 100, 100)}

	result := ComputeProjection(course, components, assignments, grades)

	if !almostEqual(result.CurrentGrade, 100) {
		t.Errorf("CurrentGrade = %v, want 100", result.CurrentGrade)
	}
	if !almostEqual(result.ProjectedGrade, result.CurrentGrade) {
		t.Errorf("ProjectedGrade = %v, want same as CurrentGrade %v", result.ProjectedGrade, result.CurrentGrade)
	}
	if result.PassingStatus != StatusPassing {
		t.Errorf("PassingStatus = %v, want %v", result.PassingStatus, StatusPassing)
	}
	if result.GradeBand == nil || result.GradeBand.GradeValue != 6 {
		t.Errorf("GradeBand = %+v, want grade value 6", result.GradeBand)
	}
}

func TestComputeProjectionWeightedSum(t *testing.T) {
	// 作业 40%（平均 80 分）+ 考试 60%（平均 50 分）= 62
	course := testCourse(60, defaultBands()...)
	components := []model.GradeComponent{
		testComponent(1, model.CategoryAssignment, 40),
		testComponent(2, model.CategoryExam, 60),
	}
	assignments := []model.Assignment{
		testAssignment(1, model.CategoryAssignment),
		testAssignment(2, model.CategoryAssignment),
		testAssignment(3, model.CategoryExam),
	}
	grades := []model.Grade{
		assignmentGrade(1, 90, 100),
		assignmentGrade(2, 70, 100),
		assignmentGrade(3, 25, 50),
	}

	result := ComputeProjection(course, components, assignments, grades)

	if !almostEqual(result.CurrentGrade, 62) {
		t.Errorf("CurrentGrade = %v, want 62", result.CurrentGrade)
	}
	if result.PassingStatus != StatusPassing {
		t.Errorf("PassingStatus = %v, want %v", result.PassingStatus, StatusPassing)
	}
	if result.GradeBand == nil || result.GradeBand.GradeValue != 4 {
		t.Errorf("GradeBand = %+v, want grade value 4", result.GradeBand)
	}

	stats := result.Components
	if len(stats) != 2 {
		t.Fatalf("got %d component stats, want 2", len(stats))
	}
	if !almostEqual(stats[0].CurrentScore, 80) {
		t.Errorf("assignment component CurrentScore = %v, want 80", stats[0].CurrentScore)
	}
	if stats[0].CompletedAssignments != 2 || stats[0].TotalAssignments != 2 {
		t.Errorf("assignment component counts = %d/%d, want 2/2", stats[0].CompletedAssignments, stats[0].TotalAssignments)
	}
	if !almostEqual(stats[1].CurrentScore, 50) {
		t.Errorf("exam component CurrentScore = %v, want 50", stats[1].CurrentScore)
	}
}

func TestComputeProjectionPassingBoundaries(t *testing.T) {
	// 及格线 60：>=60 及格，<48 不及格，其间临界
	tests := []struct {
		name  string
		score float64
		want  PassingStatus
	}{
		{"exactly at passing grade", 60, StatusPassing},
		{"just below failing threshold", 47, StatusFailing},
		{"between thresholds", 50, StatusAtRisk},
		{"at failing threshold boundary", 48, StatusAtRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := testCourse(60)
			components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
			grades := []model.Grade{componentGrade(1, tt.score, 100)}

			result := ComputeProjection(course, components, nil, grades)
			if !almostEqual(result.CurrentGrade, tt.score) {
				t.Fatalf("CurrentGrade = %v, want %v", result.CurrentGrade, tt.score)
			}
			if result.PassingStatus != tt.want {
				t.Errorf("PassingStatus = %v, want %v", result.PassingStatus, tt.want)
			}
		})
	}
}

func TestComputeProjectionUnknownWithoutPassingGrade(t *testing.T) {
	course := testCourse(0)
	components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
	grades := []model.Grade{componentGrade(1, 90, 100)}

	result := ComputeProjection(course, components, nil, grades)
	if result.PassingStatus != StatusUnknown {
		t.Errorf("PassingStatus = %v, want %v", result.PassingStatus, StatusUnknown)
	}
}

func TestComputeProjectionBandSelection(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{49.999, 2},
		{55, 3},
		{60, 4},
		{89.999, 5},
		{100, 6},
	}

	for _, tt := range tests {
		course := testCourse(60, defaultBands()...)
		components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
		grades := []model.Grade{componentGrade(1, tt.score, 100)}

		result := ComputeProjection(course, components, nil, grades)
		if result.GradeBand == nil {
			t.Errorf("score %v: GradeBand = nil, want grade value %v", tt.score, tt.want)
			continue
		}
		if result.GradeBand.GradeValue != tt.want {
			t.Errorf("score %v: grade value = %v, want %v", tt.score, result.GradeBand.GradeValue, tt.want)
		}
	}
}

func TestComputeProjectionNoMatchingBand(t *testing.T) {
	// 分数段未覆盖该分数，或者根本未配置分数段
	gap := model.GradeBand{CourseID: 1, MinScore: 60, MaxScore: 100, GradeValue: 4}

	course := testCourse(60, gap)
	components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
	grades := []model.Grade{componentGrade(1, 30, 100)}

	result := ComputeProjection(course, components, nil, grades)
	if result.GradeBand != nil {
		t.Errorf("GradeBand = %+v, want nil", result.GradeBand)
	}

	noBands := testCourse(60)
	result = ComputeProjection(noBands, components, nil, grades)
	if result.GradeBand != nil {
		t.Errorf("GradeBand with no bands configured = %+v, want nil", result.GradeBand)
	}
}

func TestComputeProjectionOverlappingBandsFirstMatchWins(t *testing.T) {
	first := model.GradeBand{CourseID: 1, MinScore: 0, MaxScore: 100, GradeValue: 3, Position: 1}
	second := model.GradeBand{CourseID: 1, MinScore: 50, MaxScore: 100, GradeValue: 5, Position: 2}

	course := testCourse(60, first, second)
	components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
	grades := []model.Grade{componentGrade(1, 70, 100)}

	result := ComputeProjection(course, components, nil, grades)
	if result.GradeBand == nil || result.GradeBand.GradeValue != 3 {
		t.Errorf("GradeBand = %+v, want first matching band (grade value 3)", result.GradeBand)
	}
}

func TestComputeProjectionWeightsNotRenormalized(t *testing.T) {
	// 权重之和 80 时不放大到 100，满分也只能得 80
	course := testCourse(60)
	components := []model.GradeComponent{
		testComponent(1, model.CategoryAssignment, 30),
		testComponent(2, model.CategoryExam, 50),
	}
	grades := []model.Grade{
		componentGrade(1, 100, 100),
		componentGrade(2, 100, 100),
	}

	result := ComputeProjection(course, components, nil, grades)
	if !almostEqual(result.CurrentGrade, 80) {
		t.Errorf("CurrentGrade = %v, want 80 (no weight renormalization)", result.CurrentGrade)
	}
}

func TestComputeProjectionNormalizesByMaxScore(t *testing.T) {
	course := testCourse(60)
	components := []model.GradeComponent{testComponent(1, model.CategoryLab, 100)}
	assignments := []model.Assignment{testAssignment(1, model.CategoryLab)}
	// 50分制作业得 40 分 = 百分制 80
	grades := []model.Grade{assignmentGrade(1, 40, 50)}

	result := ComputeProjection(course, components, assignments, grades)
	if !almostEqual(result.CurrentGrade, 80) {
		t.Errorf("CurrentGrade = %v, want 80", result.CurrentGrade)
	}
}

func TestComputeProjectionZeroMaxScoreGrade(t *testing.T) {
	// maxScore 为 0 的脏数据按 0 分计入平均，不触发除零
	course := testCourse(60)
	components := []model.GradeComponent{testComponent(1, model.CategoryExam, 100)}
	grades := []model.Grade{
		componentGrade(1, 100, 100),
		componentGrade(1, 50, 0),
	}

	result := ComputeProjection(course, components, nil, grades)
	if !almostEqual(result.CurrentGrade, 50) {
		t.Errorf("CurrentGrade = %v, want 50", result.CurrentGrade)
	}
}

func TestComputeProjectionDeterministic(t *testing.T) {
	course := testCourse(60, defaultBands()...)
	components := []model.GradeComponent{
		testComponent(1, model.CategoryAssignment, 40),
		testComponent(2, model.CategoryExam, 60),
	}
	assignments := []model.Assignment{
		testAssignment(1, model.CategoryAssignment),
		testAssignment(2, model.CategoryExam),
	}
	grades := []model.Grade{
		assignmentGrade(1, 85, 100),
		assignmentGrade(2, 70, 100),
	}

	first := ComputeProjection(course, components, assignments, grades)
	second := ComputeProjection(course, components, assignments, grades)

	if !almostEqual(first.CurrentGrade, second.CurrentGrade) ||
		first.PassingStatus != second.PassingStatus {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
	// 输入不被修改
	if !almostEqual(grades[0].Score, 85) || !almostEqual(grades[1].Score, 70) {
		t.Errorf("input grades mutated: %+v", grades)
	}
}

func TestComputeProjectionDirectComponentGrades(t *testing.T) {
	// 不经作业、直接挂在构成项上的计分记录参与该项平均
	course := testCourse(60)
	components := []model.GradeComponent{testComponent(1, model.CategoryMidterm, 100)}
	assignments := []model.Assignment{testAssignment(1, model.CategoryMidterm)}
	grades := []model.Grade{
		assignmentGrade(1, 60, 100),
		componentGrade(1, 80, 100),
	}

	result := ComputeProjection(course, components, assignments, grades)
	if !almostEqual(result.CurrentGrade, 70) {
		t.Errorf("CurrentGrade = %v, want 70", result.CurrentGrade)
	}
	if result.Components[0].CompletedAssignments != 2 {
		t.Errorf("CompletedAssignments = %d, want 2", result.Components[0].CompletedAssignments)
	}
}

func TestClassifyPassing(t *testing.T) {
	tests := []struct {
		projected    float64
		passingGrade float64
		want         PassingStatus
	}{
		{75, 60, StatusPassing},
		{60, 60, StatusPassing},
		{59.9, 60, StatusAtRisk},
		{48, 60, StatusAtRisk},
		{47.9, 60, StatusFailing},
		{0, 60, StatusFailing},
		{90, 0, StatusUnknown},
		{90, -5, StatusUnknown},
	}

	for _, tt := range tests {
		if got := classifyPassing(tt.projected, tt.passingGrade); got != tt.want {
			t.Errorf("classifyPassing(%v, %v) = %v, want %v", tt.projected, tt.passingGrade, got, tt.want)
		}
	}
}

func TestGradeBandContains(t *testing.T) {
	band := model.GradeBand{MinScore: 50, MaxScore: 59.999}
	if !band.Contains(50) || !band.Contains(59.999) {
		t.Error("band should contain its boundaries")
	}
	if band.Contains(49.999) || band.Contains(60) {
		t.Error("band should not contain scores outside its range")
	}
}
