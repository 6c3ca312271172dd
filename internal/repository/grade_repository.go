package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) Create(grade *model.Grade) error {
	return r.DB.Create(grade).Error
}

func (r *GradeRepository) FindByID(id uint) (*model.Grade, error) {
	var grade model.Grade
	err := r.DB.First(&grade, id).Error
	return &grade, err
}

// FindByCourseAndStudent 某学生在某课程的全部计分记录
func (r *GradeRepository) FindByCourseAndStudent(courseID, studentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).
		Order("id").Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) FindByStudent(studentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Where("student_id = ?", studentID).Order("id").Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) FindByAssignment(assignmentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("student_id").Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) FindByAssignmentAndStudent(assignmentID, studentID uint) (*model.Grade, error) {
	var grade model.Grade
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&grade).Error
	return &grade, err
}

func (r *GradeRepository) Update(grade *model.Grade) error {
	return r.DB.Save(grade).Error
}

func (r *GradeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Grade{}, id).Error
}

// CreateForSubmission 在同一事务内写入成绩并回填提交记录
func (r *GradeRepository) CreateForSubmission(grade *model.Grade, submission *model.Submission) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grade).Error; err != nil {
			return err
		}
		submission.GradeID = &grade.ID
		submission.Status = model.SubmissionGraded
		return tx.Save(submission).Error
	})
}
