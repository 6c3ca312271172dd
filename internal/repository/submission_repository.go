package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("id = ?", id).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByAssignment(assignmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// FindLatestByAssignmentAndStudent 学生对某作业的最新一次提交
func (r *SubmissionRepository) FindLatestByAssignmentAndStudent(assignmentID, studentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Order("submitted_at DESC").First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).
		Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) Update(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}

func (r *SubmissionRepository) UpdateStatus(id string, status model.SubmissionStatus) error {
	return r.DB.Model(&model.Submission{}).Where("id = ?", id).Update("status", status).Error
}
