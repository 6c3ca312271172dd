package repository

import (
	"gradebook_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) FindByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ?", courseID).Order("due_date, id").Find(&assignments).Error
	return assignments, err
}

// FindPublishedByCourse 学生可见的作业（已发布或已截止）
func (r *AssignmentRepository) FindPublishedByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ? AND status <> ?", courseID, model.AssignmentDraft).
		Order("due_date, id").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assignment{}, id).Error
}

func (r *AssignmentRepository) UpdateStatus(id uint, status model.AssignmentStatus) error {
	return r.DB.Model(&model.Assignment{}).Where("id = ?", id).Update("status", status).Error
}

// CloseOverdue 将截止时间已过的已发布作业置为 closed，返回受影响行数
func (r *AssignmentRepository) CloseOverdue(now time.Time) (int64, error) {
	result := r.DB.Model(&model.Assignment{}).
		Where("status = ? AND due_date < ?", model.AssignmentPublished, now).
		Update("status", model.AssignmentClosed)
	return result.RowsAffected, result.Error
}
