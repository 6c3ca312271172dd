package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByCourseAndStudent(courseID, studentID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByStudent(studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("student_id = ?", studentID).Order("id").Find(&enrollments).Error
	return enrollments, err
}

// FindActiveByCourse 某课程全部在读学生的选课记录
func (r *EnrollmentRepository) FindActiveByCourse(courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("course_id = ? AND status = ?", courseID, model.EnrollmentActive).
		Order("student_id").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) UpdateStatus(id uint, status model.EnrollmentStatus) error {
	return r.DB.Model(&model.Enrollment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *EnrollmentRepository) CountActiveByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, model.EnrollmentActive).
		Count(&count).Error
	return count, err
}
