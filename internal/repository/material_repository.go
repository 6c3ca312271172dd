package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.CourseMaterial) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id string) (*model.CourseMaterial, error) {
	var material model.CourseMaterial
	err := r.DB.Where("id = ?", id).First(&material).Error
	return &material, err
}

func (r *MaterialRepository) FindByCourse(courseID uint) ([]model.CourseMaterial, error) {
	var materials []model.CourseMaterial
	err := r.DB.Where("course_id = ?", courseID).Order("created_at DESC").Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.CourseMaterial{}).Error
}
