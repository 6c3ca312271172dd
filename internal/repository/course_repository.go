package repository

import (
	"gradebook_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindByIDWithGrading 加载课程及其成绩构成项与分数段，构成项按 Position、分数段按存储顺序
func (r *CourseRepository) FindByIDWithGrading(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("GradeComponents", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		Preload("GradeBands", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindByProfessor(professorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("professor_id = ?", professorID).Order("id").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) SetArchived(id uint, archived bool) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Update("archived", archived).Error
}

// ListWithPagination 课程列表，支持搜索与学期过滤
func (r *CourseRepository) ListWithPagination(search, semester string, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("archived = ?", false)
	if search != "" {
		query = query.Where("title LIKE ? OR code LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if semester != "" {
		query = query.Where("semester = ?", semester)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("id").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// --- 成绩构成项 ---

func (r *CourseRepository) CreateComponent(component *model.GradeComponent) error {
	return r.DB.Create(component).Error
}

func (r *CourseRepository) FindComponentByID(id uint) (*model.GradeComponent, error) {
	var component model.GradeComponent
	err := r.DB.First(&component, id).Error
	return &component, err
}

func (r *CourseRepository) FindComponentsByCourse(courseID uint) ([]model.GradeComponent, error) {
	var components []model.GradeComponent
	err := r.DB.Where("course_id = ?", courseID).Order("position, id").Find(&components).Error
	return components, err
}

func (r *CourseRepository) UpdateComponent(component *model.GradeComponent) error {
	return r.DB.Save(component).Error
}

func (r *CourseRepository) DeleteComponent(id uint) error {
	return r.DB.Delete(&model.GradeComponent{}, id).Error
}

// SumComponentWeights 统计课程构成项权重之和，可排除某个构成项（用于更新校验）
func (r *CourseRepository) SumComponentWeights(courseID uint, excludeID uint) (float64, error) {
	var total float64
	query := r.DB.Model(&model.GradeComponent{}).
		Where("course_id = ?", courseID)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Select("COALESCE(SUM(weight), 0)").Scan(&total).Error
	return total, err
}

// --- 分数段 ---

func (r *CourseRepository) CreateBand(band *model.GradeBand) error {
	return r.DB.Create(band).Error
}

func (r *CourseRepository) FindBandByID(id uint) (*model.GradeBand, error) {
	var band model.GradeBand
	err := r.DB.First(&band, id).Error
	return &band, err
}

func (r *CourseRepository) FindBandsByCourse(courseID uint) ([]model.GradeBand, error) {
	var bands []model.GradeBand
	err := r.DB.Where("course_id = ?", courseID).Order("position, id").Find(&bands).Error
	return bands, err
}

func (r *CourseRepository) UpdateBand(band *model.GradeBand) error {
	return r.DB.Save(band).Error
}

func (r *CourseRepository) DeleteBand(id uint) error {
	return r.DB.Delete(&model.GradeBand{}, id).Error
}
