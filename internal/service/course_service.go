package service

import (
	"errors"
	"gradebook_backend/internal/model"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"gradebook_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo, EnrollmentRepo: enrollmentRepo}
}

type CourseRequest struct {
	Code         string  `json:"code" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Semester     string  `json:"semester"`
	Year         int     `json:"year"`
	PassingGrade float64 `json:"passingGrade" binding:"gte=0,lte=100"`
}

func (s *CourseService) Create(professorID uint, req CourseRequest) (*model.Course, error) {
	if _, err := s.CourseRepo.FindByCode(req.Code); err == nil {
		return nil, util.ErrCourseCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := &model.Course{
		Code:         req.Code,
		Title:        req.Title,
		Description:  req.Description,
		Semester:     req.Semester,
		Year:         req.Year,
		ProfessorID:  professorID,
		PassingGrade: req.PassingGrade,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// GetDetail 课程详情，包含成绩构成项与分数段
func (s *CourseService) GetDetail(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithGrading(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// CheckOwnership 校验课程归属；管理员放行
func (s *CourseService) CheckOwnership(courseID uint, claims *util.Claims) (*model.Course, error) {
	course, err := s.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if claims.Role != model.Admin && course.ProfessorID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) Update(courseID uint, claims *util.Claims, req CourseRequest) (*model.Course, error) {
	course, err := s.CheckOwnership(courseID, claims)
	if err != nil {
		return nil, err
	}

	if req.Code != course.Code {
		if _, err := s.CourseRepo.FindByCode(req.Code); err == nil {
			return nil, util.ErrCourseCodeTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	course.Code = req.Code
	course.Title = req.Title
	course.Description = req.Description
	course.Semester = req.Semester
	course.Year = req.Year
	course.PassingGrade = req.PassingGrade

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Archive(courseID uint, claims *util.Claims, archived bool) error {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return err
	}
	return s.CourseRepo.SetArchived(courseID, archived)
}

// Delete 删除课程。仍有在读学生的课程不可删，先归档或等学生退课
func (s *CourseService) Delete(courseID uint, claims *util.Claims) error {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return err
	}
	count, err := s.EnrollmentRepo.CountActiveByCourse(courseID)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrCourseHasEnrollments
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) List(search, semester string, page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.ListWithPagination(search, semester, page, limit)
}

func (s *CourseService) ListByProfessor(professorID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByProfessor(professorID)
}

// --- 成绩构成项配置 ---

type ComponentRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Category     model.ComponentCategory `json:"category" binding:"required"`
	Weight       float64                 `json:"weight" binding:"gte=0,lte=100"`
	MinimumScore float64                 `json:"minimumScore"`
	TotalPoints  float64                 `json:"totalPoints"`
	IsMandatory  bool                    `json:"isMandatory"`
	Position     int                     `json:"position"`
}

// ComponentResult 创建/更新结果，权重之和不足 100 时附带提示
type ComponentResult struct {
	Component     *model.GradeComponent `json:"component"`
	WeightWarning string                `json:"weightWarning,omitempty"`
}

// validateWeight 录入校验：权重之和超过 100 拒绝，不足 100 仅提示。
// 投影引擎本身对权重配置保持宽容，不做归一化，这里是唯一的把关点。
func (s *CourseService) validateWeight(courseID, excludeID uint, weight float64) (string, error) {
	existing, err := s.CourseRepo.SumComponentWeights(courseID, excludeID)
	if err != nil {
		return "", err
	}
	total := existing + weight
	if total > 100 {
		return "", util.ErrWeightExceeded
	}
	if total < 100 {
		logger.Log.Warn("component weights do not total 100",
			zap.Uint("courseId", courseID),
			zap.Float64("total", total))
		return "component weights total less than 100", nil
	}
	return "", nil
}

func (s *CourseService) CreateComponent(courseID uint, claims *util.Claims, req ComponentRequest) (*ComponentResult, error) {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, errors.New("invalid component category")
	}

	warning, err := s.validateWeight(courseID, 0, req.Weight)
	if err != nil {
		return nil, err
	}

	totalPoints := req.TotalPoints
	if totalPoints <= 0 {
		totalPoints = 100
	}

	component := &model.GradeComponent{
		CourseID:     courseID,
		Name:         req.Name,
		Category:     req.Category,
		Weight:       req.Weight,
		MinimumScore: req.MinimumScore,
		TotalPoints:  totalPoints,
		IsMandatory:  req.IsMandatory,
		Position:     req.Position,
	}
	if err := s.CourseRepo.CreateComponent(component); err != nil {
		return nil, err
	}
	return &ComponentResult{Component: component, WeightWarning: warning}, nil
}

func (s *CourseService) UpdateComponent(courseID, componentID uint, claims *util.Claims, req ComponentRequest) (*ComponentResult, error) {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}

	component, err := s.CourseRepo.FindComponentByID(componentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrComponentNotFound
	} else if err != nil {
		return nil, err
	}
	if component.CourseID != courseID {
		return nil, util.ErrComponentNotFound
	}
	if !req.Category.Valid() {
		return nil, errors.New("invalid component category")
	}

	warning, err := s.validateWeight(courseID, componentID, req.Weight)
	if err != nil {
		return nil, err
	}

	component.Name = req.Name
	component.Category = req.Category
	component.Weight = req.Weight
	component.MinimumScore = req.MinimumScore
	if req.TotalPoints > 0 {
		component.TotalPoints = req.TotalPoints
	}
	component.IsMandatory = req.IsMandatory
	component.Position = req.Position

	if err := s.CourseRepo.UpdateComponent(component); err != nil {
		return nil, err
	}
	return &ComponentResult{Component: component, WeightWarning: warning}, nil
}

func (s *CourseService) DeleteComponent(courseID, componentID uint, claims *util.Claims) error {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return err
	}
	component, err := s.CourseRepo.FindComponentByID(componentID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && component.CourseID != courseID) {
		return util.ErrComponentNotFound
	} else if err != nil {
		return err
	}
	return s.CourseRepo.DeleteComponent(componentID)
}

func (s *CourseService) ListComponents(courseID uint) ([]model.GradeComponent, error) {
	if _, err := s.GetByID(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindComponentsByCourse(courseID)
}

// --- 分数段配置 ---

type BandRequest struct {
	MinScore   float64 `json:"minScore" binding:"gte=0,lte=100"`
	MaxScore   float64 `json:"maxScore" binding:"gte=0,lte=100"`
	GradeValue float64 `json:"gradeValue"`
	Position   int     `json:"position"`
}

// BandResultWithWarning 分数段写入结果，存在重叠时附带提示（先匹配者生效）
type BandResultWithWarning struct {
	Band           *model.GradeBand `json:"band"`
	OverlapWarning string           `json:"overlapWarning,omitempty"`
}

func (s *CourseService) checkBandOverlap(courseID, excludeID uint, minScore, maxScore float64) (string, error) {
	bands, err := s.CourseRepo.FindBandsByCourse(courseID)
	if err != nil {
		return "", err
	}
	for _, b := range bands {
		if b.ID == excludeID {
			continue
		}
		if minScore <= b.MaxScore && maxScore >= b.MinScore {
			logger.Log.Warn("grade bands overlap",
				zap.Uint("courseId", courseID),
				zap.Uint("bandId", b.ID))
			return "band overlaps an existing band; first match in stored order wins", nil
		}
	}
	return "", nil
}

func (s *CourseService) CreateBand(courseID uint, claims *util.Claims, req BandRequest) (*BandResultWithWarning, error) {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}
	if req.MinScore > req.MaxScore {
		return nil, util.ErrInvalidBandRange
	}

	warning, err := s.checkBandOverlap(courseID, 0, req.MinScore, req.MaxScore)
	if err != nil {
		return nil, err
	}

	band := &model.GradeBand{
		CourseID:   courseID,
		MinScore:   req.MinScore,
		MaxScore:   req.MaxScore,
		GradeValue: req.GradeValue,
		Position:   req.Position,
	}
	if err := s.CourseRepo.CreateBand(band); err != nil {
		return nil, err
	}
	return &BandResultWithWarning{Band: band, OverlapWarning: warning}, nil
}

func (s *CourseService) UpdateBand(courseID, bandID uint, claims *util.Claims, req BandRequest) (*BandResultWithWarning, error) {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return nil, err
	}
	band, err := s.CourseRepo.FindBandByID(bandID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrBandNotFound
	} else if err != nil {
		return nil, err
	}
	if band.CourseID != courseID {
		return nil, util.ErrBandNotFound
	}
	if req.MinScore > req.MaxScore {
		return nil, util.ErrInvalidBandRange
	}

	warning, err := s.checkBandOverlap(courseID, bandID, req.MinScore, req.MaxScore)
	if err != nil {
		return nil, err
	}

	band.MinScore = req.MinScore
	band.MaxScore = req.MaxScore
	band.GradeValue = req.GradeValue
	band.Position = req.Position

	if err := s.CourseRepo.UpdateBand(band); err != nil {
		return nil, err
	}
	return &BandResultWithWarning{Band: band, OverlapWarning: warning}, nil
}

func (s *CourseService) DeleteBand(courseID, bandID uint, claims *util.Claims) error {
	if _, err := s.CheckOwnership(courseID, claims); err != nil {
		return err
	}
	band, err := s.CourseRepo.FindBandByID(bandID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && band.CourseID != courseID) {
		return util.ErrBandNotFound
	} else if err != nil {
		return err
	}
	return s.CourseRepo.DeleteBand(bandID)
}

func (s *CourseService) ListBands(courseID uint) ([]model.GradeBand, error) {
	if _, err := s.GetByID(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindBandsByCourse(courseID)
}
