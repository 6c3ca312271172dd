// 演示数据种子脚本
//
// 创建管理员、一名教师、两名学生，一门配置好成绩构成与分数段的示例课程，
// 以及若干已批改的作业成绩，方便本地联调投影接口。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/model"
	"gradebook_backend/pkg/database"
	"gradebook_backend/pkg/logger"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("写入演示数据...")

	admin := seedUser(db, "Admin", "admin@example.com", "admin12345", model.Admin, "")
	prof := seedUser(db, "Ada Lovelace", "ada@example.com", "professor1", model.Professor, "")
	alice := seedUser(db, "Alice Chen", "alice@example.com", "student123", model.Student, "S2026001")
	bob := seedUser(db, "Bob Lin", "bob@example.com", "student123", model.Student, "S2026002")
	_ = admin

	course := &model.Course{
		Code:         "CS101",
		Title:        "程序设计基础",
		Description:  "C语言入门课程",
		Semester:     "Fall",
		Year:         2026,
		ProfessorID:  prof.ID,
		PassingGrade: 60,
	}
	if err := db.Where("code = ?", course.Code).FirstOrCreate(course).Error; err != nil {
		log.Fatalf("创建课程失败: %v", err)
	}

	components := []model.GradeComponent{
		{CourseID: course.ID, Name: "平时作业", Category: model.CategoryAssignment, Weight: 40, TotalPoints: 100, Position: 1},
		{CourseID: course.ID, Name: "期末考试", Category: model.CategoryExam, Weight: 60, TotalPoints: 100, IsMandatory: true, Position: 2},
	}
	for i := range components {
		db.Where("course_id = ? AND name = ?", course.ID, components[i].Name).FirstOrCreate(&components[i])
	}

	bands := []model.GradeBand{
		{CourseID: course.ID, MinScore: 0, MaxScore: 49.999, GradeValue: 2, Position: 1},
		{CourseID: course.ID, MinScore: 50, MaxScore: 59.999, GradeValue: 3, Position: 2},
		{CourseID: course.ID, MinScore: 60, MaxScore: 74.999, GradeValue: 4, Position: 3},
		{CourseID: course.ID, MinScore: 75, MaxScore: 89.999, GradeValue: 5, Position: 4},
		{CourseID: course.ID, MinScore: 90, MaxScore: 100, GradeValue: 6, Position: 5},
	}
	for i := range bands {
		db.Where("course_id = ? AND min_score = ?", course.ID, bands[i].MinScore).FirstOrCreate(&bands[i])
	}

	for _, student := range []*model.User{alice, bob} {
		enrollment := &model.Enrollment{
			CourseID:   course.ID,
			StudentID:  student.ID,
			Status:     model.EnrollmentActive,
			EnrolledAt: time.Now(),
		}
		db.Where("course_id = ? AND student_id = ?", course.ID, student.ID).FirstOrCreate(enrollment)
	}

	hw := &model.Assignment{
		CourseID: course.ID,
		Title:    "作业1：循环与分支",
		Category: model.CategoryAssignment,
		MaxScore: 100,
		DueDate:  time.Now().AddDate(0, 0, 7),
		Status:   model.AssignmentPublished,
	}
	db.Where("course_id = ? AND title = ?", course.ID, hw.Title).FirstOrCreate(hw)

	hwID := hw.ID
	grades := []model.Grade{
		{StudentID: alice.ID, CourseID: course.ID, AssignmentID: &hwID, Score: 92, MaxScore: 100, GraderID: prof.ID},
		{StudentID: bob.ID, CourseID: course.ID, AssignmentID: &hwID, Score: 55, MaxScore: 100, GraderID: prof.ID},
	}
	for i := range grades {
		db.Where("student_id = ? AND assignment_id = ?", grades[i].StudentID, hwID).FirstOrCreate(&grades[i])
	}

	log.Println("完成！")
}

func seedUser(db *gorm.DB, name, email, password string, role model.UserRole, studentNo string) *model.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	user := &model.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		StudentNo: studentNo,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(user).Error; err != nil {
		log.Fatalf("创建用户 %s 失败: %v", email, err)
	}
	return user
}
