package database

import (
	"time"

	"github.com/s/coursehub/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed наполняет пустую базу стартовыми данными: админ, тестовый
// пользователь, категории, демонстрационный курс с уроками и купон.
// Все операции идемпотентны (FirstOrCreate по уникальным ключам).
func Seed(db *gorm.DB) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    "admin@example.com",
		Name:     "Admin User",
		Password: string(adminHash),
		Role:     models.RoleAdmin,
	}
	if err := db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("User123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Email:    "user@example.com",
		Name:     "Test User",
		Password: string(userHash),
		Role:     models.RoleUser,
	}
	if err := db.Where(models.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Web Development", Description: "Learn web development technologies"},
		{Name: "Data Science", Description: "Explore data analysis and visualization"},
		{Name: "Mobile Development", Description: "Build mobile applications"},
		{Name: "DevOps", Description: "Learn about DevOps practices and tools"},
	}
	for i := range categories {
		if err := db.Where(models.Category{Name: categories[i].Name}).FirstOrCreate(&categories[i]).Error; err != nil {
			return err
		}
	}

	course := models.Course{
		Title:       "Introduction to Next.js",
		Description: "Learn the fundamentals of Next.js, from routing to data fetching.",
		Price:       99.99,
		IsPublished: true,
	}
	if err := db.Where(models.Course{Title: course.Title}).FirstOrCreate(&course).Error; err != nil {
		return err
	}
	if err := db.Where(models.CourseCategory{CourseID: course.ID, CategoryID: categories[0].ID}).
		FirstOrCreate(&models.CourseCategory{CourseID: course.ID, CategoryID: categories[0].ID}).Error; err != nil {
		return err
	}

	lessons := []models.Lesson{
		{Title: "Getting Started with Next.js", Description: "Setting up your development environment and creating your first Next.js app.", Position: 1, IsPublished: true},
		{Title: "Routing in Next.js", Description: "Learn how the file-based routing system works in Next.js.", Position: 2, IsPublished: true},
		{Title: "Data Fetching Strategies", Description: "Explore the different ways to fetch data in a Next.js application.", Position: 3, IsPublished: true},
	}
	for i := range lessons {
		lessons[i].CourseID = course.ID
		if err := db.Where(models.Lesson{CourseID: course.ID, Position: lessons[i].Position}).
			FirstOrCreate(&lessons[i]).Error; err != nil {
			return err
		}
	}

	expires := time.Now().Add(30 * 24 * time.Hour)
	coupon := models.Coupon{
		Code:            "WELCOME20",
		DiscountPercent: 20,
		ExpiresAt:       &expires,
		IsActive:        true,
	}
	return db.Where(models.Coupon{Code: coupon.Code}).FirstOrCreate(&coupon).Error
}
