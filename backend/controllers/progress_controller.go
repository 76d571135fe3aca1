package controllers

import (
	"studyforge/backend/config"
	"studyforge/backend/middleware"
	"studyforge/backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns per-month lesson completions and login activity for the last 4 months
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	now := time.Now()
	months := make([]fiber.Map, 4)

	for i := 0; i < 4; i++ {
		month := now.AddDate(0, -i, 0)
		startOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
		endOfMonth := startOfMonth.AddDate(0, 1, 0)

		var lessonsCompleted int64
		pc.DB.Model(&models.LessonProgress{}).
			Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, startOfMonth, endOfMonth).
			Count(&lessonsCompleted)

		loginFrequency := make(map[string]int)
		var logins []models.LoginHistory
		pc.DB.Where("user_id = ? AND login_time >= ? AND login_time < ?", userID, startOfMonth, endOfMonth).
			Find(&logins)
		for _, login := range logins {
			day := login.LoginTime.Format("2006-01-02")
			loginFrequency[day]++
		}

		months[i] = fiber.Map{
			"month":             month.Month().String(),
			"year":              month.Year(),
			"lessons_completed": lessonsCompleted,
			"login_frequency":   loginFrequency,
		}
	}

	return c.JSON(fiber.Map{
		"progress": months,
	})
}

// GetProgressOverview godoc
// @Summary Get progress overview
// @Description Returns totals for points, streak, lessons completed and achievements
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var profile models.UserProfile
	pc.DB.Where("user_id = ?", userID).First(&profile)

	var lessonsCompleted int64
	pc.DB.Model(&models.LessonProgress{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&lessonsCompleted)

	var achievements int64
	pc.DB.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Count(&achievements)

	return c.JSON(fiber.Map{
		"points":            profile.Points,
		"streak_days":       profile.StreakDays,
		"lessons_completed": lessonsCompleted,
		"achievements":      achievements,
	})
}
