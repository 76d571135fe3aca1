package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"studyforge/backend/config"
	"studyforge/backend/middleware"
	"studyforge/backend/models"
	"studyforge/backend/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LessonsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLessonsController(db *gorm.DB, cfg *config.Config) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg}
}

// GetLessons godoc
// @Summary List lessons
// @Description Lessons filtered by subject, difficulty and free-text search, with the caller's progress
// @Tags lessons
// @Produce json
// @Router /lessons [get]
func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	// Students only ever see published lessons; drafts stay on the
	// admin screen.
	query := lc.DB.Model(&models.Lesson{}).Where("is_published = ?", true)

	if subjectID := c.Query("subject_id"); subjectID != "" && subjectID != "all" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" && difficulty != "all" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR title_ar LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}

	var lessons []models.Lesson
	if err := query.Order("sequence_order asc, created_at desc").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var progress []models.LessonProgress
	lc.DB.Where("user_id = ?", userID).Find(&progress)

	return c.JSON(fiber.Map{
		"lessons":  lessons,
		"progress": progress,
	})
}

func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var progress models.LessonProgress
	lc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress)

	return c.JSON(fiber.Map{
		"lesson":   lesson,
		"progress": progress,
	})
}

// CompleteLesson upserts the (user, lesson) progress record, awards the
// lesson's points reward and the first-lesson achievement.
func (lc *LessonsController) CompleteLesson(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		Score     int `json:"score"`
		TimeSpent int `json:"time_spent"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	now := time.Now()
	firstCompletion := false

	var progress models.LessonProgress
	if err := lc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
		firstCompletion = true
		progress = models.LessonProgress{
			UserID:   userID,
			LessonID: uint(lessonID),
		}
	}

	progress.CompletedAt = &now
	progress.Score = input.Score
	progress.TimeSpent = input.TimeSpent

	if err := lc.DB.Save(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	if firstCompletion {
		if lesson.PointsReward > 0 {
			lc.awardPoints(userID, lesson.PointsReward)
		}
		lc.maybeAwardFirstLesson(userID, &lesson)
	}

	return c.JSON(fiber.Map{
		"message":  "Lesson completed",
		"progress": progress,
	})
}

func (lc *LessonsController) awardPoints(userID uint, points int) {
	res := lc.DB.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if res.RowsAffected == 0 {
		lc.DB.Create(&models.UserProfile{UserID: userID, Points: points, LastActive: time.Now()})
	}
}

func (lc *LessonsController) maybeAwardFirstLesson(userID uint, lesson *models.Lesson) {
	var count int64
	lc.DB.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_type = ?", userID, "first_lesson").
		Count(&count)
	if count > 0 {
		return
	}

	data, _ := json.Marshal(fiber.Map{
		"lesson_id":    lesson.ID,
		"lesson_title": lesson.TitleAr,
	})
	lc.DB.Create(&models.UserAchievement{
		UserID:          userID,
		AchievementType: "first_lesson",
		AchievementData: string(data),
		EarnedAt:        time.Now(),
	})
}

func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if lesson.Title == "" || lesson.SubjectID == 0 {
		return utils.BadRequest(c, "title and subject_id are required")
	}

	lesson.AuthorID = userID
	if lesson.PointsReward <= 0 {
		lesson.PointsReward = 10
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson created",
		"lesson":  lesson,
	})
}

func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Title           string `json:"title"`
		TitleAr         string `json:"title_ar"`
		Description     string `json:"description"`
		Content         string `json:"content"`
		VideoURL        string `json:"video_url"`
		DifficultyLevel int    `json:"difficulty_level"`
		SequenceOrder   int    `json:"sequence_order"`
		PointsReward    int    `json:"points_reward"`
		IsPublished     *bool  `json:"is_published"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.TitleAr != "" {
		lesson.TitleAr = input.TitleAr
	}
	if input.Description != "" {
		lesson.Description = input.Description
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.DifficultyLevel > 0 {
		lesson.DifficultyLevel = input.DifficultyLevel
	}
	if input.SequenceOrder > 0 {
		lesson.SequenceOrder = input.SequenceOrder
	}
	if input.PointsReward > 0 {
		lesson.PointsReward = input.PointsReward
	}
	if input.IsPublished != nil {
		lesson.IsPublished = *input.IsPublished
	}

	if err := lc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson updated",
		"lesson":  lesson,
	})
}

func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	if err := lc.DB.Delete(&models.Lesson{}, lessonID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}

	return utils.NoContent(c)
}
