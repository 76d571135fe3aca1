package controllers

import (
	"errors"
	"strconv"
	"studyforge/backend/config"
	"studyforge/backend/middleware"
	"studyforge/backend/models"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WhiteboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewWhiteboardController(db *gorm.DB, cfg *config.Config) *WhiteboardController {
	return &WhiteboardController{DB: db, Cfg: cfg}
}

func (wc *WhiteboardController) GetWhiteboard(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var save models.WhiteboardSave
	if err := wc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&save).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No drawing yet is a normal empty state, not an error.
			return c.JSON(fiber.Map{
				"lesson_id": lessonID,
				"data":      "",
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"lesson_id": save.LessonID,
		"data":      save.Data,
	})
}

func (wc *WhiteboardController) SaveWhiteboard(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		Data string `json:"data"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var save models.WhiteboardSave
	if err := wc.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&save).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
		save = models.WhiteboardSave{
			UserID:   userID,
			LessonID: uint(lessonID),
		}
	}

	save.Data = input.Data
	if err := wc.DB.Save(&save).Error; err != nil {
		return utils.InternalServerError(c, "Could not save whiteboard")
	}

	return c.JSON(fiber.Map{
		"message": "Whiteboard saved",
	})
}
