package controllers

import (
	"errors"
	"strconv"
	"studyforge/backend/config"
	"studyforge/backend/models"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubjectsController(db *gorm.DB, cfg *config.Config) *SubjectsController {
	return &SubjectsController{DB: db, Cfg: cfg}
}

func (sc *SubjectsController) GetSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := sc.DB.Order("name asc").Find(&subjects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"subjects": subjects,
	})
}

func (sc *SubjectsController) GetSubject(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	var subject models.Subject
	if err := sc.DB.Preload("Lessons").First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var questionCount int64
	sc.DB.Model(&models.Question{}).Where("subject_id = ?", subjectID).Count(&questionCount)

	return c.JSON(fiber.Map{
		"subject":        subject,
		"question_count": questionCount,
	})
}

func (sc *SubjectsController) CreateSubject(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if subject.Name == "" {
		return utils.BadRequest(c, "Subject name is required")
	}

	if err := sc.DB.Create(&subject).Error; err != nil {
		return utils.InternalServerError(c, "Could not create subject")
	}

	return c.JSON(fiber.Map{
		"message": "Subject created",
		"subject": subject,
	})
}

func (sc *SubjectsController) UpdateSubject(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	var subject models.Subject
	if err := sc.DB.First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Name        string `json:"name"`
		NameAr      string `json:"name_ar"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.NameAr != "" {
		subject.NameAr = input.NameAr
	}
	if input.Description != "" {
		subject.Description = input.Description
	}
	if input.Color != "" {
		subject.Color = input.Color
	}
	if input.Icon != "" {
		subject.Icon = input.Icon
	}

	if err := sc.DB.Save(&subject).Error; err != nil {
		return utils.InternalServerError(c, "Could not update subject")
	}

	return c.JSON(fiber.Map{
		"message": "Subject updated",
		"subject": subject,
	})
}

func (sc *SubjectsController) DeleteSubject(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid subject ID")
	}

	if err := sc.DB.Delete(&models.Subject{}, subjectID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete subject")
	}

	return utils.NoContent(c)
}
