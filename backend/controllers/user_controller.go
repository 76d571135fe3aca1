package controllers

import (
	"errors"
	"studyforge/backend/config"
	"studyforge/backend/middleware"
	"studyforge/backend/models"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var profile models.UserProfile
	uc.DB.Where("user_id = ?", userID).First(&profile)

	var achievements []models.UserAchievement
	uc.DB.Where("user_id = ?", userID).
		Order("earned_at desc").
		Limit(5).
		Find(&achievements)

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"full_name":    user.FullName,
		"grade":        user.Grade,
		"role":         user.Role,
		"points":       profile.Points,
		"streak_days":  profile.StreakDays,
		"avatar_url":   profile.AvatarURL,
		"achievements": achievements,
	})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input struct {
		FullName  string `json:"full_name"`
		Grade     string `json:"grade"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Grade != "" {
		user.Grade = input.Grade
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}

	if input.AvatarURL != "" {
		var profile models.UserProfile
		if err := uc.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = models.UserProfile{UserID: userID, AvatarURL: input.AvatarURL}
				uc.DB.Create(&profile)
			}
		} else {
			profile.AvatarURL = input.AvatarURL
			uc.DB.Save(&profile)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
	})
}

// Leaderboard godoc
// @Summary Points leaderboard
// @Description Top users ordered by accumulated points
// @Tags users
// @Produce json
// @Router /leaderboard [get]
func (uc *UserController) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var profiles []models.UserProfile
	if err := uc.DB.Order("points desc").Limit(limit).Find(&profiles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for rank, profile := range profiles {
		var user models.User
		if err := uc.DB.First(&user, profile.UserID).Error; err != nil {
			continue
		}
		result = append(result, fiber.Map{
			"rank":     rank + 1,
			"user_id":  user.ID,
			"username": user.Username,
			"points":   profile.Points,
		})
	}

	return c.JSON(fiber.Map{
		"leaderboard": result,
	})
}
