package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"studyforge/backend/config"
	"studyforge/backend/models"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuestionsController(db *gorm.DB, cfg *config.Config) *QuestionsController {
	return &QuestionsController{DB: db, Cfg: cfg}
}

// GetQuestions godoc
// @Summary List questions
// @Description Questions filtered by subject, difficulty, type and limit. Correct answers are included: this listing backs the authoring screen, not the game.
// @Tags questions
// @Produce json
// @Router /questions [get]
func (qc *QuestionsController) GetQuestions(c *fiber.Ctx) error {
	query := qc.DB.Model(&models.Question{})

	if subjectID := c.Query("subject_id"); subjectID != "" && subjectID != "all" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" && difficulty != "all" {
		query = query.Where("difficulty_level = ?", difficulty)
	}
	if qType := c.Query("type"); qType != "" && qType != "all" {
		query = query.Where("type = ?", qType)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var questions []models.Question
	if err := query.Order("created_at desc").Limit(limit).Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for i := range questions {
		options, err := questions[i].OptionList()
		if err != nil {
			options = nil
		}
		result = append(result, fiber.Map{
			"id":               questions[i].ID,
			"subject_id":       questions[i].SubjectID,
			"text":             questions[i].Text,
			"type":             questions[i].Type,
			"options":          options,
			"correct_answer":   questions[i].CorrectAnswer,
			"explanation":      questions[i].Explanation,
			"difficulty_level": questions[i].DifficultyLevel,
			"points":           questions[i].Points,
		})
	}

	return c.JSON(fiber.Map{
		"questions": result,
	})
}

func (qc *QuestionsController) CreateQuestion(c *fiber.Ctx) error {
	var input struct {
		SubjectID       uint     `json:"subject_id"`
		Text            string   `json:"text"`
		Type            string   `json:"type"`
		Options         []string `json:"options"`
		CorrectAnswer   string   `json:"correct_answer"`
		Explanation     string   `json:"explanation"`
		DifficultyLevel int      `json:"difficulty_level"`
		Points          int      `json:"points"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.SubjectID == 0 || input.Text == "" || input.CorrectAnswer == "" {
		return utils.BadRequest(c, "subject_id, text and correct_answer are required")
	}

	if input.Type == "" {
		input.Type = models.QuestionMultipleChoice
	}
	if err := validateQuestion(input.Type, input.Options, input.CorrectAnswer); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	optionsJSON, err := json.Marshal(input.Options)
	if err != nil {
		return utils.BadRequest(c, "Invalid options")
	}

	question := models.Question{
		SubjectID:       input.SubjectID,
		Text:            input.Text,
		Type:            input.Type,
		Options:         string(optionsJSON),
		CorrectAnswer:   input.CorrectAnswer,
		Explanation:     input.Explanation,
		DifficultyLevel: input.DifficultyLevel,
		Points:          input.Points,
	}
	if question.DifficultyLevel <= 0 {
		question.DifficultyLevel = 1
	}
	if question.Points <= 0 {
		question.Points = 10
	}

	if err := qc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question created",
		"question": question,
	})
}

func (qc *QuestionsController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.Question
	if err := qc.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Text            string    `json:"text"`
		Type            string    `json:"type"`
		Options         *[]string `json:"options"`
		CorrectAnswer   string    `json:"correct_answer"`
		Explanation     string    `json:"explanation"`
		DifficultyLevel int       `json:"difficulty_level"`
		Points          int       `json:"points"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Text != "" {
		question.Text = input.Text
	}
	if input.Type != "" {
		question.Type = input.Type
	}
	if input.Options != nil {
		optionsJSON, err := json.Marshal(*input.Options)
		if err != nil {
			return utils.BadRequest(c, "Invalid options")
		}
		question.Options = string(optionsJSON)
	}
	if input.CorrectAnswer != "" {
		question.CorrectAnswer = input.CorrectAnswer
	}
	if input.Explanation != "" {
		question.Explanation = input.Explanation
	}
	if input.DifficultyLevel > 0 {
		question.DifficultyLevel = input.DifficultyLevel
	}
	if input.Points > 0 {
		question.Points = input.Points
	}

	options, _ := question.OptionList()
	if err := validateQuestion(question.Type, options, question.CorrectAnswer); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := qc.DB.Save(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not update question")
	}

	return c.JSON(fiber.Map{
		"message":  "Question updated",
		"question": question,
	})
}

func (qc *QuestionsController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	if err := qc.DB.Delete(&models.Question{}, questionID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete question")
	}

	return utils.NoContent(c)
}

// validateQuestion enforces the per-type answer constraints: the correct
// answer must be one of the options for multiple choice, true/false for
// boolean questions, and short answers carry no options at all.
func validateQuestion(qType string, options []string, correctAnswer string) error {
	switch qType {
	case models.QuestionMultipleChoice:
		for _, option := range options {
			if option == correctAnswer {
				return nil
			}
		}
		return fiber.NewError(fiber.StatusBadRequest, "correct_answer must be one of the options")
	case models.QuestionTrueFalse:
		if correctAnswer != "true" && correctAnswer != "false" {
			return fiber.NewError(fiber.StatusBadRequest, "correct_answer must be true or false")
		}
		return nil
	case models.QuestionShortAnswer:
		if len(options) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "short_answer questions take no options")
		}
		return nil
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown question type")
	}
}
