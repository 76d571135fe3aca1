package controllers

import (
	"errors"
	"studyforge/backend/config"
	"studyforge/backend/game"
	"studyforge/backend/middleware"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GamesController is the HTTP boundary of the quiz engine. Handlers
// only translate JSON to engine calls and hand back snapshots; all game
// rules live in the game package.
type GamesController struct {
	Manager *game.Manager
	Cfg     *config.Config
}

func NewGamesController(manager *game.Manager, cfg *config.Config) *GamesController {
	return &GamesController{Manager: manager, Cfg: cfg}
}

// CreateSession godoc
// @Summary Create a game session
// @Description Loads the question page for a subject and returns a ready session
// @Tags games
// @Accept json
// @Produce json
// @Router /games/sessions [post]
func (gc *GamesController) CreateSession(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var input struct {
		SubjectID  uint   `json:"subject_id"`
		Difficulty int    `json:"difficulty"`
		Search     string `json:"search"`
		Limit      int    `json:"limit"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.SubjectID == 0 {
		return utils.BadRequest(c, "subject_id is required")
	}

	session, err := gc.Manager.Create(c.Context(), userID, input.SubjectID, game.Filter{
		Difficulty: input.Difficulty,
		Search:     input.Search,
		Limit:      input.Limit,
	})
	if err != nil {
		if errors.Is(err, game.ErrNoQuestions) {
			return utils.NotFound(c, "No questions available for this subject")
		}
		return utils.InternalServerError(c, "Could not load questions")
	}

	return c.Status(fiber.StatusCreated).JSON(session.Snapshot())
}

func (gc *GamesController) GetSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}
	return c.JSON(session.Snapshot())
}

func (gc *GamesController) StartSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}

	var input struct {
		Mode string `json:"mode"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := session.Start(game.Mode(input.Mode)); err != nil {
		switch {
		case errors.Is(err, game.ErrInvalidMode):
			return utils.BadRequest(c, "mode must be practice, timed or challenge")
		case errors.Is(err, game.ErrNoQuestions):
			return utils.NotFound(c, "No questions available")
		default:
			return utils.Error(c, fiber.StatusConflict, err)
		}
	}

	return c.JSON(session.Snapshot())
}

// AnswerSession records an answer. Duplicate submissions are absorbed
// by the engine, so a double-clicking client just gets the same
// snapshot twice.
func (gc *GamesController) AnswerSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}

	var input struct {
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	session.SelectAnswer(input.Answer)
	return c.JSON(session.Snapshot())
}

func (gc *GamesController) AdvanceSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}

	session.Advance()
	return c.JSON(session.Snapshot())
}

func (gc *GamesController) ResetSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}

	session.Reset()
	return c.JSON(session.Snapshot())
}

func (gc *GamesController) DeleteSession(c *fiber.Ctx) error {
	session, ferr := gc.sessionFor(c)
	if ferr != nil {
		return utils.Error(c, ferr.Code, ferr)
	}

	gc.Manager.Remove(session.ID)
	return utils.NoContent(c)
}

func (gc *GamesController) sessionFor(c *fiber.Ctx) (*game.Session, *fiber.Error) {
	session, ok := gc.Manager.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Game session not found")
	}
	// Sessions are private to the player who opened them.
	if session.UserID != middleware.CurrentUserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
	return session, nil
}
