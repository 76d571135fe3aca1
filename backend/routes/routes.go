package routes

import (
	"log"
	"studyforge/backend/cache"
	"studyforge/backend/config"
	"studyforge/backend/controllers"
	"studyforge/backend/game"
	"studyforge/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the shared infrastructure handed to the controllers.
// Cache may be nil (question caching disabled); Manager may be nil and
// is then built over the database-backed stores.
type Deps struct {
	Cache   *cache.Client
	Manager *game.Manager
	Logger  *log.Logger
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	manager := deps.Manager
	if manager == nil {
		manager = game.NewManager(
			&game.GormQuestionSource{DB: db, Cache: deps.Cache, Logger: logger},
			&game.GormPointsSink{DB: db},
			logger,
		)
	}

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Get("/api/leaderboard", authMiddleware, userController.Leaderboard)

	// Subject routes
	subjectsController := controllers.NewSubjectsController(db, cfg)
	app.Get("/api/subjects", authMiddleware, subjectsController.GetSubjects)
	app.Get("/api/subjects/:id", authMiddleware, subjectsController.GetSubject)

	// Lesson routes
	lessonsController := controllers.NewLessonsController(db, cfg)
	lessons := app.Group("/api/lessons", authMiddleware)
	lessons.Get("/", lessonsController.GetLessons)
	lessons.Get("/:id", lessonsController.GetLesson)
	lessons.Post("/:id/complete", lessonsController.CompleteLesson)

	// Question routes (listing backs the authoring screen)
	questionsController := controllers.NewQuestionsController(db, cfg)
	app.Get("/api/questions", authMiddleware, questionsController.GetQuestions)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetProgressOverview)

	// Game session routes
	gamesController := controllers.NewGamesController(manager, cfg)
	games := app.Group("/api/games", authMiddleware)
	games.Post("/sessions", gamesController.CreateSession)
	games.Get("/sessions/:id", gamesController.GetSession)
	games.Post("/sessions/:id/start", gamesController.StartSession)
	games.Post("/sessions/:id/answer", gamesController.AnswerSession)
	games.Post("/sessions/:id/advance", gamesController.AdvanceSession)
	games.Post("/sessions/:id/reset", gamesController.ResetSession)
	games.Delete("/sessions/:id", gamesController.DeleteSession)

	// AI tutor chat
	chatController := controllers.NewChatController(cfg, logger)
	app.Post("/api/chat", authMiddleware, chatController.Chat)

	// Whiteboard routes
	whiteboardController := controllers.NewWhiteboardController(db, cfg)
	app.Get("/api/whiteboard/:lessonId", authMiddleware, whiteboardController.GetWhiteboard)
	app.Put("/api/whiteboard/:lessonId", authMiddleware, whiteboardController.SaveWhiteboard)

	// Admin routes for subjects
	adminSubjects := app.Group("/api/admin/subjects", authMiddleware, adminMiddleware)
	adminSubjects.Post("/", subjectsController.CreateSubject)
	adminSubjects.Put("/:id", subjectsController.UpdateSubject)
	adminSubjects.Delete("/:id", subjectsController.DeleteSubject)

	// Admin routes for lessons
	adminLessons := app.Group("/api/admin/lessons", authMiddleware, adminMiddleware)
	adminLessons.Post("/", lessonsController.CreateLesson)
	adminLessons.Put("/:id", lessonsController.UpdateLesson)
	adminLessons.Delete("/:id", lessonsController.DeleteLesson)

	// Admin routes for questions
	adminQuestions := app.Group("/api/admin/questions", authMiddleware, adminMiddleware)
	adminQuestions.Post("/", questionsController.CreateQuestion)
	adminQuestions.Put("/:id", questionsController.UpdateQuestion)
	adminQuestions.Delete("/:id", questionsController.DeleteQuestion)
}
