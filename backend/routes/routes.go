package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/cache"
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/storage"
)

// Deps are the process-wide resources the routes are built from.
type Deps struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Log   *zap.SugaredLogger
	Cache cache.Cache
	Store storage.ObjectStore
}

func SetupRoutes(app *fiber.App, deps Deps) {
	repos := services.NewRepos(deps.DB)
	catalog := services.NewCatalogService(repos, deps.Cache, deps.Cfg.CatalogCacheTTL, deps.Log)
	admin := services.NewAdminService(repos, catalog, deps.Log)
	learning := services.NewLearningService(repos, catalog, deps.Log)
	profile := services.NewProfileService(repos, deps.Store, deps.Cfg.MaxAvatarBytes, deps.Log)
	accounts := services.NewAuthService(repos, deps.Cfg, deps.Log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Authenticate(accounts))

	// Middleware
	authMiddleware := middleware.AuthMiddleware()
	adminMiddleware := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(accounts)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	// Catalog and player
	coursesController := controllers.NewCoursesController(catalog, learning, admin)
	api.Get("/courses", coursesController.GetCourses)
	api.Get("/courses/:courseId", coursesController.GetCourseDetails)
	api.Get("/courses/:courseId/videos/:videoId", coursesController.WatchVideo)

	overviewController := controllers.NewOverviewController(catalog, admin)
	api.Get("/search", overviewController.Search)

	// Progress routes
	progressController := controllers.NewProgressController(learning)
	api.Put("/videos/:videoId/progress", authMiddleware, progressController.UpdateVideoProgress)
	api.Get("/dashboard", authMiddleware, progressController.GetDashboard)

	// User routes
	userController := controllers.NewUserController(profile, deps.Cfg)
	api.Get("/profile", authMiddleware, userController.GetProfile)
	api.Put("/profile", authMiddleware, userController.UpdateProfile)
	api.Post("/profile/avatar", authMiddleware, userController.UploadAvatar)

	// Admin routes
	adminGroup := api.Group("/admin", adminMiddleware)
	adminGroup.Get("/", overviewController.GetAdminOverview)

	adminCourses := adminGroup.Group("/courses")
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Put("/order", coursesController.ReorderCourses)
	adminCourses.Put("/:courseId", coursesController.UpdateCourse)
	adminCourses.Delete("/:courseId", coursesController.DeleteCourse)
	adminCourses.Post("/:courseId/move", coursesController.MoveCourse)

	sectionsController := controllers.NewSectionsController(admin)
	adminSections := adminCourses.Group("/:courseId/sections")
	adminSections.Post("/", sectionsController.CreateSection)
	adminSections.Put("/order", sectionsController.ReorderSections)
	adminSections.Put("/:sectionId", sectionsController.UpdateSection)
	adminSections.Delete("/:sectionId", sectionsController.DeleteSection)
	adminSections.Post("/:sectionId/move", sectionsController.MoveSection)

	videosController := controllers.NewVideosController(admin)
	adminVideos := adminSections.Group("/:sectionId/videos")
	adminVideos.Post("/", videosController.CreateVideo)
	adminVideos.Put("/order", videosController.ReorderVideos)
	adminVideos.Put("/:videoId", videosController.UpdateVideo)
	adminVideos.Patch("/:videoId/preview", videosController.TogglePreview)
	adminVideos.Delete("/:videoId", videosController.DeleteVideo)
	adminVideos.Post("/:videoId/move", videosController.MoveVideo)
}
