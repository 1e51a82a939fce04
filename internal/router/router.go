package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/storytime-app/backend/internal/discovery"
	"github.com/storytime-app/backend/internal/handlers"
	"github.com/storytime-app/backend/internal/middleware"
	"github.com/storytime-app/backend/internal/models"
	"github.com/storytime-app/backend/internal/repositories"
	"github.com/storytime-app/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Story{},
		&models.Profile{},
		&models.Reaction{},
		&models.StoryLike{},
		&models.Shelf{},
		&models.ShelfItem{},
		&models.Completion{},
		&models.Follow{},
		&models.StoryVisibility{},
		&models.EditorialPick{},
		&models.FeaturedStory{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	storyRepo := repositories.NewPostgresStoryRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	eventRepo := repositories.NewMongoEventRepository(mongoDB)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	legacyLikeRepo := repositories.NewPostgresLegacyLikeRepository(pgdb)
	shelfRepo := repositories.NewPostgresShelfRepository(pgdb)
	completionRepo := repositories.NewPostgresCompletionRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	visibilityRepo := repositories.NewPostgresVisibilityRepository(pgdb)
	editorialRepo := repositories.NewPostgresEditorialRepository(pgdb)

	// --- Discovery core ---
	aggregator := discovery.NewAggregator(eventRepo, reactionRepo, legacyLikeRepo, shelfRepo, completionRepo)
	discoveryService := discovery.NewService(storyRepo, profileRepo, followRepo, visibilityRepo, editorialRepo, aggregator)

	// All feed routes resolve a viewer identity (authenticated or anonymous)
	// and run under a default backing-store deadline.
	api := e.Group("/api/v1")
	api.Use(middleware.IdentityMiddleware(cfg.JWTSecret))
	api.Use(middleware.RequestTimeout(middleware.DefaultStoreTimeout))
	log.Println("Identity and timeout middleware applied to /api/v1 group.")

	// Discovery routes
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	discoveryHandler.RegisterDiscoveryRoutes(api)
	log.Println("Discovery routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(discoveryService, eventRepo, shelfRepo, visibilityRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	log.Println("All routes configured.")
}
