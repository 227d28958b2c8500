package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/wavely/backend/internal/handlers"
	"github.com/anonto42/wavely/backend/internal/middleware"
	"github.com/anonto42/wavely/backend/internal/models"
	"github.com/anonto42/wavely/backend/internal/notify"
	"github.com/anonto42/wavely/backend/internal/realtime"
	"github.com/anonto42/wavely/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgdb *mongo.Database, firebaseAuthClient *auth.Client, jwtSecret string, logger zerolog.Logger) {
	// AutoMigrate PostgreSQL models. Document entities (posts, comments,
	// notifications, presence) live in MongoDB and need no migration.
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mgdb)
	presenceRepo := repositories.NewMongoPresenceRepository(mgdb)

	// --- Realtime channel and notification fan-out ---
	hub := realtime.NewHub(logger)
	dispatcher := notify.NewDispatcher(notificationRepo, presenceRepo, hub, logger)
	fanOut := notify.NewFanOut(notify.NewEngine(), dispatcher)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, fanOut)
	postHandler.RegisterPostRoutes(api)

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, friendshipRepo)
	feedHandler.RegisterFeedRoutes(api)

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo, fanOut)
	friendshipHandler.RegisterFriendshipRoutes(api)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, fanOut)
	commentHandler.RegisterCommentRoutes(api)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// Realtime websocket route
	wsHandler := handlers.NewWebSocketHandler(hub, presenceRepo, logger)
	wsHandler.RegisterWebSocketRoutes(api)

	logger.Info().Msg("all routes configured")
}
