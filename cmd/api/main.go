package main

import (
	"context"
	"fmt"
	"os"

	"edutech/internal/auth"
	"edutech/internal/cache"
	"edutech/internal/config"
	"edutech/internal/database"
	"edutech/internal/logger"
	"edutech/internal/server"
	"edutech/internal/services"
	"edutech/internal/store"
)

// @title           EduTech API
// @version         1.0
// @description     EduTech is a course platform API covering accounts, the course catalog, enrollments and progress tracking.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:3000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx := context.Background()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Repositories
	ex := store.NewExecutor(dbManager.DB(), appConfig.DBQueryTimeout)
	users := store.NewUserRepository(ex)
	courses := store.NewCourseRepository(ex)
	enrollments := store.NewEnrollmentRepository(ex)
	logs := store.NewAuditLogRepository(ex)

	hasher := auth.NewPasswordHasher(auth.DefaultCost)
	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret:   appConfig.JWTSecret,
		Issuer:   appConfig.JWTIssuer,
		Lifetime: appConfig.JWTExpirationDur,
	})

	seeder := store.NewSeeder(users, courses, logs, hasher)
	if err := seeder.Seed(ctx, store.AdminAccount{
		Email:    appConfig.AdminEmail,
		Password: appConfig.AdminPassword,
		FullName: appConfig.AdminName,
	}); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	var courseCache cache.CourseCache = cache.NoopCourseCache{}
	if appConfig.RedisAddr != "" {
		client := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		defer client.Close()
		courseCache = cache.NewRedisCourseCache(client, appConfig.CourseCacheTTL)
	}

	// Services
	audit := services.NewAuditService(logs)
	router := server.NewRouter(server.Dependencies{
		Tokens:      tokens,
		Auth:        services.NewAuthService(users, hasher, tokens, audit),
		Users:       services.NewUserService(users, logs, audit),
		Courses:     services.NewCourseService(courses, courseCache),
		Enrollments: services.NewEnrollmentService(users, courses, enrollments, audit),
	})

	log.Infof("Starting EduTech server on port %s (%s)", appConfig.Port, appConfig.Env)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
