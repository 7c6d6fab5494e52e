// Package server assembles the HTTP router.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "edutech/internal/docs" // Import swagger docs
	apperrors "edutech/internal/errors"
	"edutech/internal/handlers"
	"edutech/internal/middleware"
	"edutech/internal/services"
	"edutech/internal/validator"
)

// Dependencies are the services the router dispatches to.
type Dependencies struct {
	Tokens      middleware.TokenVerifier
	Auth        services.AuthServicer
	Users       services.UserServicer
	Courses     services.CourseServicer
	Enrollments services.EnrollmentServicer
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRouter wires every route under /api/v1. Admin-only routes are rejected
// before the request is read; the services repeat every role check.
func NewRouter(deps Dependencies) *gin.Engine {
	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)
	courseHandler := handlers.NewCourseHandler(deps.Courses)
	enrollmentHandler := handlers.NewEnrollmentHandler(deps.Enrollments)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		middleware.AbortWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Route not found"))
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	requireToken := middleware.AuthMiddleware(deps.Tokens)
	requireAdmin := middleware.RequireAdmin()

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify", authHandler.Verify)

	// The catalog is public; creating a course needs a token.
	courses := v1.Group("/courses")
	courses.GET("", courseHandler.ListCourses)
	courses.GET("/:id", courseHandler.GetCourse)
	courses.POST("", requireToken, requireAdmin, courseHandler.CreateCourse)

	users := v1.Group("/users", requireToken)
	users.GET("", requireAdmin, userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.DELETE("/:id", requireAdmin, userHandler.DeleteUser)
	users.GET("/:id/logs", requireAdmin, userHandler.GetUserLogs)

	enrollments := v1.Group("/enrollments", requireToken)
	enrollments.POST("", enrollmentHandler.Enroll)
	enrollments.GET("/my-courses", enrollmentHandler.ListMyEnrollments)
	enrollments.PATCH("/:courseId/progress", enrollmentHandler.UpdateProgress)

	return router
}

// health godoc
// @Summary     Health check
// @Tags        system
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "EduTech API is running",
		Timestamp: time.Now().UTC(),
	})
}
