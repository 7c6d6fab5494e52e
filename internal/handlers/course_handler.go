package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edutech/internal/models"
	"edutech/internal/services"
)

// CourseHandler handles catalog requests
type CourseHandler struct {
	courseService services.CourseServicer
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService services.CourseServicer) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents the course creation payload. Title and
// amounts are checked after the admin guard.
type CreateCourseRequest struct {
	Title         string  `json:"title" binding:"max=255"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	Category      string  `json:"category" binding:"max=100"`
	Image         string  `json:"image" binding:"max=10"`
}

// CourseListResponse lists courses.
type CourseListResponse struct {
	Courses []models.Course `json:"courses"`
}

// CourseResponse wraps one course.
type CourseResponse struct {
	Message string        `json:"message,omitempty"`
	Course  models.Course `json:"course"`
}

// ListCourses returns the catalog
// @Summary     List courses
// @Description List all courses, newest first
// @Tags        courses
// @Produce     json
// @Success     200 {object} CourseListResponse
// @Router      /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CourseListResponse{Courses: courses})
}

// GetCourse returns one course
// @Summary     Get course
// @Tags        courses
// @Produce     json
// @Param       id path int true "Course ID"
// @Success     200 {object} CourseResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Course not found"
// @Router      /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CourseResponse{Course: *course})
}

// CreateCourse adds a course
// @Summary     Create course
// @Description Add a course to the catalog (admin only)
// @Tags        courses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCourseRequest true "Course data"
// @Success     201 {object} CourseResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), getIdentity(c), services.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		Category:      req.Category,
		Image:         req.Image,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CourseResponse{Message: "Course created successfully", Course: *course})
}
