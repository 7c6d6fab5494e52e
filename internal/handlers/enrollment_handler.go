package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edutech/internal/models"
	"edutech/internal/services"
)

// EnrollmentHandler handles enrollment requests
type EnrollmentHandler struct {
	enrollmentService services.EnrollmentServicer
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollmentService services.EnrollmentServicer) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollRequest represents the enrollment payload
type EnrollRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
}

// ProgressRequest represents the progress update payload. A pointer keeps an
// explicit 0 distinguishable from a missing field.
type ProgressRequest struct {
	ProgressPercentage *int `json:"progress_percentage" binding:"required"`
}

// EnrollmentResponse wraps a new enrollment.
type EnrollmentResponse struct {
	Message    string            `json:"message"`
	Enrollment models.Enrollment `json:"enrollment"`
}

// EnrollmentListResponse lists the caller's enrollments.
type EnrollmentListResponse struct {
	Enrollments []models.EnrolledCourse `json:"enrollments"`
}

// Enroll enrolls the caller in a course
// @Summary     Enroll in course
// @Tags        enrollments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EnrollRequest true "Course to enroll in"
// @Success     201 {object} EnrollmentResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Course not found"
// @Failure     409 {object} ErrorResponse "Already enrolled"
// @Router      /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), getIdentity(c), req.CourseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, EnrollmentResponse{Message: "Successfully enrolled in course", Enrollment: *enrollment})
}

// ListMyEnrollments returns the caller's courses
// @Summary     My courses
// @Description List the caller's enrollments with course details, most recent first
// @Tags        enrollments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} EnrollmentListResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /enrollments/my-courses [get]
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	enrolled, err := h.enrollmentService.ListMyEnrollments(c.Request.Context(), getIdentity(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EnrollmentListResponse{Enrollments: enrolled})
}

// UpdateProgress sets the caller's progress in a course
// @Summary     Update progress
// @Tags        enrollments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       courseId path int true "Course ID"
// @Param       request body ProgressRequest true "New progress"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not enrolled in this course"
// @Router      /enrollments/{courseId}/progress [patch]
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	courseID, err := parsePathID(c, "courseId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	if err := h.enrollmentService.UpdateProgress(c.Request.Context(), getIdentity(c), courseID, *req.ProgressPercentage); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Progress updated successfully"})
}
