package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edutech/internal/models"
	"edutech/internal/services"
)

// UserHandler handles user administration requests
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserListResponse lists users.
type UserListResponse struct {
	Users []models.UserSummary `json:"users"`
	Count int                  `json:"count"`
}

// LogListResponse lists audit entries.
type LogListResponse struct {
	Logs []models.AuditLog `json:"logs"`
}

// ListUsers returns every user
// @Summary     List users
// @Description List all users, newest first (admin only)
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserListResponse
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), getIdentity(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserListResponse{Users: users, Count: len(users)})
}

// GetUser returns one user
// @Summary     Get user
// @Description Get a user; callers may read themselves, admins anyone
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} UserResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), getIdentity(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: *user})
}

// DeleteUser deletes a user
// @Summary     Delete user
// @Description Delete a non-admin user with their enrollments and logs (admin only)
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Self or admin deletion"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), getIdentity(c), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// GetUserLogs returns a user's audit trail
// @Summary     Get user logs
// @Description List the audit entries attributed to a user, newest first (admin only)
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} LogListResponse
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /users/{id}/logs [get]
func (h *UserHandler) GetUserLogs(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	logs, err := h.userService.GetUserLogs(c.Request.Context(), getIdentity(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LogListResponse{Logs: logs})
}
