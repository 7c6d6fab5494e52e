package models

import "time"

// Enrollment links a user to a course. A user enrolls in a course at most once.
type Enrollment struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	CourseID           int64      `json:"course_id"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	ProgressPercentage int        `json:"progress_percentage"`
	CompletedAt        *time.Time `json:"completed_at"`
}

// EnrolledCourse is an enrollment joined with the course it refers to.
type EnrolledCourse struct {
	Enrollment
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
}
