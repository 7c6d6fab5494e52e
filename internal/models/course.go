package models

import "time"

// DefaultCourseIcon is used when a course is created without an icon.
const DefaultCourseIcon = "📚"

// Course is an entry of the catalog.
type Course struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DurationHours int       `json:"duration_hours"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
}
