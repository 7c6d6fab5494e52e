package models

import "time"

// EventType classifies an audit log entry.
type EventType string

const (
	EventLogin            EventType = "LOGIN"
	EventRegistration     EventType = "REGISTRATION"
	EventCourseEnrollment EventType = "COURSE_ENROLLMENT"
	EventUserDeleted      EventType = "USER_DELETED"
	EventAdminCreated     EventType = "ADMIN_CREATED"
)

// AuditLog is an append-only record of a security-relevant event. Email and
// FullName are snapshots taken when the event happened.
type AuditLog struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	LogType  EventType `json:"log_type"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Action   string    `json:"action"`
	LoggedAt time.Time `json:"logged_at"`
}
