package services

import (
	"context"

	"edutech/internal/logger"
	"edutech/internal/models"
	"edutech/internal/store"
)

// auditService handles audit log recording.
type auditService struct {
	logs *store.AuditLogRepository
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(logs *store.AuditLogRepository) AuditServicer {
	return &auditService{logs: logs}
}

// Record appends an audit entry before returning. Errors are logged but never
// propagate, so a failed write cannot undo the operation it describes. The
// write is detached from the request's cancellation.
func (s *auditService) Record(ctx context.Context, userID int64, eventType models.EventType, email, fullName, action string) {
	entry := &models.AuditLog{
		UserID:   userID,
		LogType:  eventType,
		Email:    email,
		FullName: fullName,
		Action:   action,
	}

	if err := s.logs.Append(context.WithoutCancel(ctx), entry); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"event_type", eventType,
			"action", action,
		)
	}
}
