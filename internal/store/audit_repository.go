package store

import (
	"context"
	"fmt"
	"time"

	"edutech/internal/models"
)

type auditLogRow struct {
	ID       int64     `gorm:"column:id"`
	UserID   int64     `gorm:"column:user_id"`
	LogType  string    `gorm:"column:log_type"`
	Email    string    `gorm:"column:email"`
	FullName string    `gorm:"column:full_name"`
	Action   string    `gorm:"column:action"`
	LoggedAt time.Time `gorm:"column:logged_at"`
}

func (r *auditLogRow) toModel() models.AuditLog {
	return models.AuditLog{
		ID:       r.ID,
		UserID:   r.UserID,
		LogType:  models.EventType(r.LogType),
		Email:    r.Email,
		FullName: r.FullName,
		Action:   r.Action,
		LoggedAt: r.LoggedAt,
	}
}

// AuditLogRepository appends to and reads the user_logs relation. Entries are
// never updated; they disappear only when their user is deleted.
type AuditLogRepository struct {
	ex Executor
}

// NewAuditLogRepository creates an AuditLogRepository.
func NewAuditLogRepository(ex Executor) *AuditLogRepository {
	return &AuditLogRepository{ex: ex}
}

// Append inserts entry and fills in its id and timestamp.
func (r *AuditLogRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	now := time.Now().UTC()
	res, err := r.ex.Execute(ctx,
		"INSERT INTO user_logs (user_id, log_type, email, full_name, action, logged_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		entry.UserID, string(entry.LogType), entry.Email, entry.FullName, entry.Action, now)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	entry.ID = res.GeneratedID
	entry.LoggedAt = now
	return nil
}

// ListByUser returns the entries attributed to userID, newest first.
func (r *AuditLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.AuditLog, error) {
	var rows []auditLogRow
	err := r.ex.FetchMany(ctx, &rows,
		"SELECT id, user_id, log_type, email, full_name, action, logged_at FROM user_logs WHERE user_id = ? ORDER BY logged_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	logs := make([]models.AuditLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].toModel())
	}
	return logs, nil
}
