package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Audit actions recorded for the credential lifecycle.
const (
	AuditSignup       = "signup"
	AuditLogin        = "login"
	AuditLoginFailed  = "login_failed"
	AuditResetRequest = "reset_request"
	AuditResetConfirm = "reset_confirm"
	AuditLogout       = "logout"
)

// AuditLog writes auth events straight through pgx; it never blocks the request on failure.
type AuditLog struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

func NewAuditLog(pool *pgxpool.Pool, logger *logrus.Logger) *AuditLog {
	return &AuditLog{pool: pool, logger: logger}
}

// Record inserts one row. A nil AuditLog or pool is a no-op.
func (a *AuditLog) Record(ctx context.Context, userID uuid.UUID, email, action, ip, userAgent string, metadata map[string]any) {
	if a == nil || a.pool == nil {
		return
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	md, _ := json.Marshal(metadata)

	var uid *uuid.UUID
	if userID != uuid.Nil {
		uid = &userID
	}
	_, err := a.pool.Exec(ctx, `
		INSERT INTO auth_audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6)
	`, uid, email, action, ip, userAgent, md)
	if err != nil && a.logger != nil {
		a.logger.WithError(err).WithField("action", action).Warn("audit log insert failed")
	}
}
