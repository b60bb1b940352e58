package domain

import (
	"context"

	"modconsole.com/internal/model"
)

// ===========================
// Moderation service contracts
// ===========================

// ResourceAPI is the remote CRUD surface of one record kind.
type ResourceAPI[T any] interface {
	// List returns the full collection.
	List(ctx context.Context) ([]T, error)
	// Get returns one record with its report history.
	Get(ctx context.Context, id int) (T, error)
	// Ban suspends a record.
	Ban(ctx context.Context, id int) (model.ActionResult, error)
	// Unban lifts a suspension.
	Unban(ctx context.Context, id int) (model.ActionResult, error)
	// Delete removes a record.
	Delete(ctx context.Context, id int) (model.ActionResult, error)
	// Update resubmits every field plus an optional image as multipart.
	Update(ctx context.Context, id int, fields []model.Field, image *model.Upload) (model.ActionResult, error)
}

// StatsAPI serves the dashboard counters and the flagged-user list.
type StatsAPI interface {
	TotalUsers(ctx context.Context) (int64, error)
	TotalReportedUsers(ctx context.Context) (int64, error)
	ReportedUsers(ctx context.Context) ([]model.User, error)
}

// SessionAPI ends the operator's remote session.
type SessionAPI interface {
	Logout(ctx context.Context) (model.ActionResult, error)
}

// ===========================
// Console-local contracts
// ===========================

// ActionRecorder accepts forwarded writes for the audit trail.
type ActionRecorder interface {
	Record(ctx context.Context, action model.ModerationAction)
}

// AuditLog reads back the audit trail.
type AuditLog interface {
	Recent(ctx context.Context, limit int) ([]model.ModerationAction, error)
}
