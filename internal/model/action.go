package model

import (
	"io"
	"time"
)

// ActionResult is the body every remote write answers with.
type ActionResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// SignInResult is the body of a remote sign-in.
type SignInResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Upload is an optional replacement image attached to an edit.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Moderation action names recorded in the audit trail.
const (
	ActionBan    = "ban"
	ActionUnban  = "unban"
	ActionDelete = "delete"
	ActionUpdate = "update"
	ActionSignIn = "signin"
	ActionLogout = "logout"
)

// ModerationAction is one forwarded write, kept locally for auditing.
type ModerationAction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"index" json:"actor"`
	Resource  string    `gorm:"index" json:"resource"`
	RecordID  int       `json:"record_id"`
	Action    string    `json:"action"`
	Succeeded bool      `json:"succeeded"`
	Message   string    `json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
