package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
	"modconsole.com/internal/constants"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/event"
	"modconsole.com/internal/model"
)

// AuditServiceImpl persists forwarded writes and reads them back.
type AuditServiceImpl struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditServiceImpl {
	return &AuditServiceImpl{db: db}
}

// Save stores one action.
func (s *AuditServiceImpl) Save(ctx context.Context, action model.ModerationAction) error {
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(&action).Error; err != nil {
		return domain.NewInternalError("failed to save moderation action", err)
	}
	return nil
}

// Recent returns the newest actions first.
func (s *AuditServiceImpl) Recent(ctx context.Context, limit int) ([]model.ModerationAction, error) {
	var actions []model.ModerationAction
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&actions).Error
	if err != nil {
		return nil, domain.NewInternalError("failed to load moderation actions", err)
	}
	return actions, nil
}

// HandleEvent is the bus handler for every moderation event.
func (s *AuditServiceImpl) HandleEvent(ctx context.Context, ev event.Event) error {
	action := ev.Action
	if action.CreatedAt.IsZero() {
		action.CreatedAt = ev.At
	}
	if err := s.Save(ctx, action); err != nil {
		log.Printf("AuditService: Failed to record %s on %s/%d: %v", action.Action, action.Resource, action.RecordID, err)
		return err
	}
	return nil
}

var _ domain.AuditLog = (*AuditServiceImpl)(nil)

// ActionPublisher hands forwarded writes to the bus so the request path
// never waits on the audit store.
type ActionPublisher struct {
	bus *event.Bus
}

func NewActionPublisher(bus *event.Bus) *ActionPublisher {
	return &ActionPublisher{bus: bus}
}

func (p *ActionPublisher) Record(ctx context.Context, action model.ModerationAction) {
	eventType := constants.EventForAction(action.Action)
	if eventType == "" {
		log.Printf("ActionPublisher: Unknown action %q, not recorded", action.Action)
		return
	}
	now := time.Now()
	if action.CreatedAt.IsZero() {
		action.CreatedAt = now
	}
	p.bus.Publish(event.Event{Type: eventType, Action: action, At: now})
}

var _ domain.ActionRecorder = (*ActionPublisher)(nil)

// recordAction reports the outcome of one forwarded write. recorder may be nil.
func recordAction(ctx context.Context, recorder domain.ActionRecorder, actor string, kind model.Kind, id int, action string, res model.ActionResult, err error) {
	if recorder == nil {
		return
	}
	entry := model.ModerationAction{
		Actor:     actor,
		Resource:  kind.Name,
		RecordID:  id,
		Action:    action,
		Succeeded: err == nil && res.Status,
		Message:   res.Message,
	}
	if err != nil {
		entry.Message = err.Error()
	}
	recorder.Record(ctx, entry)
}

// Prune deletes actions recorded before cutoff and reports how many went.
func (s *AuditServiceImpl) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ModerationAction{})
	if result.Error != nil {
		return 0, domain.NewInternalError("failed to prune moderation actions", result.Error)
	}
	return result.RowsAffected, nil
}
