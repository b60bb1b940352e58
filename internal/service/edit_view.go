package service

import (
	"context"
	"errors"
	"log"

	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// SubmitOutcome classifies the answer to an edit submission.
type SubmitOutcome int

const (
	// SubmitFailed covers transport and unexpected failures; nothing is shown.
	SubmitFailed SubmitOutcome = iota
	SubmitSaved
	SubmitRejected
	SubmitForbidden
)

// EditView holds the editable form of one record.
type EditView[T model.Record[T]] struct {
	kind     model.Kind
	api      domain.ResourceAPI[T]
	recorder domain.ActionRecorder
	actor    string

	ID     int
	Fields []model.Field
	Image  string
	Loaded bool
	Notice model.Notice
}

func NewEditView[T model.Record[T]](kind model.Kind, api domain.ResourceAPI[T], recorder domain.ActionRecorder, actor string) *EditView[T] {
	return &EditView[T]{kind: kind, api: api, recorder: recorder, actor: actor}
}

func (v *EditView[T]) Kind() model.Kind {
	return v.kind
}

// Activate fills the form from the record's current values.
func (v *EditView[T]) Activate(ctx context.Context, id int) {
	v.ID = id
	rec, err := v.api.Get(ctx, id)
	if err != nil {
		log.Printf("EditView: Failed to fetch %s %d: %v", v.kind.Name, id, err)
		return
	}
	v.Fields = rec.FormFields()
	v.Image = rec.Image()
	v.Loaded = true
}

// Bind fills the form from posted values. Missing values are sent empty.
func (v *EditView[T]) Bind(id int, values map[string]string) {
	var zero T
	fields := zero.FormFields()
	for i := range fields {
		fields[i].Value = values[fields[i].Name]
	}
	v.ID = id
	v.Fields = fields
	v.Loaded = true
}

// Submit sends every form field, changed or not, with the optional image.
func (v *EditView[T]) Submit(ctx context.Context, image *model.Upload) SubmitOutcome {
	res, err := v.api.Update(ctx, v.ID, v.Fields, image)
	recordAction(ctx, v.recorder, v.actor, v.kind, v.ID, model.ActionUpdate, res, err)

	switch {
	case errors.Is(err, domain.ErrForbidden):
		v.Notice = model.ErrorNotice("You do not have permission to edit this record")
		return SubmitForbidden
	case err != nil:
		log.Printf("EditView: Failed to update %s %d: %v", v.kind.Name, v.ID, err)
		return SubmitFailed
	case !res.Status:
		v.Notice = model.ErrorNotice("Error: " + res.Message)
		return SubmitRejected
	default:
		msg := res.Message
		if msg == "" {
			msg = "Saved successfully"
		}
		v.Notice = model.SuccessNotice(msg)
		return SubmitSaved
	}
}
