package service

import (
	"context"
	"log"

	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// ListRow is one table row of a list page.
type ListRow struct {
	ID      int
	Summary model.Summary
	Active  bool
	Actions model.Actions
	// Avatar is the console URL of the record's image, empty when it has none.
	Avatar  string
}

// ListView mirrors the last collection the moderation service returned for
// one kind and forwards moderation commands against it.
type ListView[T model.Record[T]] struct {
	kind     model.Kind
	api      domain.ResourceAPI[T]
	recorder domain.ActionRecorder
	actor    string

	Items  []T
	Notice model.Notice
}

func NewListView[T model.Record[T]](kind model.Kind, api domain.ResourceAPI[T], recorder domain.ActionRecorder, actor string) *ListView[T] {
	return &ListView[T]{
		kind:     kind,
		api:      api,
		recorder: recorder,
		actor:    actor,
		Items:    []T{},
	}
}

func (v *ListView[T]) Kind() model.Kind {
	return v.kind
}

// Restore reinstates a previously rendered collection without a fetch.
func (v *ListView[T]) Restore(items []T) {
	if items == nil {
		items = []T{}
	}
	v.Items = items
}

// Activate replaces the collection with a fresh read. Any failure leaves an
// empty list.
func (v *ListView[T]) Activate(ctx context.Context) {
	items, err := v.api.List(ctx)
	if err != nil {
		log.Printf("ListView: Failed to fetch %s list: %v", v.kind.Name, err)
		v.Items = []T{}
		return
	}
	v.Restore(items)
}

func (v *ListView[T]) Ban(ctx context.Context, id int) {
	res, err := v.api.Ban(ctx, id)
	recordAction(ctx, v.recorder, v.actor, v.kind, id, model.ActionBan, res, err)
	v.applyFlag(id, model.FlagBanned, res, err, "suspend", "suspending")
}

func (v *ListView[T]) Unban(ctx context.Context, id int) {
	res, err := v.api.Unban(ctx, id)
	recordAction(ctx, v.recorder, v.actor, v.kind, id, model.ActionUnban, res, err)
	v.applyFlag(id, model.FlagActive, res, err, "unban", "unbanning")
}

// Delete removes a record and, only on success, re-reads the collection once.
func (v *ListView[T]) Delete(ctx context.Context, id int) {
	res, err := v.api.Delete(ctx, id)
	recordAction(ctx, v.recorder, v.actor, v.kind, id, model.ActionDelete, res, err)

	switch {
	case err != nil:
		log.Printf("ListView: Failed to delete %s %d: %v", v.kind.Name, id, err)
		v.Notice = model.ErrorNotice(failureMessage(err, "An error occurred while deleting "+v.kind.Name))
	case !res.Status:
		v.Notice = model.ErrorNotice("Failed to delete " + v.kind.Name)
	default:
		v.Notice = model.SuccessNotice(res.Message)
		v.Activate(ctx)
	}
}

func (v *ListView[T]) applyFlag(id int, flag model.ActiveFlag, res model.ActionResult, err error, verb, gerund string) {
	switch {
	case err != nil:
		log.Printf("ListView: Failed to %s %s %d: %v", verb, v.kind.Name, id, err)
		v.Notice = model.ErrorNotice(failureMessage(err, "An error occurred while "+gerund+" "+v.kind.Name))
	case !res.Status:
		v.Notice = model.ErrorNotice("Failed to " + verb + " " + v.kind.Name)
	default:
		v.Notice = model.SuccessNotice(res.Message)
		v.Items = patchFlag(v.Items, id, flag)
	}
}

// Rows flattens the collection for rendering.
func (v *ListView[T]) Rows() []ListRow {
	rows := make([]ListRow, 0, len(v.Items))
	for _, item := range v.Items {
		rows = append(rows, ListRow{
			ID:      item.RecordID(),
			Summary: item.Summary(),
			Active:  !item.Flag().Banned(),
			Actions: model.ActionsFor(item.Flag()),
			Avatar:  v.kind.MediaPath(item.Image()),
		})
	}
	return rows
}

// patchFlag returns items with only the record matching id set to flag.
func patchFlag[T model.Record[T]](items []T, id int, flag model.ActiveFlag) []T {
	out := make([]T, len(items))
	for i, item := range items {
		if item.RecordID() == id {
			item = item.WithFlag(flag)
		}
		out[i] = item
	}
	return out
}

// failureMessage prefers the text the moderation service attached to err.
func failureMessage(err error, fallback string) string {
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
