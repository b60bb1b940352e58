package service

import (
	"context"
	"log"

	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// DetailView is the read-only profile page of one record.
type DetailView[T model.Record[T]] struct {
	kind model.Kind
	api  domain.ResourceAPI[T]

	Record  T
	Found   bool
	Reports []model.ReportEntry
}

func NewDetailView[T model.Record[T]](kind model.Kind, api domain.ResourceAPI[T]) *DetailView[T] {
	return &DetailView[T]{kind: kind, api: api, Reports: []model.ReportEntry{}}
}

func (v *DetailView[T]) Kind() model.Kind {
	return v.kind
}

// Activate reads the record by id. On failure the page stays empty.
func (v *DetailView[T]) Activate(ctx context.Context, id int) {
	rec, err := v.api.Get(ctx, id)
	if err != nil {
		log.Printf("DetailView: Failed to fetch %s %d: %v", v.kind.Name, id, err)
		return
	}
	v.Record = rec
	v.Found = true
	if reports := rec.Reports(); reports != nil {
		v.Reports = reports
	}
}

// Fields returns the display fields of the loaded record.
func (v *DetailView[T]) Fields() []model.Field {
	if !v.Found {
		return nil
	}
	return v.Record.DetailFields()
}
