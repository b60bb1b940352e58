package service

import (
	"context"
	"sync"

	"modconsole.com/internal/model"
)

type fakeResource[T any] struct {
	listCalls int
	list      []T
	listErr   error

	record T
	getErr error

	banRes, unbanRes, deleteRes, updateRes model.ActionResult
	banErr, unbanErr, deleteErr, updateErr error

	updatedID     int
	updatedFields []model.Field
	updatedImage  *model.Upload
}

func (f *fakeResource[T]) List(ctx context.Context) ([]T, error) {
	f.listCalls++
	return f.list, f.listErr
}

func (f *fakeResource[T]) Get(ctx context.Context, id int) (T, error) {
	return f.record, f.getErr
}

func (f *fakeResource[T]) Ban(ctx context.Context, id int) (model.ActionResult, error) {
	return f.banRes, f.banErr
}

func (f *fakeResource[T]) Unban(ctx context.Context, id int) (model.ActionResult, error) {
	return f.unbanRes, f.unbanErr
}

func (f *fakeResource[T]) Delete(ctx context.Context, id int) (model.ActionResult, error) {
	return f.deleteRes, f.deleteErr
}

func (f *fakeResource[T]) Update(ctx context.Context, id int, fields []model.Field, image *model.Upload) (model.ActionResult, error) {
	f.updatedID = id
	f.updatedFields = fields
	f.updatedImage = image
	return f.updateRes, f.updateErr
}

type fakeRecorder struct {
	mu      sync.Mutex
	actions []model.ModerationAction
}

func (r *fakeRecorder) Record(ctx context.Context, action model.ModerationAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

type fakeStats struct {
	total, reported       int64
	totalErr, reportedErr error
	flagged               []model.User
	flaggedErr            error
}

func (s *fakeStats) TotalUsers(ctx context.Context) (int64, error) {
	return s.total, s.totalErr
}

func (s *fakeStats) TotalReportedUsers(ctx context.Context) (int64, error) {
	return s.reported, s.reportedErr
}

func (s *fakeStats) ReportedUsers(ctx context.Context) ([]model.User, error) {
	return s.flagged, s.flaggedErr
}

type fakeSession struct {
	res   model.ActionResult
	err   error
	calls int
}

func (s *fakeSession) Logout(ctx context.Context) (model.ActionResult, error) {
	s.calls++
	return s.res, s.err
}
