package service

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

func TestEditViewActivateFillsForm(t *testing.T) {
	api := &fakeResource[model.Employee]{record: model.Employee{
		EmpID: 9, Username: "eve", Firstname: "Eve", Lastname: "Doe", Email: "eve@example.com",
		PhoneNumber: "0812345678", Gender: "Female", ImageFile: "eve.png",
	}}
	view := NewEditView[model.Employee](model.EmployeeKind, api, nil, "admin")
	view.Activate(t.Context(), 9)

	require.True(t, view.Loaded)
	assert.Equal(t, "eve.png", view.Image)
	names := make([]string, 0, len(view.Fields))
	for _, f := range view.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"username", "firstname", "lastname", "email", "phonenumber", "gender"}, names)
	assert.Equal(t, "Female", model.FieldValues(view.Fields)["gender"])
}

func TestEditViewActivateFailureLeavesFormEmpty(t *testing.T) {
	api := &fakeResource[model.User]{getErr: domain.NewUpstreamError(http.StatusNotFound, "no such user")}
	view := NewEditView[model.User](model.UserKind, api, nil, "admin")
	view.Activate(t.Context(), 1)

	assert.False(t, view.Loaded)
	assert.Empty(t, view.Fields)
}

func TestEditViewSubmitSendsEveryField(t *testing.T) {
	api := &fakeResource[model.User]{updateRes: model.ActionResult{Status: true, Message: "updated"}}
	rec := &fakeRecorder{}
	view := NewEditView[model.User](model.UserKind, api, rec, "admin")

	view.Bind(42, map[string]string{"username": "alice", "email": "a@example.com"})
	image := &model.Upload{Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("png")}
	outcome := view.Submit(t.Context(), image)

	assert.Equal(t, SubmitSaved, outcome)
	assert.Equal(t, model.SuccessNotice("updated"), view.Notice)
	assert.Equal(t, 42, api.updatedID)
	assert.Same(t, image, api.updatedImage)
	assert.Equal(t, map[string]string{
		"username": "alice", "firstname": "", "lastname": "", "email": "a@example.com", "home": "", "phonenumber": "",
	}, model.FieldValues(api.updatedFields))
	assert.Len(t, api.updatedFields, 6)

	require.Len(t, rec.actions, 1)
	assert.Equal(t, model.ActionUpdate, rec.actions[0].Action)
	assert.True(t, rec.actions[0].Succeeded)
}

func TestEditViewSubmitOutcomes(t *testing.T) {
	cases := []struct {
		name   string
		res    model.ActionResult
		err    error
		want   SubmitOutcome
		notice model.Notice
	}{
		{"saved without message", model.ActionResult{Status: true}, nil, SubmitSaved, model.SuccessNotice("Saved successfully")},
		{"rejected", model.ActionResult{Status: false, Message: "email taken"}, nil, SubmitRejected, model.ErrorNotice("Error: email taken")},
		{"forbidden", model.ActionResult{}, domain.NewUpstreamError(http.StatusForbidden, "denied"), SubmitForbidden, model.ErrorNotice("You do not have permission to edit this record")},
		{"transport", model.ActionResult{}, domain.NewUnavailableError(errors.New("reset")), SubmitFailed, model.Notice{}},
		{"server error", model.ActionResult{}, domain.NewUpstreamError(http.StatusInternalServerError, "boom"), SubmitFailed, model.Notice{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeResource[model.User]{updateRes: tc.res, updateErr: tc.err}
			view := NewEditView[model.User](model.UserKind, api, nil, "admin")
			view.Bind(1, map[string]string{"username": "u"})

			assert.Equal(t, tc.want, view.Submit(t.Context(), nil))
			assert.Equal(t, tc.notice, view.Notice)
		})
	}
}

func TestDetailViewActivate(t *testing.T) {
	api := &fakeResource[model.User]{record: model.User{
		UserID: 5, Email: "x@example.com", GenderID: 2,
		ReportHistory: []model.ReportEntry{{ReporterID: 3, ReportType: "spam"}},
	}}
	view := NewDetailView[model.User](model.UserKind, api)
	view.Activate(t.Context(), 5)

	require.True(t, view.Found)
	assert.Equal(t, []model.ReportEntry{{ReporterID: 3, ReportType: "spam"}}, view.Reports)
	values := model.FieldValues(view.Fields())
	assert.Equal(t, "Female", values["gender"])
	assert.Equal(t, "Not specified", values["home"])
}

func TestDetailViewMissingReportsAndFailure(t *testing.T) {
	api := &fakeResource[model.Employee]{record: model.Employee{EmpID: 1}}
	view := NewDetailView[model.Employee](model.EmployeeKind, api)
	view.Activate(t.Context(), 1)
	assert.True(t, view.Found)
	assert.NotNil(t, view.Reports)
	assert.Empty(t, view.Reports)

	failing := NewDetailView[model.Employee](model.EmployeeKind, &fakeResource[model.Employee]{getErr: errors.New("down")})
	failing.Activate(t.Context(), 1)
	assert.False(t, failing.Found)
	assert.Nil(t, failing.Fields())
}
